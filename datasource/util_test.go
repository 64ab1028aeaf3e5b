package datasource_test

import (
	"testing"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/datasource"
	"github.com/go-sif/scify/datasource/memory"
	"github.com/go-sif/scify/datasource/parser/dsv"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestReadAllTypesLaterSourcesByFirst(t *testing.T) {
	data := [][]byte{
		[]byte("id,score\n1,10\n"),
		[]byte("id,score\n3,\n"),
	}
	tbl, err := datasource.ReadAll(memory.CreateDataSource(data), dsv.CreateParser(&dsv.ParserConf{}), nil)
	require.Nil(t, err)
	require.Equal(t, 2, tbl.NumRows())
	require.IsType(t, &scify.Int64ColumnType{}, tbl.Schema().ColumnTypes()[1])
}

func TestReadAllFailsFast(t *testing.T) {
	data := [][]byte{
		[]byte("id,v\n1,2\n"),
		[]byte("id,w\n3,4\n"),
	}
	_, err := datasource.ReadAll(memory.CreateDataSource(data), dsv.CreateParser(&dsv.ParserConf{}), nil)
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "expected v")
}
