package parquet

import (
	"bytes"
	"io"
	"testing"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/columnar"
	"github.com/go-sif/scify/datasource"
	"github.com/go-sif/scify/datasource/memory"
	"github.com/go-sif/scify/datasource/parser/dsv"
	errors "github.com/go-sif/scify/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func parquetBytes(t *testing.T, csv string) []byte {
	tbl, err := datasource.ReadAll(memory.CreateDataSource([][]byte{[]byte(csv)}), dsv.CreateParser(&dsv.ParserConf{}), nil)
	require.Nil(t, err)
	var buf bytes.Buffer
	require.Nil(t, columnar.WriteParquet(tbl, &buf, nil))
	return buf.Bytes()
}

func TestParquetDatasourceParser(t *testing.T) {
	parser := CreateParser(&ParserConf{PartitionSize: 2})
	require.Equal(t, []string{".parquet", ".pq"}, parser.Extensions())
	data := [][]byte{
		parquetBytes(t, "id,name\n1,a\n2,b\n3,c\n"),
		parquetBytes(t, "id,name\n4,d\n"),
	}
	tbl, err := datasource.ReadAll(memory.CreateDataSource(data), parser, nil)
	require.Nil(t, err)
	require.Equal(t, 4, tbl.NumRows())
	require.Equal(t, "[id:int64, name:string]", tbl.Schema().ToString())
	for _, part := range tbl.Partitions() {
		require.LessOrEqual(t, part.GetNumRows(), 2)
	}
	row, err := tbl.GetRow(3)
	require.Nil(t, err)
	name, err := row.GetVarString("name")
	require.Nil(t, err)
	require.Equal(t, "d", name)
}

func TestParquetUnseekableReader(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	ended := false
	r := io.MultiReader(bytes.NewReader(parquetBytes(t, "x\ntrue\nfalse\n")))
	pi, err := parser.Parse(r, nil, func() { ended = true })
	require.Nil(t, err)
	require.False(t, ended)
	part, err := pi.NextPartition()
	require.Nil(t, err)
	require.Equal(t, 2, part.GetNumRows())
	v, err := part.GetRow(1).GetBool("x")
	require.Nil(t, err)
	require.False(t, v)
	require.True(t, ended)
	_, err = pi.NextPartition()
	require.ErrorAs(t, err, &errors.NoMorePartitionsError{})
}

func TestParquetReportsStoredSchema(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	pi, err := parser.Parse(bytes.NewReader(parquetBytes(t, "a\n1\n")), nil, nil)
	require.Nil(t, err)
	require.IsType(t, &scify.Int64ColumnType{}, pi.Schema().ColumnTypes()[0])
}

func TestParquetInvalidData(t *testing.T) {
	parser := CreateParser(&ParserConf{})
	_, err := parser.Parse(bytes.NewReader([]byte("not parquet")), nil, nil)
	require.NotNil(t, err)
}
