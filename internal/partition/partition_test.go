package partition

import (
	"testing"

	"github.com/go-sif/scify"
	errors "github.com/go-sif/scify/errors"
	"github.com/go-sif/scify/schema"
	"github.com/stretchr/testify/require"
)

func createPartitionTestSchema() scify.Schema {
	schema := schema.CreateSchema()
	schema.CreateColumn("col1", &scify.Int64ColumnType{})
	return schema
}

func TestCreatePartitionImpl(t *testing.T) {
	schema := createPartitionTestSchema()
	part := createPartitionImpl(4, 8, schema)
	require.Equal(t, part.GetMaxRows(), 4)
	require.Equal(t, part.GetNumRows(), 0)
	require.Equal(t, cap(part.values), 4)
	require.NotEmpty(t, part.ID())
	require.NotEqual(t, part.ID(), createPartitionImpl(4, 4, schema).ID())
}

func TestAppendEmptyRow(t *testing.T) {
	schema := createPartitionTestSchema()
	part := CreateBuildablePartition(4, schema)
	for i := 0; i < 3; i++ {
		row, err := part.AppendEmptyRow()
		require.Nil(t, err)
		require.True(t, row.IsNil("col1"))
		require.Nil(t, row.SetInt64("col1", int64(i)))
	}
	require.Equal(t, 3, part.GetNumRows())
	val, err := part.GetRow(1).GetInt64("col1")
	require.Nil(t, err)
	require.Equal(t, int64(1), val)

	var seen []int64
	err = part.ForEachRow(func(row scify.Row) error {
		v, err := row.GetInt64("col1")
		seen = append(seen, v)
		return err
	})
	require.Nil(t, err)
	require.Equal(t, []int64{0, 1, 2}, seen)
}

func TestPartitionFullError(t *testing.T) {
	// create partition with max 1 row
	schema := createPartitionTestSchema()
	part := CreateBuildablePartition(1, schema)
	_, err := part.AppendEmptyRow()
	require.Nil(t, err)
	_, err = part.AppendEmptyRow()
	require.ErrorAs(t, err, &errors.PartitionFullError{})
	require.Equal(t, 1, part.GetNumRows())
}
