package aggregate

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/go-sif/scify"
	"github.com/go-sif/scify/columnar"
	"github.com/go-sif/scify/datasource/parser/dsv"
	errors "github.com/go-sif/scify/errors"
	"github.com/go-sif/scify/schema"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pierrec/lz4"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	require.Nil(t, fs.MkdirAll("/data", 0755))
	for path, contents := range files {
		require.Nil(t, afero.WriteFile(fs, path, []byte(contents), 0644))
	}
	return fs
}

func compress(t *testing.T, data string) string {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	_, err := zw.Write([]byte(data))
	require.Nil(t, err)
	require.Nil(t, zw.Close())
	return buf.String()
}

func columnValues(t *testing.T, tbl scify.Table, col string) []int64 {
	var values []int64
	require.Nil(t, tbl.ForEachRow(func(row scify.Row) error {
		v, err := row.GetInt64(col)
		values = append(values, v)
		return err
	}))
	return values
}

func TestAggregateSumsRows(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/part-2.csv": "id,name\n3,c\n4,d\n5,e\n",
		"/data/part-1.csv": "id,name\n1,a\n2,b\n",
		"/data/part-3.csv": "id,name\n6,f\n",
		"/data/README.md":  "# not data",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 6, res.Table.NumRows())
	require.Equal(t, "[id:int64, name:string]", res.Table.Schema().ToString())
	require.Equal(t, []int64{1, 2, 3, 4, 5, 6}, columnValues(t, res.Table, "id"))

	require.Len(t, res.Files, 3)
	require.Equal(t, "/data/part-1.csv", res.Files[0].Path)
	require.Equal(t, 2, res.Files[0].NumRows)
	require.Equal(t, 3, res.Files[1].NumRows)
	require.Equal(t, 1, res.Files[2].NumRows)

	require.Equal(t, 3, res.Stats.GetNumFilesRead())
	require.Equal(t, 0, res.Stats.GetNumFilesSkipped())
	require.Equal(t, int64(6), res.Stats.GetNumRowsRead())
	require.Len(t, res.Stats.GetFileRuntimes(), 3)
}

func TestAggregateNoMatchingFiles(t *testing.T) {
	fs := writeFiles(t, map[string]string{})
	_, err := Aggregate("/data", &Options{Fs: fs})
	require.ErrorAs(t, err, &errors.NoMatchingFilesError{})

	fs = writeFiles(t, map[string]string{"/data/a.txt": "hello"})
	_, err = Aggregate("/data", &Options{Fs: fs})
	require.ErrorAs(t, err, &errors.NoMatchingFilesError{})

	fs = writeFiles(t, map[string]string{"/data/a.csv": "a\n1\n"})
	_, err = Aggregate("/data", &Options{Fs: fs, Pattern: "*.jsonl"})
	var nmf errors.NoMatchingFilesError
	require.ErrorAs(t, err, &nmf)
	require.Equal(t, "/data", nmf.Path)
	require.Equal(t, "*.jsonl", nmf.Pattern)

	_, err = Aggregate("/data", &Options{Fs: fs, Parser: dsv.CreateParser(&dsv.ParserConf{Delimiter: '\t'})})
	require.ErrorAs(t, err, &errors.NoMatchingFilesError{})
}

func TestAggregateDirectoryNotFound(t *testing.T) {
	fs := writeFiles(t, map[string]string{"/data/a.csv": "a\n1\n"})
	_, err := Aggregate("/elsewhere", &Options{Fs: fs})
	var dnf errors.DirectoryNotFoundError
	require.ErrorAs(t, err, &dnf)
	require.Equal(t, "/elsewhere", dnf.Path)

	_, err = Aggregate("/elsewhere", &Options{Fs: fs, Parser: dsv.CreateParser(&dsv.ParserConf{})})
	require.ErrorAs(t, err, &errors.DirectoryNotFoundError{})
}

func TestAggregateSchemaMismatch(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id,v\n1,2\n",
		"/data/b.csv": "id,v\n2,x\n",
		"/data/c.csv": "id,w\n3,4\n",
		"/data/d.csv": "id,v\n4,5\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, res)
	var mismatch errors.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "/data/b.csv", mismatch.Path)
	require.Contains(t, mismatch.Error(), "column v")

	var merr *multierror.Error
	require.True(t, stderrors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	require.Contains(t, merr.Errors[1].Error(), "/data/c.csv")
}

func TestAggregateSparseColumn(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id,score\n1,10\n",
		"/data/b.csv": "id,score\n3,\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 2, res.Table.NumRows())
	require.IsType(t, &scify.Int64ColumnType{}, res.Table.Schema().ColumnTypes()[1])
	row, err := res.Table.GetRow(1)
	require.Nil(t, err)
	require.True(t, row.IsNil("score"))
}

func TestAggregateSparseColumnFirst(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id,score\n1,\n",
		"/data/b.csv": "id,score\n3,4\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 2, res.Table.NumRows())
	require.IsType(t, &scify.VarStringColumnType{}, res.Table.Schema().ColumnTypes()[1])
}

func TestAggregateExplicitSchema(t *testing.T) {
	s := schema.CreateSchema()
	s.CreateColumn("id", &scify.Int64ColumnType{})
	s.CreateColumn("score", &scify.Float64ColumnType{})
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id,score\n1,2\n",
		"/data/b.csv": "id,score\n2,2.5\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs, Schema: s})
	require.Nil(t, err)
	require.Equal(t, 2, res.Table.NumRows())
	require.Nil(t, s.Equals(res.Table.Schema()))

	fs = writeFiles(t, map[string]string{
		"/data/a.csv": "id,score\n1,2\n",
		"/data/b.csv": "id,points\n2,3\n",
	})
	_, err = Aggregate("/data", &Options{Fs: fs, Schema: s})
	var mismatch errors.SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "/data/b.csv", mismatch.Path)
}

func TestAggregateCompressedFiles(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.tsv":     "k\tv\n1\ttrue\n",
		"/data/b.tsv.lz4": compress(t, "k\tv\n2\tfalse\n3\ttrue\n"),
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 3, res.Table.NumRows())
	require.Equal(t, "[k:int64, v:bool]", res.Table.Schema().ToString())
	require.Equal(t, "/data/b.tsv.lz4", res.Files[1].Path)
}

func TestAggregateSkipDuplicates(t *testing.T) {
	contents := "id\n1\n2\n"
	fs := writeFiles(t, map[string]string{
		"/data/a.csv":     contents,
		"/data/b.csv":     "id\n3\n",
		"/data/copy.csv":  contents,
		"/data/c.csv.lz4": compress(t, contents),
	})
	res, err := Aggregate("/data", &Options{Fs: fs, SkipDuplicates: true})
	require.Nil(t, err)
	require.Equal(t, []int64{1, 2, 3}, columnValues(t, res.Table, "id"))
	require.Len(t, res.Files, 2)
	require.Equal(t, 2, res.Stats.GetNumFilesSkipped())
	require.Equal(t, 4, res.Stats.GetNumFilesRead())

	res, err = Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 7, res.Table.NumRows())
}

func TestAggregateEmptyFiles(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id,name\n",
		"/data/b.csv": "",
		"/data/c.csv": "id,name\n1,x\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 1, res.Table.NumRows())
	require.Equal(t, "[id:int64, name:string]", res.Table.Schema().ToString())
	require.Len(t, res.Files, 2)
	require.Equal(t, 0, res.Files[0].NumRows)
	require.Equal(t, 1, res.Stats.GetNumFilesSkipped())

	fs = writeFiles(t, map[string]string{
		"/data/a.csv": "id,name\n",
		"/data/b.csv": "id,other\n1,x\n",
	})
	_, err = Aggregate("/data", &Options{Fs: fs})
	require.ErrorAs(t, err, &errors.SchemaMismatchError{})

	fs = writeFiles(t, map[string]string{"/data/a.csv": "id,name\n"})
	res, err = Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 0, res.Table.NumRows())
	require.Equal(t, []string{"id", "name"}, res.Table.Schema().ColumnNames())
}

func TestAggregateJSONL(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/1.jsonl":  "{\"id\": 1, \"tags\": [\"x\"]}\n{\"id\": 2, \"tags\": []}\n",
		"/data/2.ndjson": "{\"id\": 3, \"tags\": null}\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, []int64{1, 2, 3}, columnValues(t, res.Table, "id"))
}

func TestAggregateJSONLKeyOrderAndNulls(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/1.jsonl": "{\"a\": 1, \"b\": \"x\", \"c\": 1.5}\n",
		"/data/2.jsonl": "{\"b\": \"y\", \"a\": 2, \"c\": null}\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, "[a:int64, b:string, c:float64]", res.Table.Schema().ToString())
	require.Equal(t, []int64{1, 2}, columnValues(t, res.Table, "a"))
	row, err := res.Table.GetRow(1)
	require.Nil(t, err)
	b, err := row.GetVarString("b")
	require.Nil(t, err)
	require.Equal(t, "y", b)
	require.True(t, row.IsNil("c"))
}

func TestAggregateJSONLValueMismatch(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/1.jsonl": "{\"a\": 1}\n",
		"/data/2.jsonl": "{\"a\": \"one\"}\n",
		"/data/3.jsonl": "{\"a\": 3, \"b\": true}\n",
	})
	_, err := Aggregate("/data", &Options{Fs: fs})
	var merr *multierror.Error
	require.True(t, stderrors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	require.Contains(t, merr.Errors[0].Error(), "/data/2.jsonl")
	require.Contains(t, merr.Errors[1].Error(), "/data/3.jsonl")
}

func TestAggregateJSONFiles(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/1.json": "{\"id\": 1}\n{\"id\": 2}\n",
		"/data/2.json": "{\"id\": 3}\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, []int64{1, 2, 3}, columnValues(t, res.Table, "id"))
	require.Len(t, res.Files, 2)
}

func TestAggregateRecursive(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv":         "id\n1\n",
		"/data/2021/b.csv":    "id\n2\n",
		"/data/2022/q1/c.csv": "id\n3\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	require.Equal(t, 1, res.Table.NumRows())

	res, err = Aggregate("/data", &Options{Fs: fs, Recursive: true})
	require.Nil(t, err)
	require.Equal(t, []int64{2, 3, 1}, columnValues(t, res.Table, "id"))
}

func TestAggregateParseErrorAborts(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id\n1\n",
		"/data/b.csv": "id,extra\n1\n",
	})
	_, err := Aggregate("/data", &Options{Fs: fs})
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "/data/b.csv")
	require.False(t, stderrors.As(err, &errors.SchemaMismatchError{}))
}

func TestAggregateExportRoundTrip(t *testing.T) {
	fs := writeFiles(t, map[string]string{
		"/data/a.csv": "id,name,score\n1,a,0.5\n2,b,\n",
		"/data/b.csv": "id,name,score\n3,c,1.5\n",
	})
	res, err := Aggregate("/data", &Options{Fs: fs})
	require.Nil(t, err)
	for _, path := range []string{"/out/merged.parquet", "/out/merged.arrow"} {
		require.Nil(t, res.Export(fs, path, &columnar.ParquetConf{Compression: "zstd"}))
		back, err := columnar.ImportFile(fs, path, 0)
		require.Nil(t, err)
		require.Equal(t, res.Table.NumRows(), back.NumRows())
		require.Equal(t, res.Table.Schema().ColumnNames(), back.Schema().ColumnNames())
		require.Nil(t, res.Table.Schema().Equals(back.Schema()))
	}
	// the source directory is untouched
	infos, err := afero.ReadDir(fs, "/data")
	require.Nil(t, err)
	require.Len(t, infos, 2)
}
