package config

import (
	"testing"

	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/go-sif/scify"
	"github.com/go-sif/scify/aggregate"
	"github.com/go-sif/scify/datasource/parser/dsv"
	"github.com/go-sif/scify/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
directory: /data
pattern: "*.csv"
recursive: true
format: csv
skip_duplicates: true
parser:
  partition_size: 64
  comment: "#"
  nil_value: NA
schema:
  - name: id
    type: int64
  - name: day
    type: time
    format: "2006-01-02"
export:
  path: /out/merged.parquet
  compression: zstd
  row_group_size: 1000
log:
  level: debug
`

func writeConfig(t *testing.T, contents string) afero.Fs {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/scify.yaml", []byte(contents), 0644))
	return fs
}

func TestLoadFullConfig(t *testing.T) {
	fs := writeConfig(t, fullConfig)
	conf, err := Load(fs, "/scify.yaml")
	require.Nil(t, err)
	require.Equal(t, "/data", conf.Directory)
	require.True(t, conf.Recursive)
	require.Equal(t, "/out/merged.parquet", conf.Export.Path)

	s, err := conf.Schema()
	require.Nil(t, err)
	require.Equal(t, "[id:int64, day:time]", s.ToString())
	require.Equal(t, "2006-01-02", s.ColumnTypes()[1].(*scify.TimeColumnType).Format)

	pc := conf.ParserConf()
	require.Equal(t, '#', pc.Comment)
	require.Equal(t, "NA", pc.NilValue)
	p, err := conf.Parser()
	require.Nil(t, err)
	require.IsType(t, &dsv.Parser{}, p)
	require.Equal(t, 64, p.PartitionSize())

	lc, err := conf.LoggingConf()
	require.Nil(t, err)
	require.Equal(t, logging.DebugLevel, lc.Level)

	codec, err := conf.ParquetConf().Codec()
	require.Nil(t, err)
	require.Equal(t, compress.Codecs.Zstd, codec)
}

func TestLoadDefaults(t *testing.T) {
	fs := writeConfig(t, "pattern: \"*.jsonl\"\n")
	conf, err := Load(fs, "/scify.yaml")
	require.Nil(t, err)
	require.Equal(t, ".", conf.Directory)
	p, err := conf.Parser()
	require.Nil(t, err)
	require.Nil(t, p)
	s, err := conf.Schema()
	require.Nil(t, err)
	require.Nil(t, s)
	lc, err := conf.LoggingConf()
	require.Nil(t, err)
	require.Equal(t, logging.InfoLevel, lc.Level)
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "directroy: /data\n",
		"bad format":     "format: xlsx\n",
		"bad type":       "schema:\n  - name: a\n    type: decimal\n",
		"unnamed column": "schema:\n  - type: int64\n",
		"duplicate":      "schema:\n  - name: a\n    type: int64\n  - name: a\n    type: bool\n",
		"long comment":   "parser:\n  comment: \"//\"\n",
		"bad export":     "export:\n  path: out.xlsx\n",
		"bad codec":      "export:\n  compression: rar\n",
		"bad level":      "log:\n  level: loud\n",
		"empty dir":      "directory: \"\"\n",
		"not yaml":       "directory: [\n",
	}
	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, contents), "/scify.yaml")
			require.NotNil(t, err)
		})
	}
	_, err := Load(afero.NewMemMapFs(), "/missing.yaml")
	require.NotNil(t, err)
}

func TestAggregateOptions(t *testing.T) {
	fs := writeConfig(t, fullConfig)
	conf, err := Load(fs, "/scify.yaml")
	require.Nil(t, err)
	require.Nil(t, fs.MkdirAll("/data/2021", 0755))
	require.Nil(t, afero.WriteFile(fs, "/data/2021/a.csv", []byte("# exported\nid,day\n1,2021-01-01\n2,NA\n"), 0644))
	require.Nil(t, afero.WriteFile(fs, "/data/b.csv", []byte("id,day\n3,2021-01-03\n"), 0644))

	opts, err := conf.AggregateOptions(fs, logging.Discard())
	require.Nil(t, err)
	res, err := aggregate.Aggregate(conf.Directory, opts)
	require.Nil(t, err)
	require.Equal(t, 3, res.Table.NumRows())
	row, err := res.Table.GetRow(1)
	require.Nil(t, err)
	require.True(t, row.IsNil("day"))
}
