package columnar

import (
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/go-sif/scify"
	"github.com/go-sif/scify/internal/partition"
	"github.com/go-sif/scify/internal/table"
	"github.com/go-sif/scify/schema"
)

// DefaultPartitionSize is the number of rows per Partition used when reading columnar data
const DefaultPartitionSize = 128

// timeFormatKey is the Arrow field metadata key under which a TimeColumnType's Format is kept
const timeFormatKey = "scify.time_format"

// SchemaToArrow converts a Schema to an Arrow Schema. Every field is nullable.
func SchemaToArrow(s scify.Schema) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, s.NumColumns())
	err := s.ForEachColumn(func(name string, col scify.Column) error {
		field := arrow.Field{Name: name, Nullable: true}
		switch colType := col.Type().(type) {
		case *scify.BoolColumnType:
			field.Type = arrow.FixedWidthTypes.Boolean
		case *scify.Int64ColumnType:
			field.Type = arrow.PrimitiveTypes.Int64
		case *scify.Float64ColumnType:
			field.Type = arrow.PrimitiveTypes.Float64
		case *scify.VarStringColumnType:
			field.Type = arrow.BinaryTypes.String
		case *scify.TimeColumnType:
			field.Type = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
			field.Metadata = arrow.NewMetadata([]string{timeFormatKey}, []string{colType.Format})
		default:
			return fmt.Errorf("Column %s has type %T, which cannot be converted to Arrow", name, colType)
		}
		fields = append(fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return arrow.NewSchema(fields, nil), nil
}

// SchemaFromArrow converts an Arrow Schema to a Schema. Integer types widen to int64,
// floating point types to float64, and temporal types to time.
func SchemaFromArrow(as *arrow.Schema) (scify.Schema, error) {
	s := schema.CreateSchema()
	for _, field := range as.Fields() {
		var colType scify.ColumnType
		switch field.Type.ID() {
		case arrow.BOOL:
			colType = &scify.BoolColumnType{}
		case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64, arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
			colType = &scify.Int64ColumnType{}
		case arrow.FLOAT32, arrow.FLOAT64:
			colType = &scify.Float64ColumnType{}
		case arrow.STRING, arrow.LARGE_STRING, arrow.BINARY, arrow.LARGE_BINARY:
			colType = &scify.VarStringColumnType{}
		case arrow.TIMESTAMP:
			colType = &scify.TimeColumnType{Format: fieldTimeFormat(field, time.RFC3339Nano)}
		case arrow.DATE32, arrow.DATE64:
			colType = &scify.TimeColumnType{Format: fieldTimeFormat(field, "2006-01-02")}
		default:
			return nil, fmt.Errorf("Column %s has Arrow type %s, which is not supported", field.Name, field.Type)
		}
		if _, err := s.CreateColumn(field.Name, colType); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func fieldTimeFormat(field arrow.Field, fallback string) string {
	if idx := field.Metadata.FindKey(timeFormatKey); idx >= 0 {
		if format := field.Metadata.Values()[idx]; len(format) > 0 {
			return format
		}
	}
	return fallback
}

// ToArrow converts a Table to an Arrow Table, with one record batch per Partition.
// The caller must Release the result.
func ToArrow(t scify.Table, mem memory.Allocator) (arrow.Table, error) {
	as, err := SchemaToArrow(t.Schema())
	if err != nil {
		return nil, err
	}
	names := t.Schema().ColumnNames()
	builder := array.NewRecordBuilder(mem, as)
	defer builder.Release()

	records := []arrow.Record{}
	defer func() {
		for _, rec := range records {
			rec.Release()
		}
	}()
	for _, part := range t.Partitions() {
		err := part.ForEachRow(func(row scify.Row) error {
			for i, name := range names {
				v, err := row.Get(name)
				if err != nil {
					return err
				}
				if err := appendValue(builder.Field(i), v); err != nil {
					return fmt.Errorf("Column %s: %w", name, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		records = append(records, builder.NewRecord())
	}
	if len(records) == 0 {
		records = append(records, builder.NewRecord())
	}
	return array.NewTableFromRecords(as, records), nil
}

func appendValue(b array.Builder, v interface{}) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch b := b.(type) {
	case *array.BooleanBuilder:
		b.Append(v.(bool))
	case *array.Int64Builder:
		b.Append(v.(int64))
	case *array.Float64Builder:
		b.Append(v.(float64))
	case *array.StringBuilder:
		b.Append(v.(string))
	case *array.TimestampBuilder:
		b.Append(arrow.Timestamp(v.(time.Time).UnixMicro()))
	default:
		return fmt.Errorf("unsupported Arrow builder %T", b)
	}
	return nil
}

// FromArrow converts an Arrow Table to a Table, with Partitions of at most partitionSize rows
func FromArrow(tbl arrow.Table, partitionSize int) (scify.Table, error) {
	if partitionSize <= 0 {
		partitionSize = DefaultPartitionSize
	}
	s, err := SchemaFromArrow(tbl.Schema())
	if err != nil {
		return nil, err
	}
	result := table.CreateTable(s)
	tr := array.NewTableReader(tbl, int64(partitionSize))
	defer tr.Release()
	for tr.Next() {
		if err := appendRecord(result, tr.Record(), partitionSize); err != nil {
			return nil, err
		}
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// appendRecord converts a record batch into Partitions and appends them to a Table
func appendRecord(result table.BuildableTable, rec arrow.Record, partitionSize int) error {
	s := result.Schema()
	names := s.ColumnNames()
	numRows := int(rec.NumRows())
	for start := 0; start < numRows; start += partitionSize {
		part := partition.CreateBuildablePartition(partitionSize, s)
		for r := start; r < numRows && r < start+partitionSize; r++ {
			row, err := part.AppendEmptyRow()
			if err != nil {
				return err
			}
			for c, name := range names {
				v, err := valueAt(rec.Column(c), r)
				if err != nil {
					return fmt.Errorf("Column %s: %w", name, err)
				}
				if err := row.Set(name, v); err != nil {
					return err
				}
			}
		}
		if err := result.Append(part); err != nil {
			return err
		}
	}
	return nil
}

// valueAt extracts a value from an Arrow array as the Go type of the corresponding ColumnType
func valueAt(arr arrow.Array, i int) (interface{}, error) {
	if arr.IsNull(i) {
		return nil, nil
	}
	switch a := arr.(type) {
	case *array.Boolean:
		return a.Value(i), nil
	case *array.Int8:
		return int64(a.Value(i)), nil
	case *array.Int16:
		return int64(a.Value(i)), nil
	case *array.Int32:
		return int64(a.Value(i)), nil
	case *array.Int64:
		return a.Value(i), nil
	case *array.Uint8:
		return int64(a.Value(i)), nil
	case *array.Uint16:
		return int64(a.Value(i)), nil
	case *array.Uint32:
		return int64(a.Value(i)), nil
	case *array.Uint64:
		if a.Value(i) > math.MaxInt64 {
			return nil, fmt.Errorf("value %d overflows int64", a.Value(i))
		}
		return int64(a.Value(i)), nil
	case *array.Float32:
		return float64(a.Value(i)), nil
	case *array.Float64:
		return a.Value(i), nil
	case *array.String:
		return a.Value(i), nil
	case *array.LargeString:
		return a.Value(i), nil
	case *array.Binary:
		return string(a.Value(i)), nil
	case *array.LargeBinary:
		return string(a.Value(i)), nil
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).UTC(), nil
	case *array.Date32:
		return a.Value(i).ToTime().UTC(), nil
	case *array.Date64:
		return a.Value(i).ToTime().UTC(), nil
	default:
		return nil, fmt.Errorf("unsupported Arrow array %T", arr)
	}
}
