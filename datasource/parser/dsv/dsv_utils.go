package dsv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/scify"
)

// Parses a slice of strings into a Row, according to a schema
func scanRow(p *Parser, record int, names []string, colTypes []scify.ColumnType, rowStrings []string, row scify.Row) error {
	for i := 0; i < len(rowStrings) && i < len(names); i++ {
		colVal := rowStrings[i]
		// check for a nil value
		if p.isNil(colVal) {
			row.SetNil(names[i])
			continue
		}
		// otherwise, parse type
		var err error
		switch colType := colTypes[i].(type) {
		case *scify.BoolColumnType:
			var bval bool
			bval, err = strconv.ParseBool(strings.ToLower(colVal))
			if err == nil {
				err = row.SetBool(names[i], bval)
			}
		case *scify.Int64ColumnType:
			var ival int64
			ival, err = strconv.ParseInt(colVal, 10, 64)
			if err == nil {
				err = row.SetInt64(names[i], ival)
			}
		case *scify.Float64ColumnType:
			var fval float64
			fval, err = strconv.ParseFloat(colVal, 64)
			if err == nil {
				err = row.SetFloat64(names[i], fval)
			}
		case *scify.TimeColumnType:
			var tval time.Time
			tval, err = time.Parse(colType.Format, colVal)
			if err != nil {
				return fmt.Errorf("record %d: column %s could not be parsed as datetime with format %s. Was: %#v", record, names[i], colType.Format, colVal)
			}
			err = row.SetTime(names[i], tval)
		case *scify.VarStringColumnType:
			err = row.SetVarString(names[i], colVal)
		default:
			return fmt.Errorf("DSV parsing does not support column type %T", colTypes[i])
		}
		if err != nil {
			return fmt.Errorf("record %d: column %s: %w", record, names[i], err)
		}
	}
	return nil
}
