package jsonl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-sif/scify"
	"github.com/tidwall/gjson"
)

// jsonColumnType returns the narrowest ColumnType for a JSON value, or nil for JSON nulls
func jsonColumnType(value gjson.Result) scify.ColumnType {
	switch value.Type {
	case gjson.Null:
		return nil
	case gjson.True, gjson.False:
		return &scify.BoolColumnType{}
	case gjson.Number:
		if isIntegral(value.Raw) {
			return &scify.Int64ColumnType{}
		}
		return &scify.Float64ColumnType{}
	default:
		return &scify.VarStringColumnType{}
	}
}

// isIntegral returns true iff a raw JSON number is written as an integer which fits in an int64
func isIntegral(raw string) bool {
	if strings.ContainsAny(raw, ".eE") {
		return false
	}
	_, err := strconv.ParseInt(raw, 10, 64)
	return err == nil
}

func parseValue(val gjson.Result, colName string, colType scify.ColumnType, row scify.Row) error {
	if !val.Exists() || val.Type == gjson.Null {
		return row.SetNil(colName)
	}
	// parse type
	switch colType := colType.(type) {
	case *scify.BoolColumnType:
		if val.Type != gjson.True && val.Type != gjson.False {
			return fmt.Errorf("Column %s was not a boolean. Was: %s", colName, val.Raw)
		}
		return row.SetBool(colName, val.Bool())
	case *scify.Int64ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		if isIntegral(val.Raw) {
			ival, _ := strconv.ParseInt(val.Raw, 10, 64)
			return row.SetInt64(colName, ival)
		}
		if val.Num != math.Trunc(val.Num) {
			return fmt.Errorf("Column %s was not an integer. Was: %s", colName, val.Raw)
		}
		return row.SetInt64(colName, int64(val.Num))
	case *scify.Float64ColumnType:
		if val.Type != gjson.Number {
			return fmt.Errorf("Column %s was not a number. Was: %s", colName, val.Raw)
		}
		return row.SetFloat64(colName, val.Num)
	case *scify.TimeColumnType:
		if val.Type != gjson.String {
			return fmt.Errorf("Column %s was not a string. Was: %s", colName, val.Raw)
		}
		tval, err := time.Parse(colType.Format, val.Str)
		if err != nil {
			return fmt.Errorf("Column %s could not be parsed as datetime with format %s. Was: %#v", colName, colType.Format, val.Str)
		}
		return row.SetTime(colName, tval)
	case *scify.VarStringColumnType:
		if val.Type == gjson.String {
			return row.SetVarString(colName, val.Str)
		}
		// numbers, booleans and nested JSON are kept in their raw form
		return row.SetVarString(colName, val.Raw)
	default:
		return fmt.Errorf("JSONL parsing does not support column type %T", colType)
	}
}

// objectValues holds the top-level members of a JSON object, in document order
type objectValues struct {
	keys  []string
	byKey map[string]gjson.Result
}

func topLevelValues(jsonData gjson.Result) objectValues {
	values := objectValues{byKey: make(map[string]gjson.Result)}
	if !jsonData.IsObject() {
		return values
	}
	jsonData.ForEach(func(key, value gjson.Result) bool {
		if _, seen := values.byKey[key.String()]; !seen {
			values.keys = append(values.keys, key.String())
		}
		values.byKey[key.String()] = value
		return true
	})
	return values
}

// lookup finds a column's value, preferring a literal top-level key over a gjson path
func lookup(jsonData gjson.Result, values objectValues, colName string) gjson.Result {
	if value, ok := values.byKey[colName]; ok {
		return value
	}
	return jsonData.Get(colName)
}

// ParseJSONRow parses a JSON object into a Row. Each column name is first matched against the
// top-level keys of the object, and otherwise treated as a gjson path.
func ParseJSONRow(names []string, types []scify.ColumnType, jsonData gjson.Result, row scify.Row) error {
	values := topLevelValues(jsonData)
	for idx, colName := range names {
		err := parseValue(lookup(jsonData, values, colName), colName, types[idx], row)
		if err != nil {
			return err
		}
	}
	return nil
}
