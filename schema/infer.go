package schema

import (
	"strconv"
	"strings"

	"github.com/go-sif/scify"
)

// candidate types, narrowest first
const (
	inferBool = iota
	inferInt64
	inferFloat64
	inferString
)

// ColumnTypeInferrer narrows down the type of a single column as values are observed.
// A column which never observes a value is inferred as a VarStringColumnType.
type ColumnTypeInferrer struct {
	candidate int
	observed  bool
}

// Observe narrows the inferred type so that it accommodates value
func (ci *ColumnTypeInferrer) Observe(value string) {
	if ci.observed && ci.candidate == inferBool && !fits(inferBool, value) {
		// a column holding both booleans and numbers is only representable as text
		ci.candidate = inferString
		return
	}
	ci.observed = true
	for ci.candidate < inferString && !fits(ci.candidate, value) {
		ci.candidate++
	}
}

// ObserveType narrows the inferred type so that it accommodates an already-typed value
func (ci *ColumnTypeInferrer) ObserveType(colType scify.ColumnType) {
	var candidate int
	switch colType.(type) {
	case *scify.BoolColumnType:
		candidate = inferBool
	case *scify.Int64ColumnType:
		candidate = inferInt64
	case *scify.Float64ColumnType:
		candidate = inferFloat64
	default:
		candidate = inferString
	}
	if !ci.observed {
		ci.candidate = candidate
	} else if ci.candidate != candidate {
		// bools only widen to strings, ints widen to floats
		if ci.candidate == inferBool || candidate == inferBool {
			ci.candidate = inferString
		} else if candidate > ci.candidate {
			ci.candidate = candidate
		}
	}
	ci.observed = true
}

// ColumnType returns the narrowest ColumnType which accommodates every observed value
func (ci *ColumnTypeInferrer) ColumnType() scify.ColumnType {
	if !ci.observed {
		return &scify.VarStringColumnType{}
	}
	switch ci.candidate {
	case inferBool:
		return &scify.BoolColumnType{}
	case inferInt64:
		return &scify.Int64ColumnType{}
	case inferFloat64:
		return &scify.Float64ColumnType{}
	default:
		return &scify.VarStringColumnType{}
	}
}

func fits(candidate int, value string) bool {
	switch candidate {
	case inferBool:
		lower := strings.ToLower(value)
		return lower == "true" || lower == "false"
	case inferInt64:
		_, err := strconv.ParseInt(value, 10, 64)
		return err == nil
	case inferFloat64:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	default:
		return true
	}
}

// InferSchema builds a Schema from column names and rows of textual values.
// isNil reports which values should be ignored as missing.
func InferSchema(names []string, records [][]string, isNil func(value string) bool) (scify.Schema, error) {
	inferrers := make([]ColumnTypeInferrer, len(names))
	for _, record := range records {
		for i := 0; i < len(record) && i < len(inferrers); i++ {
			if isNil(record[i]) {
				continue
			}
			inferrers[i].Observe(record[i])
		}
	}
	s := CreateSchema()
	for i, name := range names {
		if _, err := s.CreateColumn(name, inferrers[i].ColumnType()); err != nil {
			return nil, err
		}
	}
	return s, nil
}
