package scify

// Schema is an ordered mapping from column names to ColumnTypes.
// Every file merged into a Table must respect the same Schema.
type Schema interface {
	Equals(otherSchema Schema) error // nil iff both Schemas have the same names, in the same order, with the same types
	Fingerprint() uint64             // a hash of the ordered column names and types. Equal Schemas have equal Fingerprints.
	Clone() Schema
	NumColumns() int
	GetOffset(colName string) (offset Column, err error)
	HasColumn(colName string) bool
	CreateColumn(colName string, columnType ColumnType) (newSchema Schema, err error)
	ColumnNames() []string
	ColumnTypes() []ColumnType
	ForEachColumn(fn func(name string, col Column) error) error // iterates in column index order
	ToString() string
}
