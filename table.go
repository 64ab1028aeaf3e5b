package scify

// Table is an in-memory concatenation of Partitions which all respect the same Schema.
// Row order is the order in which Partitions were appended, then the order of Rows within them.
type Table interface {
	Schema() Schema
	NumRows() int
	NumColumns() int
	Partitions() []Partition
	GetRow(rowNum int) (Row, error)
	ForEachRow(fn func(row Row) error) error
}
