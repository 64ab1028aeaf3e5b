package scify

// PartitionIterator is a generalized interface for iterating over Partitions, regardless of where they come from
type PartitionIterator interface {
	Schema() Schema // the Schema of the underlying data, either supplied to or inferred by the Parser
	HasNextPartition() bool
	NextPartition() (part Partition, err error)
	OnEnd(onEnd func())
}
