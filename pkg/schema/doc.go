// Package schema defines the table and field metadata that the schema
// mutation layer operates on, including the partitioning configuration
// (method and key) attached to partitioned tables.
//
// Models are plain value descriptors. They carry no connection state and are
// never retained by the components that consume them; every operation that
// needs partitioning metadata re-validates the model on entry via
// PartitioningOptions.
package schema
