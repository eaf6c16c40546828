// Package editor implements the schema-mutation session: a wrapper around a
// base DDL engine that adds PostgreSQL declarative partitioning and a
// composable side-effect pipeline.
//
// Every base mutation operation (create/drop/rename table, add/remove/alter
// column) is re-exposed here with side-effect dispatch around it: each
// registered SideEffect is invoked, in registration order, after the base
// engine for additive operations and before it for destructive ones. A
// handler error aborts the remaining chain and the operation; no rollback is
// attempted here, that belongs to the caller's transaction.
//
// Partitioned tables are created by intercepting the statement the base
// engine would run for a plain table, rewriting its primary key to include
// the partitioning key, and appending a PARTITION BY clause. Range, list,
// and default child partitions are attached with dedicated statements whose
// bound values are always passed as positional parameters.
package editor
