// Package postgres provides the PostgreSQL-facing primitives the schema
// mutation layer is built on: a thin client over database/sql (execute,
// query, identifier quoting), partition introspection from the system
// catalogs, and the base DDL engine that emits ordinary, non-partitioned
// schema statements.
package postgres
