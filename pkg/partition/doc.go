// Package partition implements declarative maintenance of time-ranged
// partitions: a plan describes which tables are partitioned and by what
// cadence, and the manager reconciles that plan against the partitions that
// actually exist, creating upcoming ones ahead of time and dropping ones
// that have aged out of retention.
//
// All period math is done in UTC. Partition bounds are half-open
// [start, next start) intervals, matching PostgreSQL range partition
// semantics.
package partition
