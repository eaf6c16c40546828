package partition

import (
	"context"
	"time"

	"github.com/pgcarve/pgcarve/pkg/postgres"
	"github.com/pgcarve/pgcarve/pkg/schema"
	"github.com/pgcarve/pgcarve/pkg/utils"
	"github.com/pkg/errors"
)

type (
	// Partitioner is the slice of the schema editor the manager drives:
	// attaching and dropping child partitions. *editor.Editor satisfies it.
	Partitioner interface {
		AddRangePartition(ctx context.Context, m *schema.Model, name string, fromValues, toValues []any) error
		AddDefaultPartition(ctx context.Context, m *schema.Model, name string) error
		DeletePartition(ctx context.Context, m *schema.Model, name string) error
	}

	// Introspector reports the partitions that currently exist.
	// *postgres.Client satisfies it.
	Introspector interface {
		ListPartitions(ctx context.Context, parent string) ([]postgres.Partition, error)
	}

	// Manager reconciles a Plan against the live database.
	Manager struct {
		editor Partitioner
		intro  Introspector
		now    func() time.Time
	}

	// Config contains dependencies for creating a Manager.
	Config struct {
		Editor       Partitioner
		Introspector Introspector

		// Now overrides the clock; defaults to time.Now.
		Now func() time.Time
	}

	// TableResult describes what reconciliation did (or would do) for one
	// table.
	TableResult struct {
		// Table is the parent table name.
		Table string

		// Created lists partitions created (or, in a dry run, needing
		// creation).
		Created []string

		// Deleted lists partitions dropped (or needing dropping).
		Deleted []string

		// Skipped lists planned partitions that already exist.
		Skipped []string
	}
)

// NewManager creates a partition maintenance manager.
//
// Example:
//
//	mgr := partition.NewManager(partition.Config{
//		Editor:       ed,
//		Introspector: client,
//	})
//
//	results, err := mgr.Apply(ctx, plan)
func NewManager(cfg Config) *Manager {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Manager{
		editor: cfg.Editor,
		intro:  cfg.Introspector,
		now:    now,
	}
}

// PlanActions computes, without executing anything, what Apply would do for
// each table in the plan.
func (m *Manager) PlanActions(ctx context.Context, plan *Plan) ([]TableResult, error) {
	return m.reconcile(ctx, plan, false)
}

// Apply reconciles the plan against the live database: missing planned
// partitions are created, and partitions older than each table's retention
// are dropped. Execution is fail-fast; on error the results accumulated so
// far are returned alongside it, and previously applied statements stay
// applied (the caller's transaction decides atomicity).
func (m *Manager) Apply(ctx context.Context, plan *Plan) ([]TableResult, error) {
	return m.reconcile(ctx, plan, true)
}

func (m *Manager) reconcile(ctx context.Context, plan *Plan, apply bool) ([]TableResult, error) {
	now := m.now()
	results := make([]TableResult, 0, len(plan.Tables))

	for _, table := range plan.Tables {
		result := TableResult{Table: table.Model.Table}

		existing, err := m.intro.ListPartitions(ctx, table.Model.Table)
		if err != nil {
			return results, err
		}

		live := make(map[string]struct{}, len(existing))
		for _, p := range existing {
			live[p.Name] = struct{}{}
		}

		for _, tp := range table.Strategy.ToCreate(now) {
			name, err := childName(table.Model.Table, tp.Suffix())
			if err != nil {
				return append(results, result), err
			}

			if _, ok := live[name]; ok {
				result.Skipped = append(result.Skipped, name)
				continue
			}

			if apply {
				err := m.editor.AddRangePartition(ctx, table.Model, name,
					[]any{tp.From()}, []any{tp.To()})
				if err != nil {
					return append(results, result), errors.Wrapf(err, "failed to create partition %s", name)
				}
			}
			result.Created = append(result.Created, name)
		}

		if table.Default {
			name, err := childName(table.Model.Table, "default")
			if err != nil {
				return append(results, result), err
			}

			if _, ok := live[name]; ok {
				result.Skipped = append(result.Skipped, name)
			} else {
				if apply {
					if err := m.editor.AddDefaultPartition(ctx, table.Model, name); err != nil {
						return append(results, result), errors.Wrapf(err, "failed to create partition %s", name)
					}
				}
				result.Created = append(result.Created, name)
			}
		}

		for _, tp := range table.Strategy.ToDelete(now) {
			name := table.Model.Table + "_" + tp.Suffix()
			if _, ok := live[name]; !ok {
				continue
			}

			if apply {
				if err := m.editor.DeletePartition(ctx, table.Model, name); err != nil {
					return append(results, result), errors.Wrapf(err, "failed to delete partition %s", name)
				}
			}
			result.Deleted = append(result.Deleted, name)
		}

		results = append(results, result)
	}

	return results, nil
}

// childName composes a partition-table name and rejects names the server
// would silently truncate. A truncated name never matches the planned one,
// which would make every later run retry the same creation.
func childName(parent, suffix string) (string, error) {
	name := parent + "_" + suffix
	if err := utils.ValidateIdentifier(name); err != nil {
		return "", errors.Wrapf(err, "cannot name partition of %s", parent)
	}
	return name, nil
}
