package partition

import (
	"github.com/pgcarve/pgcarve/pkg/config"
	"github.com/pgcarve/pgcarve/pkg/schema"
	"github.com/pkg/errors"
)

type (
	// Table pairs a partitioned model with the strategy that maintains it.
	Table struct {
		Model    *schema.Model
		Strategy *TimeStrategy

		// Default controls whether a catch-all default partition is kept
		// alongside the timed ones.
		Default bool
	}

	// Plan is the full set of partitioned tables to maintain.
	Plan struct {
		Tables []Table
	}
)

// FromConfig builds a maintenance plan from the project configuration. Each
// configured table becomes a range-partitioned model whose fields are the
// primary key plus the (timestamp) partitioning key.
func FromConfig(cfg *config.Config) (*Plan, error) {
	plan := &Plan{Tables: make([]Table, 0, len(cfg.Tables))}

	for _, t := range cfg.Tables {
		unit, err := ParseUnit(t.Interval)
		if err != nil {
			return nil, errors.Wrapf(err, "table %q", t.Table)
		}

		model := &schema.Model{
			Table:      t.Table,
			PrimaryKey: t.PrimaryKey,
			Fields: []schema.Field{
				{Name: t.PrimaryKey, Type: schema.FieldTypeBigInt, PrimaryKey: true, AutoIncrement: true},
				{Name: t.Key[0], Type: schema.FieldTypeTimestamp},
			},
			PartitioningMethod: schema.Range,
			PartitioningKey:    t.Key,
		}

		// Surface configuration mistakes at plan build time instead of on
		// the first DDL attempt.
		if _, err := model.PartitioningOptions(); err != nil {
			return nil, err
		}

		plan.Tables = append(plan.Tables, Table{
			Model: model,
			Strategy: &TimeStrategy{
				Size:      Size{Unit: unit, Count: t.IntervalCount},
				Count:     t.Count,
				Retention: t.Retention,
			},
			Default: t.Default,
		})
	}

	return plan, nil
}
