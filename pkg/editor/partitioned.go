package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgcarve/pgcarve/pkg/schema"
	"github.com/pgcarve/pgcarve/pkg/utils"
	"github.com/pkg/errors"
)

// Statement templates for partition DDL. Identifier slots are filled with
// quoted names, bound-value slots with escaped literals: utility statements
// are parsed by the server without bind-parameter context, so bounds cannot
// travel as placeholders.
const (
	sqlPartitionBy         = " PARTITION BY %s (%s)"
	sqlAddDefaultPartition = "CREATE TABLE %s PARTITION OF %s DEFAULT"
	sqlAddRangePartition   = "CREATE TABLE %s PARTITION OF %s FOR VALUES FROM (%s) TO (%s)"
	sqlAddListPartition    = "CREATE TABLE %s PARTITION OF %s FOR VALUES IN (%s)"
	sqlDeletePartition     = "DROP TABLE %s"
)

// CreatePartitionedModel creates the parent table for a partitioned model.
//
// The statement the base engine would run for an ordinary table is captured
// without executing it, its inline single-column PRIMARY KEY constraint is
// stripped, a composite primary key of the original primary-key column
// followed by the partitioning-key columns is appended, and the statement is
// extended with a PARTITION BY clause before being executed with the
// original parameters. The composite key satisfies PostgreSQL's requirement
// that a partitioned table's primary key include the partitioning key.
func (e *Editor) CreatePartitionedModel(ctx context.Context, m *schema.Model) error {
	opts, err := m.PartitioningOptions()
	if err != nil {
		return err
	}

	sql, args, err := e.captureStatement(ctx, func(ctx context.Context) error {
		return e.engine.CreateTable(ctx, e, m)
	})
	if err != nil {
		return err
	}

	pk := m.PrimaryKeyField()
	if pk == nil {
		return errors.Errorf("model %q has no primary key field %q", m.Table, m.PrimaryKey)
	}

	keyColumns := e.quotedKeyColumns(m, opts.Key)
	keySQL := strings.Join(keyColumns, ", ")

	// The partitioning key may itself contain the primary-key column; a
	// constraint must not list a column twice.
	pkColumns := []string{e.quote(pk.ColumnName())}
	for _, column := range keyColumns {
		if column != pkColumns[0] {
			pkColumns = append(pkColumns, column)
		}
	}

	sql = strings.ReplaceAll(sql, " PRIMARY KEY", "")
	sql = fmt.Sprintf("%s, PRIMARY KEY (%s))",
		strings.TrimSuffix(sql, ")"),
		strings.Join(pkColumns, ", "),
	)
	sql += fmt.Sprintf(sqlPartitionBy, strings.ToUpper(string(opts.Method)), keySQL)

	return e.exec(ctx, sql, args...)
}

// AddRangePartition attaches a new range partition to a partitioned model.
// The from/to bounds are ordered sequences of values aligned positionally
// with the partitioning key; they are rendered as escaped typed literals
// before execution.
//
// Overlapping or duplicate bounds are not detected here; execution errors
// from the database propagate unchanged.
func (e *Editor) AddRangePartition(ctx context.Context, m *schema.Model, name string, fromValues, toValues []any) error {
	if _, err := m.PartitioningOptions(); err != nil {
		return err
	}

	fromSQL, err := utils.Literals(fromValues)
	if err != nil {
		return errors.Wrapf(err, "invalid lower bound for partition %q", name)
	}

	toSQL, err := utils.Literals(toValues)
	if err != nil {
		return errors.Wrapf(err, "invalid upper bound for partition %q", name)
	}

	sql := fmt.Sprintf(sqlAddRangePartition,
		e.quote(name),
		e.quote(m.Table),
		fromSQL,
		toSQL,
	)

	return e.exec(ctx, sql)
}

// AddListPartition attaches a new list partition accepting exactly the given
// values, rendered as escaped literals.
func (e *Editor) AddListPartition(ctx context.Context, m *schema.Model, name string, values ...any) error {
	if _, err := m.PartitioningOptions(); err != nil {
		return err
	}

	valuesSQL, err := utils.Literals(values)
	if err != nil {
		return errors.Wrapf(err, "invalid values for partition %q", name)
	}

	sql := fmt.Sprintf(sqlAddListPartition,
		e.quote(name),
		e.quote(m.Table),
		valuesSQL,
	)

	return e.exec(ctx, sql)
}

// AddDefaultPartition attaches a default partition: the catch-all for rows
// matching no other partition's bounds. The database itself rejects a second
// default partition on the same parent.
func (e *Editor) AddDefaultPartition(ctx context.Context, m *schema.Model, name string) error {
	if _, err := m.PartitioningOptions(); err != nil {
		return err
	}

	sql := fmt.Sprintf(sqlAddDefaultPartition, e.quote(name), e.quote(m.Table))

	return e.exec(ctx, sql)
}

// DeletePartition drops a child partition of a partitioned model.
func (e *Editor) DeletePartition(ctx context.Context, m *schema.Model, name string) error {
	if _, err := m.PartitioningOptions(); err != nil {
		return err
	}

	return e.exec(ctx, fmt.Sprintf(sqlDeletePartition, e.quote(name)))
}

// quotedKeyColumns resolves partitioning-key field names to quoted column
// names, preserving declared order. The key is assumed validated.
func (e *Editor) quotedKeyColumns(m *schema.Model, key []string) []string {
	quoted := make([]string, len(key))
	for i, name := range key {
		column := name
		if f := m.Field(name); f != nil {
			column = f.ColumnName()
		}
		quoted[i] = e.quote(column)
	}
	return quoted
}
