package postgres

import (
	"context"

	"github.com/pkg/errors"
)

// Partition holds what the system catalogs know about one child partition of
// a partitioned table.
type Partition struct {
	// Name is the child table's relation name.
	Name string

	// Bound is the partition bound expression as printed by
	// pg_get_expr(relpartbound), e.g.
	// "FOR VALUES FROM ('2024-01-01') TO ('2024-02-01')" or "DEFAULT".
	Bound string
}

// ListPartitions returns the child partitions of the named parent table in
// name order. A parent with no partitions (or a table that is not
// partitioned at all) yields an empty slice.
func (c *Client) ListPartitions(ctx context.Context, parent string) ([]Partition, error) {
	query := `
		SELECT
			child.relname,
			pg_get_expr(child.relpartbound, child.oid)
		FROM pg_inherits
		JOIN pg_class child ON child.oid = pg_inherits.inhrelid
		JOIN pg_class parent ON parent.oid = pg_inherits.inhparent
		JOIN pg_namespace ns ON ns.oid = parent.relnamespace
		WHERE parent.relname = $1
		AND ns.nspname = current_schema()
		ORDER BY child.relname`

	rows, err := c.db.QueryContext(ctx, query, parent)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list partitions of %s", parent)
	}
	defer rows.Close()

	var partitions []Partition
	for rows.Next() {
		var p Partition
		if err := rows.Scan(&p.Name, &p.Bound); err != nil {
			return nil, errors.Wrap(err, "failed to scan partition row")
		}
		partitions = append(partitions, p)
	}

	return partitions, rows.Err()
}

// TableExists reports whether a table with the given name exists in the
// current schema.
func (c *Client) TableExists(ctx context.Context, name string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM pg_class
			JOIN pg_namespace ns ON ns.oid = pg_class.relnamespace
			WHERE pg_class.relname = $1
			AND ns.nspname = current_schema()
			AND pg_class.relkind IN ('r', 'p')
		)`

	var exists bool
	if err := c.db.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, errors.Wrapf(err, "failed to check for table %s", name)
	}

	return exists, nil
}
