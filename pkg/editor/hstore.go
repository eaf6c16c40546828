package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgcarve/pgcarve/pkg/schema"
)

type (
	// HStoreUniqueSideEffect enforces database-level uniqueness for keys of
	// hstore columns. Each uniqueness group declared on a field becomes one
	// unique index over the group's key expressions, so uniqueness holds
	// even for writes that bypass the application.
	HStoreUniqueSideEffect struct {
		NopSideEffect
	}

	// HStoreRequiredSideEffect enforces presence of required hstore keys
	// with CHECK constraints, the database-level equivalent of NOT NULL for
	// a key inside an hstore column.
	HStoreRequiredSideEffect struct {
		NopSideEffect
	}
)

func (HStoreUniqueSideEffect) CreateModel(ctx context.Context, s Session, m *schema.Model) error {
	for i := range m.Fields {
		if err := createUniqueIndexes(ctx, s, m.Table, &m.Fields[i]); err != nil {
			return err
		}
	}
	return nil
}

func (HStoreUniqueSideEffect) AddField(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error {
	return createUniqueIndexes(ctx, s, m.Table, f)
}

func (HStoreUniqueSideEffect) RemoveField(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error {
	for _, keys := range hstoreUniqueness(f) {
		name := hstoreIndexName(m.Table, f.ColumnName(), keys)
		sql := fmt.Sprintf("DROP INDEX IF EXISTS %s", s.QuoteName(name))
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	}
	return nil
}

// AlterTableName renames the per-group indexes so their names keep tracking
// the table they belong to.
func (HStoreUniqueSideEffect) AlterTableName(ctx context.Context, s Session, m *schema.Model, oldName, newName string) error {
	for i := range m.Fields {
		f := &m.Fields[i]
		for _, keys := range hstoreUniqueness(f) {
			sql := fmt.Sprintf("ALTER INDEX IF EXISTS %s RENAME TO %s",
				s.QuoteName(hstoreIndexName(oldName, f.ColumnName(), keys)),
				s.QuoteName(hstoreIndexName(newName, f.ColumnName(), keys)),
			)
			if err := s.Exec(ctx, sql); err != nil {
				return err
			}
		}
	}
	return nil
}

// AlterField reconciles indexes with the new uniqueness declaration:
// vanished groups are dropped, new groups created, and surviving groups are
// renamed when the column name changed.
func (HStoreUniqueSideEffect) AlterField(ctx context.Context, s Session, m *schema.Model, oldField, newField *schema.Field) error {
	oldGroups := groupSet(hstoreUniqueness(oldField))
	newGroups := groupSet(hstoreUniqueness(newField))

	for id, keys := range oldGroups {
		if _, ok := newGroups[id]; ok {
			continue
		}
		sql := fmt.Sprintf("DROP INDEX IF EXISTS %s",
			s.QuoteName(hstoreIndexName(m.Table, oldField.ColumnName(), keys)))
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	}

	for id, keys := range newGroups {
		if _, ok := oldGroups[id]; !ok {
			if err := createUniqueIndex(ctx, s, m.Table, newField.ColumnName(), keys); err != nil {
				return err
			}
			continue
		}

		if oldField.ColumnName() != newField.ColumnName() {
			sql := fmt.Sprintf("ALTER INDEX IF EXISTS %s RENAME TO %s",
				s.QuoteName(hstoreIndexName(m.Table, oldField.ColumnName(), keys)),
				s.QuoteName(hstoreIndexName(m.Table, newField.ColumnName(), keys)),
			)
			if err := s.Exec(ctx, sql); err != nil {
				return err
			}
		}
	}

	return nil
}

func (HStoreRequiredSideEffect) CreateModel(ctx context.Context, s Session, m *schema.Model) error {
	for i := range m.Fields {
		if err := createRequiredConstraints(ctx, s, m.Table, &m.Fields[i]); err != nil {
			return err
		}
	}
	return nil
}

func (HStoreRequiredSideEffect) AddField(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error {
	return createRequiredConstraints(ctx, s, m.Table, f)
}

func (HStoreRequiredSideEffect) RemoveField(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error {
	for _, key := range hstoreRequired(f) {
		sql := fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s",
			s.QuoteName(m.Table),
			s.QuoteName(hstoreConstraintName(m.Table, f.ColumnName(), key)),
		)
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	}
	return nil
}

func (HStoreRequiredSideEffect) AlterTableName(ctx context.Context, s Session, m *schema.Model, oldName, newName string) error {
	for i := range m.Fields {
		f := &m.Fields[i]
		for _, key := range hstoreRequired(f) {
			sql := fmt.Sprintf("ALTER TABLE %s RENAME CONSTRAINT %s TO %s",
				s.QuoteName(newName),
				s.QuoteName(hstoreConstraintName(oldName, f.ColumnName(), key)),
				s.QuoteName(hstoreConstraintName(newName, f.ColumnName(), key)),
			)
			if err := s.Exec(ctx, sql); err != nil {
				return err
			}
		}
	}
	return nil
}

func (HStoreRequiredSideEffect) AlterField(ctx context.Context, s Session, m *schema.Model, oldField, newField *schema.Field) error {
	oldKeys := keySet(hstoreRequired(oldField))
	newKeys := keySet(hstoreRequired(newField))

	for key := range oldKeys {
		if _, ok := newKeys[key]; ok && oldField.ColumnName() == newField.ColumnName() {
			continue
		}
		sql := fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s",
			s.QuoteName(m.Table),
			s.QuoteName(hstoreConstraintName(m.Table, oldField.ColumnName(), key)),
		)
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	}

	for key := range newKeys {
		if _, ok := oldKeys[key]; ok && oldField.ColumnName() == newField.ColumnName() {
			continue
		}
		if err := createRequiredConstraint(ctx, s, m.Table, newField.ColumnName(), key); err != nil {
			return err
		}
	}

	return nil
}

func createUniqueIndexes(ctx context.Context, s Session, table string, f *schema.Field) error {
	for _, keys := range hstoreUniqueness(f) {
		if err := createUniqueIndex(ctx, s, table, f.ColumnName(), keys); err != nil {
			return err
		}
	}
	return nil
}

func createUniqueIndex(ctx context.Context, s Session, table, column string, keys []string) error {
	exprs := make([]string, len(keys))
	for i, key := range keys {
		exprs[i] = fmt.Sprintf("(%s->%s)", s.QuoteName(column), hstoreKeyLiteral(key))
	}

	sql := fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s)",
		s.QuoteName(hstoreIndexName(table, column, keys)),
		s.QuoteName(table),
		strings.Join(exprs, ", "),
	)

	return s.Exec(ctx, sql)
}

func createRequiredConstraints(ctx context.Context, s Session, table string, f *schema.Field) error {
	for _, key := range hstoreRequired(f) {
		if err := createRequiredConstraint(ctx, s, table, f.ColumnName(), key); err != nil {
			return err
		}
	}
	return nil
}

func createRequiredConstraint(ctx context.Context, s Session, table, column, key string) error {
	sql := fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK ((%s->%s) IS NOT NULL)",
		s.QuoteName(table),
		s.QuoteName(hstoreConstraintName(table, column, key)),
		s.QuoteName(column),
		hstoreKeyLiteral(key),
	)

	return s.Exec(ctx, sql)
}

func hstoreUniqueness(f *schema.Field) [][]string {
	if f == nil || f.HStore == nil {
		return nil
	}
	return f.HStore.Uniqueness
}

func hstoreRequired(f *schema.Field) []string {
	if f == nil || f.HStore == nil {
		return nil
	}
	return f.HStore.Required
}

func hstoreIndexName(table, column string, keys []string) string {
	return fmt.Sprintf("%s_%s_unique_%s", table, column, strings.Join(keys, "_"))
}

func hstoreConstraintName(table, column, key string) string {
	return fmt.Sprintf("%s_%s_required_%s", table, column, key)
}

// hstoreKeyLiteral renders an hstore key as a SQL string literal with
// embedded quotes doubled.
func hstoreKeyLiteral(key string) string {
	return "'" + strings.ReplaceAll(key, "'", "''") + "'"
}

func groupSet(groups [][]string) map[string][]string {
	set := make(map[string][]string, len(groups))
	for _, keys := range groups {
		set[strings.Join(keys, "\x00")] = keys
	}
	return set
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}
