package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgcarve/pgcarve/pkg/editor"
	"github.com/pgcarve/pgcarve/pkg/schema"
)

// Engine is the base schema-mutation engine: it generates and executes the
// ordinary, non-partitioned DDL for models and fields. All statements go
// through the provided session rather than a connection of the engine's own,
// which is what lets the editor intercept the create-table statement when
// building partitioned tables.
type Engine struct{}

// NewEngine creates the base DDL engine.
func NewEngine() *Engine {
	return &Engine{}
}

// CreateTable creates a plain table for the model. The primary-key column
// carries an inline PRIMARY KEY constraint.
func (e *Engine) CreateTable(ctx context.Context, s editor.Session, m *schema.Model) error {
	columns := make([]string, 0, len(m.Fields))
	for i := range m.Fields {
		columns = append(columns, e.columnDefinition(s, &m.Fields[i]))
	}

	sql := fmt.Sprintf("CREATE TABLE %s (%s)", s.QuoteName(m.Table), strings.Join(columns, ", "))

	return s.Exec(ctx, sql)
}

// DropTable drops the model's table along with dependent objects.
func (e *Engine) DropTable(ctx context.Context, s editor.Session, m *schema.Model) error {
	return s.Exec(ctx, fmt.Sprintf("DROP TABLE %s CASCADE", s.QuoteName(m.Table)))
}

// RenameTable renames the model's table.
func (e *Engine) RenameTable(ctx context.Context, s editor.Session, m *schema.Model, oldName, newName string) error {
	sql := fmt.Sprintf("ALTER TABLE %s RENAME TO %s", s.QuoteName(oldName), s.QuoteName(newName))
	return s.Exec(ctx, sql)
}

// AddColumn adds a column for the field to the model's table.
func (e *Engine) AddColumn(ctx context.Context, s editor.Session, m *schema.Model, f *schema.Field) error {
	sql := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", s.QuoteName(m.Table), e.columnDefinition(s, f))
	return s.Exec(ctx, sql)
}

// DropColumn removes the field's column from the model's table.
func (e *Engine) DropColumn(ctx context.Context, s editor.Session, m *schema.Model, f *schema.Field) error {
	sql := fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", s.QuoteName(m.Table), s.QuoteName(f.ColumnName()))
	return s.Exec(ctx, sql)
}

// AlterColumn applies the differences between two field definitions as a
// sequence of ALTER TABLE statements. PostgreSQL wants separate statements
// for renames, type changes, nullability, and defaults.
func (e *Engine) AlterColumn(ctx context.Context, s editor.Session, m *schema.Model, oldField, newField *schema.Field) error {
	table := s.QuoteName(m.Table)

	if oldField.ColumnName() != newField.ColumnName() {
		sql := fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
			table, s.QuoteName(oldField.ColumnName()), s.QuoteName(newField.ColumnName()))
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	}

	column := s.QuoteName(newField.ColumnName())

	if oldField.Type != newField.Type {
		sql := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s", table, column, e.columnType(newField))
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	}

	if oldField.Nullable != newField.Nullable {
		action := "SET NOT NULL"
		if newField.Nullable {
			action = "DROP NOT NULL"
		}
		if err := s.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s %s", table, column, action)); err != nil {
			return err
		}
	}

	if newField.Default != nil {
		sql := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
			table, column, e.formatDefault(newField.Default))
		if err := s.Exec(ctx, sql); err != nil {
			return err
		}
	} else if oldField.Default != nil {
		if err := s.Exec(ctx, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT", table, column)); err != nil {
			return err
		}
	}

	return nil
}

// columnDefinition renders one column clause of a CREATE TABLE / ADD COLUMN
// statement.
func (e *Engine) columnDefinition(s editor.Session, f *schema.Field) string {
	parts := []string{s.QuoteName(f.ColumnName()), e.columnType(f)}

	if !f.Nullable && !f.PrimaryKey {
		parts = append(parts, "NOT NULL")
	}

	if f.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}

	if f.Unique && !f.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}

	if f.Default != nil && !f.AutoIncrement {
		parts = append(parts, "DEFAULT "+e.formatDefault(f.Default))
	}

	return strings.Join(parts, " ")
}

func (e *Engine) columnType(f *schema.Field) string {
	switch f.Type {
	case schema.FieldTypeString:
		return "VARCHAR(255)"
	case schema.FieldTypeText:
		return "TEXT"
	case schema.FieldTypeInt:
		if f.AutoIncrement {
			return "SERIAL"
		}
		return "INTEGER"
	case schema.FieldTypeBigInt:
		if f.AutoIncrement {
			return "BIGSERIAL"
		}
		return "BIGINT"
	case schema.FieldTypeFloat:
		return "DOUBLE PRECISION"
	case schema.FieldTypeBool:
		return "BOOLEAN"
	case schema.FieldTypeTimestamp:
		return "TIMESTAMP"
	case schema.FieldTypeDate:
		return "DATE"
	case schema.FieldTypeJSON:
		return "JSONB"
	case schema.FieldTypeHStore:
		return "HSTORE"
	default:
		return "VARCHAR(255)"
	}
}

func (e *Engine) formatDefault(value any) string {
	switch v := value.(type) {
	case string:
		if strings.EqualFold(v, "now()") || strings.EqualFold(v, "current_timestamp") {
			return "CURRENT_TIMESTAMP"
		}
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int, int32, int64, float32, float64:
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("'%v'", v)
	}
}
