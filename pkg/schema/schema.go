package schema

import "fmt"

type (
	// Method identifies how a partitioned table routes rows to its
	// partitions. PostgreSQL supports more methods than these, but this
	// layer only generates DDL for the two below.
	Method string

	// FieldType is the portable type of a field, mapped to a concrete
	// PostgreSQL column type by the engine.
	FieldType string

	// HStoreOptions carries the database-level constraints tied to an
	// hstore field. Uniqueness lists groups of keys; each group becomes one
	// unique index over the keys it names (a single-key group is a plain
	// per-key unique index). Required lists keys that must be present,
	// each enforced by a CHECK constraint.
	HStoreOptions struct {
		Uniqueness [][]string
		Required   []string
	}

	// Field describes a single column of a model.
	Field struct {
		// Name is the logical field name, used for lookups and as the
		// column name when Column is empty.
		Name string

		// Column overrides the database column name.
		Column string

		Type          FieldType
		Nullable      bool
		PrimaryKey    bool
		Unique        bool
		AutoIncrement bool

		// Default is rendered inline into column definitions. Nil means no
		// default clause.
		Default any

		// HStore is only set for FieldTypeHStore fields.
		HStore *HStoreOptions
	}

	// Model describes one table: its name, primary key, fields, and (for
	// partitioned tables) the partitioning method and key.
	//
	// A model is either fully configured for partitioning (both
	// PartitioningMethod and PartitioningKey set and valid) or not
	// partitioned at all. Partial configuration is reported as a
	// *ConfigError by PartitioningOptions at first use.
	Model struct {
		Table      string
		PrimaryKey string
		Fields     []Field

		PartitioningMethod Method
		PartitioningKey    []string
	}

	// PartitioningOptions is the validated partitioning configuration of a
	// model, returned by Model.PartitioningOptions.
	PartitioningOptions struct {
		Method Method
		Key    []string
	}

	// ConfigError reports a model that is not validly set up for
	// partitioning. It is non-retryable; the model definition itself must
	// be fixed. It is always raised before any SQL is built or executed.
	ConfigError struct {
		// Table is the name of the offending model's table.
		Table string

		// Field is the partitioning key entry that failed to resolve, when
		// that is the violation. Empty otherwise.
		Field string

		// Reason describes the first violated check.
		Reason string
	}
)

const (
	// Range partitions rows by half-open intervals of the partitioning key.
	Range Method = "range"

	// List partitions rows by set membership of the partitioning key.
	List Method = "list"
)

const (
	FieldTypeString    FieldType = "string"
	FieldTypeText      FieldType = "text"
	FieldTypeInt       FieldType = "int"
	FieldTypeBigInt    FieldType = "bigint"
	FieldTypeFloat     FieldType = "float"
	FieldTypeBool      FieldType = "bool"
	FieldTypeTimestamp FieldType = "timestamp"
	FieldTypeDate      FieldType = "date"
	FieldTypeJSON      FieldType = "json"
	FieldTypeHStore    FieldType = "hstore"
)

func (e *ConfigError) Error() string {
	return fmt.Sprintf("model %q is not properly configured to be partitioned: %s", e.Table, e.Reason)
}

// ColumnName returns the database column name for the field.
func (f *Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// Field looks up a field by name. Returns nil when no field matches.
func (m *Model) Field(name string) *Field {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return &m.Fields[i]
		}
	}
	return nil
}

// PrimaryKeyField returns the field named by Model.PrimaryKey, or nil when
// the model has no such field.
func (m *Model) PrimaryKeyField() *Field {
	return m.Field(m.PrimaryKey)
}

// PartitioningOptions validates the model's partitioning configuration and
// returns it. Checks run in a fixed order and fail fast on the first
// violation: method present, key present, method recognized, every key entry
// resolving to a field on the model. Callers must invoke this before every
// partitioning operation since models are not guaranteed to be pre-validated.
func (m *Model) PartitioningOptions() (*PartitioningOptions, error) {
	if m.PartitioningMethod == "" {
		return nil, &ConfigError{
			Table:  m.Table,
			Reason: "no partitioning method set",
		}
	}

	if len(m.PartitioningKey) == 0 {
		return nil, &ConfigError{
			Table:  m.Table,
			Reason: "no partitioning key set",
		}
	}

	switch m.PartitioningMethod {
	case Range, List:
	default:
		return nil, &ConfigError{
			Table:  m.Table,
			Reason: fmt.Sprintf("%q is not a recognized partitioning method", m.PartitioningMethod),
		}
	}

	for _, name := range m.PartitioningKey {
		if m.Field(name) == nil {
			return nil, &ConfigError{
				Table:  m.Table,
				Field:  name,
				Reason: fmt.Sprintf("field %q in the partitioning key is not a field on the model", name),
			}
		}
	}

	return &PartitioningOptions{
		Method: m.PartitioningMethod,
		Key:    m.PartitioningKey,
	}, nil
}
