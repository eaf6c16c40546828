package schema_test

import (
	"testing"

	"github.com/pgcarve/pgcarve/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measurementModel() *schema.Model {
	return &schema.Model{
		Table:      "measurements",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Type: schema.FieldTypeBigInt, PrimaryKey: true, AutoIncrement: true},
			{Name: "recordedAt", Column: "recorded_at", Type: schema.FieldTypeTimestamp},
			{Name: "value", Type: schema.FieldTypeFloat},
		},
		PartitioningMethod: schema.Range,
		PartitioningKey:    []string{"recordedAt"},
	}
}

func TestPartitioningOptions(t *testing.T) {
	opts, err := measurementModel().PartitioningOptions()
	require.NoError(t, err)
	assert.Equal(t, schema.Range, opts.Method)
	assert.Equal(t, []string{"recordedAt"}, opts.Key)
}

func TestPartitioningOptionsFailsFast(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*schema.Model)
		field  string
		reason string
	}{
		{
			name:   "missing method",
			mutate: func(m *schema.Model) { m.PartitioningMethod = "" },
			reason: "no partitioning method set",
		},
		{
			name:   "missing key",
			mutate: func(m *schema.Model) { m.PartitioningKey = nil },
			reason: "no partitioning key set",
		},
		{
			name:   "unrecognized method",
			mutate: func(m *schema.Model) { m.PartitioningMethod = "hash" },
			reason: `"hash" is not a recognized partitioning method`,
		},
		{
			name:   "unknown key field",
			mutate: func(m *schema.Model) { m.PartitioningKey = []string{"nope"} },
			field:  "nope",
			reason: `field "nope" in the partitioning key is not a field on the model`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := measurementModel()
			tt.mutate(m)

			opts, err := m.PartitioningOptions()
			require.Nil(t, opts)

			var cfgErr *schema.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "measurements", cfgErr.Table)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.Equal(t, tt.reason, cfgErr.Reason)
		})
	}
}

func TestPartitioningOptionsChecksMethodBeforeKeyFields(t *testing.T) {
	// When both the method and a key field are invalid, the method check
	// wins; validation stops at the first violation.
	m := measurementModel()
	m.PartitioningMethod = "hash"
	m.PartitioningKey = []string{"nope"}

	_, err := m.PartitioningOptions()

	var cfgErr *schema.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "not a recognized partitioning method")
}

func TestFieldColumnName(t *testing.T) {
	m := measurementModel()
	assert.Equal(t, "id", m.Field("id").ColumnName())
	assert.Equal(t, "recorded_at", m.Field("recordedAt").ColumnName())
	assert.Nil(t, m.Field("missing"))
}

func TestPrimaryKeyField(t *testing.T) {
	m := measurementModel()
	require.NotNil(t, m.PrimaryKeyField())
	assert.Equal(t, "id", m.PrimaryKeyField().Name)

	m.PrimaryKey = "missing"
	assert.Nil(t, m.PrimaryKeyField())
}
