package editor_test

import (
	"testing"

	"github.com/pgcarve/pgcarve/pkg/editor"
	"github.com/pgcarve/pgcarve/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productModel() *schema.Model {
	return &schema.Model{
		Table:      "products",
		PrimaryKey: "id",
		Fields: []schema.Field{
			{Name: "id", Type: schema.FieldTypeBigInt, PrimaryKey: true, AutoIncrement: true},
			{
				Name: "attributes",
				Type: schema.FieldTypeHStore,
				HStore: &schema.HStoreOptions{
					Uniqueness: [][]string{{"sku"}, {"vendor", "vendor_code"}},
					Required:   []string{"sku"},
				},
			},
		},
	}
}

func executedSQL(exec *recordingExecutor) []string {
	sqls := make([]string, 0, len(exec.statements))
	for _, stmt := range exec.statements {
		sqls = append(sqls, stmt.sql)
	}
	return sqls
}

func TestHStoreUniqueCreateModel(t *testing.T) {
	ed, exec := newPostgresEditor(editor.HStoreUniqueSideEffect{})

	require.NoError(t, ed.CreateModel(t.Context(), productModel()))

	sqls := executedSQL(exec)
	require.Len(t, sqls, 3)
	assert.Contains(t, sqls[0], `CREATE TABLE "products"`)
	assert.Equal(t,
		`CREATE UNIQUE INDEX "products_attributes_unique_sku" ON "products" (("attributes"->'sku'))`,
		sqls[1])
	assert.Equal(t,
		`CREATE UNIQUE INDEX "products_attributes_unique_vendor_vendor_code" ON "products" (("attributes"->'vendor'), ("attributes"->'vendor_code'))`,
		sqls[2])
}

func TestHStoreUniqueRemoveField(t *testing.T) {
	ed, exec := newPostgresEditor(editor.HStoreUniqueSideEffect{})
	m := productModel()

	require.NoError(t, ed.RemoveField(t.Context(), m, m.Field("attributes")))

	sqls := executedSQL(exec)
	require.Len(t, sqls, 3)
	assert.Equal(t, `DROP INDEX IF EXISTS "products_attributes_unique_sku"`, sqls[0])
	assert.Equal(t, `DROP INDEX IF EXISTS "products_attributes_unique_vendor_vendor_code"`, sqls[1])
	assert.Contains(t, sqls[2], `DROP COLUMN "attributes"`)
}

func TestHStoreUniqueAlterTableName(t *testing.T) {
	ed, exec := newPostgresEditor(editor.HStoreUniqueSideEffect{})
	m := productModel()

	require.NoError(t, ed.AlterTableName(t.Context(), m, "products", "items"))

	sqls := executedSQL(exec)
	require.Len(t, sqls, 3)
	assert.Equal(t, `ALTER TABLE "products" RENAME TO "items"`, sqls[0])
	assert.Equal(t,
		`ALTER INDEX IF EXISTS "products_attributes_unique_sku" RENAME TO "items_attributes_unique_sku"`,
		sqls[1])
	assert.Equal(t,
		`ALTER INDEX IF EXISTS "products_attributes_unique_vendor_vendor_code" RENAME TO "items_attributes_unique_vendor_vendor_code"`,
		sqls[2])
}

func TestHStoreUniqueAlterFieldDiffsGroups(t *testing.T) {
	m := productModel()
	oldField := m.Field("attributes")

	newField := *oldField
	newField.HStore = &schema.HStoreOptions{
		Uniqueness: [][]string{{"sku"}, {"barcode"}},
	}

	ed, exec := newPostgresEditor(editor.HStoreUniqueSideEffect{})
	require.NoError(t, ed.AlterField(t.Context(), m, oldField, &newField))

	sqls := executedSQL(exec)
	assert.Contains(t, sqls, `DROP INDEX IF EXISTS "products_attributes_unique_vendor_vendor_code"`)
	assert.Contains(t, sqls,
		`CREATE UNIQUE INDEX "products_attributes_unique_barcode" ON "products" (("attributes"->'barcode'))`)

	// The untouched "sku" group must be left alone.
	for _, sql := range sqls {
		assert.NotContains(t, sql, `DROP INDEX IF EXISTS "products_attributes_unique_sku"`)
	}
}

func TestHStoreRequiredCreateModel(t *testing.T) {
	ed, exec := newPostgresEditor(editor.HStoreRequiredSideEffect{})

	require.NoError(t, ed.CreateModel(t.Context(), productModel()))

	sqls := executedSQL(exec)
	require.Len(t, sqls, 2)
	assert.Equal(t,
		`ALTER TABLE "products" ADD CONSTRAINT "products_attributes_required_sku" CHECK (("attributes"->'sku') IS NOT NULL)`,
		sqls[1])
}

func TestHStoreRequiredRemoveField(t *testing.T) {
	ed, exec := newPostgresEditor(editor.HStoreRequiredSideEffect{})
	m := productModel()

	require.NoError(t, ed.RemoveField(t.Context(), m, m.Field("attributes")))

	sqls := executedSQL(exec)
	require.Len(t, sqls, 2)
	assert.Equal(t,
		`ALTER TABLE "products" DROP CONSTRAINT IF EXISTS "products_attributes_required_sku"`,
		sqls[0])
}

func TestHStoreRequiredAlterTableName(t *testing.T) {
	ed, exec := newPostgresEditor(editor.HStoreRequiredSideEffect{})
	m := productModel()

	require.NoError(t, ed.AlterTableName(t.Context(), m, "products", "items"))

	sqls := executedSQL(exec)
	require.Len(t, sqls, 2)
	assert.Equal(t,
		`ALTER TABLE "items" RENAME CONSTRAINT "products_attributes_required_sku" TO "items_attributes_required_sku"`,
		sqls[1])
}

func TestHStoreSideEffectsIgnorePlainFields(t *testing.T) {
	m := measurementModel()
	ed, exec := newPostgresEditor(editor.HStoreUniqueSideEffect{}, editor.HStoreRequiredSideEffect{})

	require.NoError(t, ed.CreateModel(t.Context(), m))

	// Only the base CREATE TABLE runs; no hstore DDL for non-hstore fields.
	require.Len(t, exec.statements, 1)
	assert.Contains(t, exec.statements[0].sql, "CREATE TABLE")
}
