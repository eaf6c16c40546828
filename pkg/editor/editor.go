package editor

import (
	"context"

	"github.com/pgcarve/pgcarve/pkg/schema"
)

type (
	// ExecFunc executes one SQL statement with positional parameters.
	ExecFunc func(ctx context.Context, sql string, args ...any) error

	// Session is the slice of editor capability handed to side-effect
	// handlers and to the base engine: execute a statement, quote an
	// identifier. Statements issued through it go down the exact same path
	// the editor's own DDL takes.
	Session interface {
		Exec(ctx context.Context, sql string, args ...any) error
		QuoteName(name string) string
	}

	// Executor is the external execution primitive the editor binds its
	// exec capability to, typically *postgres.Client.
	Executor interface {
		Exec(ctx context.Context, sql string, args ...any) error
	}

	// Quoter safely quotes identifiers for interpolation into DDL.
	Quoter interface {
		QuoteName(name string) string
	}

	// Engine is the base schema-mutation engine the editor delegates
	// ordinary DDL generation to. Engines execute through the provided
	// Session rather than holding their own connection; that is what makes
	// statement interception possible.
	Engine interface {
		CreateTable(ctx context.Context, s Session, m *schema.Model) error
		DropTable(ctx context.Context, s Session, m *schema.Model) error
		RenameTable(ctx context.Context, s Session, m *schema.Model, oldName, newName string) error
		AddColumn(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error
		DropColumn(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error
		AlterColumn(ctx context.Context, s Session, m *schema.Model, oldField, newField *schema.Field) error
	}

	// Editor is a schema-mutation session. It owns the ordered side-effect
	// handler list and the execute/quote bindings for its lifetime, and is
	// intended to be created per migration run. It is not safe for
	// concurrent use; operations are synchronous and single-threaded by
	// contract.
	Editor struct {
		engine      Engine
		exec        ExecFunc
		quote       func(name string) string
		sideEffects []SideEffect
	}

	// Config contains everything needed to construct an Editor.
	Config struct {
		// Engine generates and executes the base, non-partitioned DDL.
		Engine Engine

		// Executor runs statements against the database.
		Executor Executor

		// Quoter quotes identifiers. *postgres.Client satisfies both
		// Executor and Quoter.
		Quoter Quoter

		// SideEffects are invoked for every mutation operation, in the
		// order given here.
		SideEffects []SideEffect
	}
)

// New creates a schema-mutation session from the given configuration.
//
// Example:
//
//	ed := editor.New(editor.Config{
//		Engine:   postgres.NewEngine(),
//		Executor: client,
//		Quoter:   client,
//		SideEffects: []editor.SideEffect{
//			editor.HStoreUniqueSideEffect{},
//			editor.HStoreRequiredSideEffect{},
//		},
//	})
func New(cfg Config) *Editor {
	return &Editor{
		engine:      cfg.Engine,
		exec:        cfg.Executor.Exec,
		quote:       cfg.Quoter.QuoteName,
		sideEffects: cfg.SideEffects,
	}
}

// Exec executes a statement through the session's current exec capability.
func (e *Editor) Exec(ctx context.Context, sql string, args ...any) error {
	return e.exec(ctx, sql, args...)
}

// QuoteName quotes an identifier through the session's quote capability.
func (e *Editor) QuoteName(name string) string {
	return e.quote(name)
}

// CreateModel creates the table for a model, then runs every side-effect
// handler. Handlers run after the base engine so that side effects adding
// constraints find the table already in place.
func (e *Editor) CreateModel(ctx context.Context, m *schema.Model) error {
	if err := e.engine.CreateTable(ctx, e, m); err != nil {
		return err
	}

	for _, se := range e.sideEffects {
		if err := se.CreateModel(ctx, e, m); err != nil {
			return err
		}
	}

	return nil
}

// DeleteModel runs every side-effect handler, then drops the model's table.
// Handlers run first so dependent constraints and side-effect state are torn
// down before the table disappears.
func (e *Editor) DeleteModel(ctx context.Context, m *schema.Model) error {
	for _, se := range e.sideEffects {
		if err := se.DeleteModel(ctx, e, m); err != nil {
			return err
		}
	}

	return e.engine.DropTable(ctx, e, m)
}

// AlterTableName renames the model's table, then runs every side-effect
// handler with the old and new names.
func (e *Editor) AlterTableName(ctx context.Context, m *schema.Model, oldName, newName string) error {
	if err := e.engine.RenameTable(ctx, e, m, oldName, newName); err != nil {
		return err
	}

	for _, se := range e.sideEffects {
		if err := se.AlterTableName(ctx, e, m, oldName, newName); err != nil {
			return err
		}
	}

	return nil
}

// AddField adds a column to the model's table, then runs every side-effect
// handler.
func (e *Editor) AddField(ctx context.Context, m *schema.Model, f *schema.Field) error {
	if err := e.engine.AddColumn(ctx, e, m, f); err != nil {
		return err
	}

	for _, se := range e.sideEffects {
		if err := se.AddField(ctx, e, m, f); err != nil {
			return err
		}
	}

	return nil
}

// RemoveField runs every side-effect handler, then drops the column.
// Handlers run first for the same reason as DeleteModel.
func (e *Editor) RemoveField(ctx context.Context, m *schema.Model, f *schema.Field) error {
	for _, se := range e.sideEffects {
		if err := se.RemoveField(ctx, e, m, f); err != nil {
			return err
		}
	}

	return e.engine.DropColumn(ctx, e, m, f)
}

// AlterField alters a column in place, then runs every side-effect handler
// with the old and new field definitions.
func (e *Editor) AlterField(ctx context.Context, m *schema.Model, oldField, newField *schema.Field) error {
	if err := e.engine.AlterColumn(ctx, e, m, oldField, newField); err != nil {
		return err
	}

	for _, se := range e.sideEffects {
		if err := se.AlterField(ctx, e, m, oldField, newField); err != nil {
			return err
		}
	}

	return nil
}
