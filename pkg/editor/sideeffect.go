package editor

import (
	"context"

	"github.com/pgcarve/pgcarve/pkg/schema"
)

type (
	// SideEffect is an independently pluggable behavior triggered by every
	// schema-mutation operation dispatched through an Editor. Handlers
	// receive the session explicitly and issue their own DDL through it,
	// so their statements take the same path as the editor's own.
	//
	// Handlers only caring about some hooks should embed NopSideEffect and
	// override what they need. Invocation order always equals registration
	// order; a handler returning an error aborts the remaining chain and
	// the enclosing operation.
	SideEffect interface {
		CreateModel(ctx context.Context, s Session, m *schema.Model) error
		DeleteModel(ctx context.Context, s Session, m *schema.Model) error
		AlterTableName(ctx context.Context, s Session, m *schema.Model, oldName, newName string) error
		AddField(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error
		RemoveField(ctx context.Context, s Session, m *schema.Model, f *schema.Field) error
		AlterField(ctx context.Context, s Session, m *schema.Model, oldField, newField *schema.Field) error
	}

	// NopSideEffect implements every hook as a no-op.
	NopSideEffect struct{}
)

func (NopSideEffect) CreateModel(context.Context, Session, *schema.Model) error {
	return nil
}

func (NopSideEffect) DeleteModel(context.Context, Session, *schema.Model) error {
	return nil
}

func (NopSideEffect) AlterTableName(context.Context, Session, *schema.Model, string, string) error {
	return nil
}

func (NopSideEffect) AddField(context.Context, Session, *schema.Model, *schema.Field) error {
	return nil
}

func (NopSideEffect) RemoveField(context.Context, Session, *schema.Model, *schema.Field) error {
	return nil
}

func (NopSideEffect) AlterField(context.Context, Session, *schema.Model, *schema.Field, *schema.Field) error {
	return nil
}
