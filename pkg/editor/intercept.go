package editor

import "context"

type capturedStatement struct {
	sql  string
	args []any
}

// captureStatement invokes fn with the session's exec capability swapped for
// a recording stub, and returns the statement fn would have executed.
// Nothing reaches the database while the stub is installed. The original
// capability is restored on every exit path, including errors and panics
// raised by fn.
//
// When fn executes more than one statement, the last one wins; the base
// engine's create-table path emits exactly one.
func (e *Editor) captureStatement(ctx context.Context, fn func(ctx context.Context) error) (string, []any, error) {
	orig := e.exec
	defer func() { e.exec = orig }()

	var captured capturedStatement
	e.exec = func(_ context.Context, sql string, args ...any) error {
		captured.sql = sql
		captured.args = args
		return nil
	}

	if err := fn(ctx); err != nil {
		return "", nil, err
	}

	return captured.sql, captured.args, nil
}
