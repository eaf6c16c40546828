// Package utils contains small SQL assembly helpers shared across the
// codebase: literal rendering for values embedded in generated DDL and
// identifier validation for names that end up in it.
package utils
