package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// timestampFormat renders timestamps the way PostgreSQL parses literals,
// with an explicit offset so the session time zone cannot shift the bound.
const timestampFormat = "2006-01-02 15:04:05.999999-07:00"

// Literal renders a Go value as a PostgreSQL literal safe for direct
// interpolation. Partition bounds live inside utility statements, which the
// server parses without any bind-parameter context, so they cannot travel as
// placeholders the way DML values do.
//
// Examples:
//   - Literal(42) -> "42"
//   - Literal("us-east") -> "'us-east'"
//   - Literal(time.Date(...)) -> "'2024-01-01 00:00:00+00:00'"
func Literal(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return pq.QuoteLiteral(v), nil
	case time.Time:
		return pq.QuoteLiteral(v.UTC().Format(timestampFormat)), nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", errors.Errorf("cannot render %T as a SQL literal", value)
	}
}

// Literals renders a list of values as a comma-joined literal list.
//
// Example:
//   - Literals([]any{1, "b"}) -> "1, 'b'"
func Literals(values []any) (string, error) {
	parts := make([]string, len(values))
	for i, value := range values {
		literal, err := Literal(value)
		if err != nil {
			return "", err
		}
		parts[i] = literal
	}
	return strings.Join(parts, ", "), nil
}
