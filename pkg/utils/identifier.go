package utils

import "github.com/pkg/errors"

// maxIdentifierLength is PostgreSQL's NAMEDATALEN-1: identifiers longer than
// this are silently truncated by the server, which makes generated names
// collide.
const maxIdentifierLength = 63

// ValidateIdentifier checks that a name is usable as a PostgreSQL identifier
// without truncation. Quoting is handled elsewhere; this only rejects names
// the server could not store faithfully.
//
// Examples:
//   - ValidateIdentifier("measurements_2024_jan") -> nil
//   - ValidateIdentifier("") -> error
//   - ValidateIdentifier(strings.Repeat("x", 64)) -> error
func ValidateIdentifier(name string) error {
	if name == "" {
		return errors.New("identifier is empty")
	}

	if len(name) > maxIdentifierLength {
		return errors.Errorf("identifier %q exceeds %d bytes and would be truncated", name, maxIdentifierLength)
	}

	return nil
}
