package autobq

import "regexp"

const maxFieldNameLength = 128

var nonWordChar = regexp.MustCompile(`\W`)

// SanitizeFieldName maps a raw header token to a BigQuery-safe column name:
// every character outside [A-Za-z0-9_] becomes an underscore and the result
// is truncated to 128 characters. It is pure and idempotent.
//
// No uniqueness is enforced. Two distinct tokens may collapse to the same
// name, in which case table creation fails with a duplicate-column error
// from BigQuery.
func SanitizeFieldName(name string) string {
	sanitized := nonWordChar.ReplaceAllString(name, "_")
	if len(sanitized) > maxFieldNameLength {
		sanitized = sanitized[:maxFieldNameLength]
	}

	return sanitized
}
