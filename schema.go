package autobq

import "cloud.google.com/go/bigquery"

// BuildSchema derives a table schema from a header row: one STRING column
// per header token, in header order, names sanitized. The derivation is
// deterministic; any typing beyond STRING is out of scope.
func BuildSchema(header []string) bigquery.Schema {
	schema := make(bigquery.Schema, 0, len(header))

	for _, name := range header {
		schema = append(schema, &bigquery.FieldSchema{
			Name: SanitizeFieldName(name),
			Type: bigquery.StringFieldType,
		})
	}

	return schema
}

func schemaEqual(a, b bigquery.Schema) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Name != b[i].Name || a[i].Type != b[i].Type {
			return false
		}
	}

	return true
}
