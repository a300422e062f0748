package autobq

import (
	"testing"

	"cloud.google.com/go/bigquery"
)

func TestBuildSchema(t *testing.T) {
	schema := BuildSchema([]string{"Name", "E-Mail", "Zip Code"})

	want := []string{"Name", "E_Mail", "Zip_Code"}

	if len(schema) != len(want) {
		t.Fatalf("schema should have %d fields, but %d", len(want), len(schema))
	}

	for i, name := range want {
		if schema[i].Name != name {
			t.Errorf("field %d name should be %q, but %q", i, name, schema[i].Name)
		}

		if schema[i].Type != bigquery.StringFieldType {
			t.Errorf("field %d type should be STRING, but %s", i, schema[i].Type)
		}
	}
}

func TestBuildSchema_Empty(t *testing.T) {
	if got := BuildSchema(nil); len(got) != 0 {
		t.Errorf("schema for nil header should be empty, but has %d fields", len(got))
	}
}

func TestSchemaEqual(t *testing.T) {
	a := BuildSchema([]string{"Name", "E-Mail"})

	cases := []struct {
		name   string
		header []string
		want   bool
	}{
		{"same header", []string{"Name", "E-Mail"}, true},
		{"same after sanitization", []string{"Name", "E Mail"}, true},
		{"different name", []string{"Name", "Phone"}, false},
		{"different length", []string{"Name"}, false},
	}

	for _, c := range cases {
		if got := schemaEqual(a, BuildSchema(c.header)); got != c.want {
			t.Errorf("%s: schemaEqual = %v, want %v", c.name, got, c.want)
		}
	}
}
