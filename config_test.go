package autobq

import "testing"

func TestConfig_Validate(t *testing.T) {
	valid := Config{Project: "proj", Dataset: "csv_imports", Bucket: "csv-uploads"}

	if err := valid.validate(); err != nil {
		t.Errorf("valid config should pass validation: %v", err)
	}

	cases := []struct {
		name string
		cfg  Config
	}{
		{"missing project", Config{Dataset: "d", Bucket: "b"}},
		{"missing dataset", Config{Project: "p", Bucket: "b"}},
		{"missing bucket", Config{Project: "p", Dataset: "d"}},
	}

	for _, c := range cases {
		if err := c.cfg.validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BIGQUERY_PROJECT_ID", "proj")
	t.Setenv("BIGQUERY_DATASET_ID", "csv_imports")
	t.Setenv("SOURCE_BUCKET", "csv-uploads")

	cfg := ConfigFromEnv()

	want := Config{Project: "proj", Dataset: "csv_imports", Bucket: "csv-uploads"}
	if cfg != want {
		t.Errorf("ConfigFromEnv() = %+v, want %+v", cfg, want)
	}
}
