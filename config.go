package autobq

import (
	"os"

	"golang.org/x/xerrors"
)

// Config binds one watched bucket to one destination dataset. Each deployed
// function carries exactly one binding.
type Config struct {
	// Project is the GCP project owning the destination dataset.
	Project string

	// Dataset is the BigQuery dataset ID tables are provisioned in.
	Dataset string

	// Bucket is the Cloud Storage bucket whose finalize events this
	// pipeline accepts. Events for any other bucket are rejected.
	Bucket string
}

// ConfigFromEnv builds a Config from the environment variables
// BIGQUERY_PROJECT_ID, BIGQUERY_DATASET_ID and SOURCE_BUCKET.
func ConfigFromEnv() Config {
	return Config{
		Project: os.Getenv("BIGQUERY_PROJECT_ID"),
		Dataset: os.Getenv("BIGQUERY_DATASET_ID"),
		Bucket:  os.Getenv("SOURCE_BUCKET"),
	}
}

func (c Config) validate() error {
	if c.Project == "" {
		return xerrors.New("config: Project is required")
	}

	if c.Dataset == "" {
		return xerrors.New("config: Dataset is required")
	}

	if c.Bucket == "" {
		return xerrors.New("config: Bucket is required")
	}

	return nil
}
