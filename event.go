package autobq

import (
	"fmt"
	"strings"
)

// Event is a finalize notification from Cloud Storage.
type Event struct {
	Name   string `json:"name"`
	Bucket string `json:"bucket"`

	// for test
	localPath string
}

// FullPath returns full path of the storage object beginning with gs://.
// It doubles as the source URI handed to BigQuery load jobs.
func (e *Event) FullPath() string {
	return fmt.Sprintf("gs://%s/%s", e.Bucket, e.Name)
}

var tableIDSuffixes = []string{".csv", ".xls"}

// TableID derives the destination table ID from the object name by trimming
// a trailing source-format extension. A name without a known extension is
// returned unchanged; whether such names reach this point is decided by the
// pipeline's object pattern, not here.
func (e *Event) TableID() string {
	for _, suffix := range tableIDSuffixes {
		if strings.HasSuffix(e.Name, suffix) {
			return strings.TrimSuffix(e.Name, suffix)
		}
	}

	return e.Name
}
