package autobq

import "testing"

func TestEvent_FullPath(t *testing.T) {
	e := Event{Name: "reports/orders-2024.csv", Bucket: "uploads"}

	if got, want := e.FullPath(), "gs://uploads/reports/orders-2024.csv"; got != want {
		t.Errorf("FullPath() = %q, want %q", got, want)
	}
}

func TestEvent_TableID(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"orders-2024.csv", "orders-2024"},
		{"statement.xls", "statement"},
		// A name without a known extension passes through unchanged; the
		// pipeline's pattern decides whether it is processed at all.
		{"report", "report"},
		{"archive.csv.csv", "archive.csv"},
	}

	for _, c := range cases {
		e := Event{Name: c.name}
		if got := e.TableID(); got != c.want {
			t.Errorf("TableID() for %q = %q, want %q", c.name, got, c.want)
		}
	}
}
