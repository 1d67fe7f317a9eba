package xml2doc

import (
	"time"

	"github.com/alnah/go-xml2doc/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" syntax for footer date values.
//   - "auto" resolves to the current date in YYYY-MM-DD format
//   - "auto:FORMAT" uses a custom format (e.g., "auto:DD/MM/YYYY")
//   - "auto:preset" uses a named preset (iso, european, us, long)
//   - any other value is returned unchanged (passthrough)
//
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, t time.Time) (string, error) {
	return dateutil.ResolveDate(value, t)
}
