package harvest

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/opendata-swiss/dcatapchharvest/profile"
)

// DetectChange compares an incoming record against the stored one and
// reports whether a write is needed, with a human-readable reason. The
// checks short-circuit: the first difference found wins.
func DetectChange(existing, incoming *profile.Dataset, log *slog.Logger) (bool, string) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if !datesEqual(existing.Modified, incoming.Modified, log) {
		return true, fmt.Sprintf("dataset modified date changed to %s", incoming.Modified)
	}
	if existing.URL != incoming.URL {
		return true, fmt.Sprintf("dataset url changed from %q to %q", existing.URL, incoming.URL)
	}
	if len(existing.Resources) != len(incoming.Resources) {
		return true, fmt.Sprintf("resource count changed to %d", len(incoming.Resources))
	}

	byURL := make(map[string]*profile.Resource, len(existing.Resources))
	for _, r := range existing.Resources {
		if _, dup := byURL[r.URL]; !dup {
			byURL[r.URL] = r
		}
	}
	for _, in := range incoming.Resources {
		ex, ok := byURL[in.URL]
		if !ok {
			return true, "resource access url changed"
		}
		if ex.DownloadURL != in.DownloadURL {
			return true, "resource download url changed"
		}
		if !datesEqual(ex.Modified, in.Modified, log) {
			return true, "resource modified date changed"
		}
	}
	return false, ""
}

// datesEqual compares two stored date strings as instants, assuming
// Central European time for naive values. A parse failure on either
// side counts as equal so a bad date never forces endless rewrites.
func datesEqual(a, b string, log *slog.Logger) bool {
	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	ta, okA := profile.ParseStoredDate(a)
	tb, okB := profile.ParseStoredDate(b)
	if !okA || !okB {
		log.Warn("unparseable date in change detection, assuming unchanged",
			"existing", a, "incoming", b)
		return true
	}
	return ta.Equal(tb)
}
