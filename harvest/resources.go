package harvest

import (
	"github.com/opendata-swiss/dcatapchharvest/profile"
)

// resourceKey is the cross-run identity of a resource: its explicit
// identifier when one survives harvests, else its access URL.
func resourceKey(r *profile.Resource) string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.URL
}

// ReconcileResourceIDs assigns persisted storage ids from existing
// resources onto matching incoming ones, in place. Each existing
// resource is reused at most once, first match wins, so repeated
// harvests of the same source update rows instead of duplicating them.
func ReconcileResourceIDs(incoming, existing []*profile.Resource) {
	pool := make(map[string]*profile.Resource, len(existing))
	for _, ex := range existing {
		key := resourceKey(ex)
		if key == "" || ex.ID == "" {
			continue
		}
		if _, dup := pool[key]; !dup {
			pool[key] = ex
		}
	}

	for _, in := range incoming {
		key := resourceKey(in)
		if key == "" {
			continue
		}
		ex, ok := pool[key]
		if !ok {
			continue
		}
		in.ID = ex.ID
		in.PackageID = ex.PackageID
		delete(pool, key)
	}
}
