// Package harvest reconciles freshly parsed dataset records against the
// catalog store: it derives stable guids, detects material change, and
// re-maps resource identities across harvest runs.
package harvest

import (
	"context"

	"github.com/opendata-swiss/dcatapchharvest/profile"
)

// Organization is the owning organization a dataset declares.
type Organization struct {
	ID   string
	Name string
}

// DatasetStore is the catalog storage boundary. Show returns
// errors.ErrNotFound for unknown ids.
type DatasetStore interface {
	Show(ctx context.Context, id string) (*profile.Dataset, error)
	Create(ctx context.Context, d *profile.Dataset) (*profile.Dataset, error)
	Update(ctx context.Context, d *profile.Dataset) (*profile.Dataset, error)
}

// ActivityLog records change messages against a dataset. Failures are
// swallowed by implementations; recording never blocks a harvest.
type ActivityLog interface {
	RecordChange(ctx context.Context, datasetID, message string)
}

// OrganizationLookup resolves an organization name or id, returning
// errors.ErrNotFound when it does not exist.
type OrganizationLookup interface {
	Resolve(ctx context.Context, nameOrID string) (Organization, error)
}
