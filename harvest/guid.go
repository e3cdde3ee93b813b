package harvest

import (
	"context"
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/profile"
)

// GUIDDeriver derives the stable external identifier that matches an
// incoming record to a previously stored dataset.
type GUIDDeriver struct {
	Orgs OrganizationLookup
}

// Derive resolves the record's guid. Precedence: the identifier field,
// a uri extra, the record's own uri, an identifier extra, a
// dcat_identifier extra, and finally the record name prefixed with the
// source URL.
//
// An identifier embedding an <id>@<org-slug> pattern is validated: the
// slug must resolve to a real organization, and when the record declares
// an owning organization the two must agree. A failed validation rejects
// the record.
func (g *GUIDDeriver) Derive(ctx context.Context, d *profile.Dataset, sourceURL string) (string, error) {
	if d.Identifier != "" {
		if err := g.validateOrganization(ctx, d); err != nil {
			return "", err
		}
		return d.Identifier, nil
	}
	if uri := d.Extra("uri"); uri != "" {
		return uri, nil
	}
	if d.URI != "" {
		return d.URI, nil
	}
	if id := d.Extra("identifier"); id != "" {
		return id, nil
	}
	if id := d.Extra("dcat_identifier"); id != "" {
		return id, nil
	}
	if d.Name == "" {
		return "", errors.ErrMissingGUID
	}
	if sourceURL != "" {
		return strings.TrimSuffix(sourceURL, "/") + "/" + d.Name, nil
	}
	return d.Name, nil
}

func (g *GUIDDeriver) validateOrganization(ctx context.Context, d *profile.Dataset) error {
	slug := profile.OrganizationSlug(d.Identifier)
	if slug == "" {
		return nil
	}
	if g.Orgs == nil {
		return nil
	}
	org, err := g.Orgs.Resolve(ctx, slug)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return errors.Errorf("%w: organization %q from identifier %q does not exist",
				errors.ErrOrgNotFound, slug, d.Identifier)
		}
		return errors.Wrap(err, "harvest", "Derive", "resolving organization")
	}
	if d.Organization != "" && d.Organization != org.Name && d.Organization != org.ID {
		return errors.Errorf("%w: identifier %q names organization %q but record belongs to %q",
			errors.ErrOrgMismatch, d.Identifier, org.Name, d.Organization)
	}
	return nil
}
