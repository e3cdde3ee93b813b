package profile

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

// Resolver produces canonical, environment-correct identifiers for
// datasets and resources. Values pointing at a configured test
// environment are discarded in favor of the production permalink.
type Resolver struct {
	// SiteURL is the catalog base, without trailing slash.
	SiteURL string
	// TestEnvironmentHosts are matched as substrings against candidate
	// URIs; a match disqualifies the candidate.
	TestEnvironmentHosts []string
}

func (r *Resolver) testEnvironment(uri string) bool {
	for _, host := range r.TestEnvironmentHosts {
		if host != "" && strings.Contains(uri, host) {
			return true
		}
	}
	return false
}

func (r *Resolver) pick(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c != "" && !r.testEnvironment(c) {
			return c
		}
	}
	return ""
}

// Permalink is the stable production URI for a dataset identifier.
func (r *Resolver) Permalink(identifier string) string {
	return fmt.Sprintf("%s/perma/%s", strings.TrimSuffix(r.SiteURL, "/"), identifier)
}

// DatasetURI resolves the canonical URI for a dataset: the graph
// subject when it is an absolute URI, else the record's uri field, else
// its uri extra, else the permalink. Test-environment candidates fall
// through to the next step.
func (r *Resolver) DatasetURI(d *Dataset, subject string) string {
	if uri := r.pick(subject, d.URI, d.Extra("uri")); uri != "" {
		return uri
	}
	return r.Permalink(d.Identifier)
}

// ResourceURI resolves the canonical URI for a resource. Without any
// stored candidate it falls back to the catalog resource page, which
// requires both the owning dataset id and the resource id; when either
// is missing it returns "" to signal that the resource has no identity
// yet.
func (r *Resolver) ResourceURI(res *Resource, subject string) string {
	if uri := r.pick(subject, res.URI); uri != "" {
		return uri
	}
	if res.PackageID == "" || res.ID == "" {
		return ""
	}
	return fmt.Sprintf("%s/dataset/%s/resource/%s",
		strings.TrimSuffix(r.SiteURL, "/"), res.PackageID, res.ID)
}

// URIToIRI validates a URI for graph emission and percent-encodes any
// non-ASCII characters. A URI without a scheme, without a host, or with
// the placeholder host "-" is rejected with ErrInvalidURI.
func URIToIRI(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", errors.Errorf("%w: %q: %v", errors.ErrInvalidURI, uri, err)
	}
	if parsed.Scheme == "" {
		return "", errors.Errorf("%w: %q has no scheme", errors.ErrInvalidURI, uri)
	}
	host := parsed.Hostname()
	if host == "" || host == "-" {
		return "", errors.Errorf("%w: %q has no usable host", errors.ErrInvalidURI, uri)
	}
	return encodeNonASCII(uri), nil
}

// encodeNonASCII percent-encodes every non-ASCII byte, leaving the
// already-legal ASCII structure of the URI untouched.
func encodeNonASCII(uri string) string {
	var b strings.Builder
	for i := 0; i < len(uri); i++ {
		c := uri[i]
		if c < 0x80 {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}
