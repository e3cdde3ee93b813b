// Package profile implements the bidirectional mapping between RDF
// dataset graphs and the flat catalog record format, for the DCAT-AP CH
// vocabulary and its schema.org variant.
package profile

import (
	"encoding/json"
	"sort"
	"strings"
)

// DefaultLanguages are the language codes every multilingual field
// carries. A populated LocalizedText always holds all of them, with ""
// standing in for a missing translation.
var DefaultLanguages = []string{"de", "fr", "it", "en"}

// DefaultLanguage is the tag assumed for literals without a language tag.
const DefaultLanguage = "de"

// flatPriority is the language order used when a multilingual value has
// to collapse into a single string.
var flatPriority = []string{"en", "de", "fr", "it"}

// titlePriority prefers the catalog's default language when a dataset
// name is derived from its title.
var titlePriority = []string{"de", "fr", "en", "it"}

// LocalizedText is a multilingual value keyed by language code.
type LocalizedText map[string]string

// NewLocalizedText returns a map with an empty entry per language.
func NewLocalizedText(languages []string) LocalizedText {
	lt := make(LocalizedText, len(languages))
	for _, lang := range languages {
		lt[lang] = ""
	}
	return lt
}

// Empty reports whether every entry is the empty string.
func (lt LocalizedText) Empty() bool {
	for _, v := range lt {
		if v != "" {
			return false
		}
	}
	return true
}

// Flatten collapses the map into a single string, preferring languages
// in en, de, fr, it order and falling back to any non-empty entry.
func (lt LocalizedText) Flatten() string {
	return lt.flattenIn(flatPriority)
}

func (lt LocalizedText) flattenIn(priority []string) string {
	for _, lang := range priority {
		if v := lt[lang]; v != "" {
			return v
		}
	}
	langs := make([]string, 0, len(lt))
	for lang := range lt {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if v := lt[lang]; v != "" {
			return v
		}
	}
	return ""
}

// Tag is one free keyword attached to a dataset.
type Tag struct {
	Name string `json:"name"`
}

// Group is a theme membership, stored as a lowercase EU data-theme code.
type Group struct {
	Name string `json:"name"`
}

// SeeAlso points at a related dataset by its external identifier.
type SeeAlso struct {
	DatasetIdentifier string `json:"dataset_identifier"`
}

// Extra is one free-form key/value pair on a dataset.
type Extra struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ContactPoint is one dataset contact.
type ContactPoint struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Temporal is one temporal-coverage interval, both ends as ISO 8601
// datetime strings.
type Temporal struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Relation is one related document with a multilingual label.
type Relation struct {
	Label LocalizedText `json:"label"`
	URL   string        `json:"url"`
}

// QualifiedRelation is one typed relationship to another resource.
type QualifiedRelation struct {
	Relation string `json:"relation"`
	HadRole  string `json:"had_role"`
}

// Publisher identifies the publishing organization. Name is a single
// string; legacy records carried a multilingual map instead, which
// UnmarshalJSON collapses.
type Publisher struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts both the current {url, name} shape and the
// legacy shape where name is a language map.
func (p *Publisher) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL  string          `json:"url"`
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.URL = raw.URL
	p.Name = ""
	if len(raw.Name) == 0 {
		return nil
	}
	var name string
	if err := json.Unmarshal(raw.Name, &name); err == nil {
		p.Name = name
		return nil
	}
	var localized LocalizedText
	if err := json.Unmarshal(raw.Name, &localized); err != nil {
		return err
	}
	p.Name = localized.Flatten()
	return nil
}

// Empty reports whether the publisher carries no information.
func (p Publisher) Empty() bool {
	return p.URL == "" && p.Name == ""
}

// Dataset is the flat record a harvested DCAT dataset maps onto.
type Dataset struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Organization string `json:"owner_org,omitempty"`

	Identifier  string        `json:"identifier"`
	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`
	URL         string        `json:"url"`
	URI         string        `json:"uri,omitempty"`

	Issued   string `json:"issued"`
	Modified string `json:"modified"`

	Spatial            string `json:"spatial"`
	SpatialURI         string `json:"spatial_uri"`
	AccrualPeriodicity string `json:"accrual_periodicity"`

	Tags     []Tag               `json:"tags"`
	Keywords map[string][]string `json:"keywords"`

	Languages     []string  `json:"language"`
	Groups        []Group   `json:"groups"`
	Documentation []string  `json:"documentation"`
	ConformsTo    []string  `json:"conforms_to"`
	SeeAlsos      []SeeAlso `json:"see_alsos"`

	ContactPoints      []ContactPoint      `json:"contact_points"`
	Temporals          []Temporal          `json:"temporals"`
	Relations          []Relation          `json:"relations"`
	QualifiedRelations []QualifiedRelation `json:"qualified_relations"`

	Publisher Publisher `json:"publisher"`

	Resources []*Resource `json:"resources"`
	Extras    []Extra     `json:"extras"`
}

// FlatTitle collapses the multilingual title into a single string,
// preferring de, fr, en, it in that order.
func (d *Dataset) FlatTitle() string {
	return d.Title.flattenIn(titlePriority)
}

// Extra returns the value of the named extra, or "".
func (d *Dataset) Extra(key string) string {
	for _, e := range d.Extras {
		if e.Key == key {
			return e.Value
		}
	}
	return ""
}

// SetExtra replaces or appends the named extra.
func (d *Dataset) SetExtra(key, value string) {
	for i := range d.Extras {
		if d.Extras[i].Key == key {
			d.Extras[i].Value = value
			return
		}
	}
	d.Extras = append(d.Extras, Extra{Key: key, Value: value})
}

// Resource is the flat record one distribution maps onto.
type Resource struct {
	ID        string `json:"id,omitempty"`
	PackageID string `json:"package_id,omitempty"`

	Identifier string `json:"identifier"`
	URI        string `json:"uri,omitempty"`

	Title       LocalizedText `json:"title"`
	Description LocalizedText `json:"description"`

	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`

	Format    string `json:"format"`
	MediaType string `json:"media_type"`

	License string `json:"license"`
	Rights  string `json:"rights"`

	Coverage           string `json:"coverage"`
	ByteSize           int64  `json:"byte_size"`
	TemporalResolution string `json:"temporal_resolution"`

	Languages      []string `json:"language"`
	Documentation  []string `json:"documentation"`
	AccessServices []string `json:"access_services"`

	Issued   string `json:"issued"`
	Modified string `json:"modified"`
}

// normalizeEmail strips a mailto: prefix and surrounding whitespace.
func normalizeEmail(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimPrefix(v, "mailto:")
}
