package vocabulary

import (
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// License is one entry of the opendata.swiss terms-of-use vocabulary.
type License struct {
	// Concept is the dcat-ap.ch concept URI.
	Concept string
	// Name is the skos:prefLabel, used as the stored license value.
	Name string
	// Homepage is the foaf:homepage URI the RDF output points at.
	Homepage string
}

// CreativeCommons reports whether this entry is a Creative Commons
// license rather than an opendata.swiss terms-of-use statement.
func (l License) CreativeCommons() bool {
	return strings.Contains(l.Homepage, "creativecommons.org") ||
		strings.HasPrefix(l.Name, "cc-")
}

// LicenseTable resolves license values in either direction: stored names
// to homepages for serialization, and names or homepages back to the
// canonical entry when parsing.
type LicenseTable struct {
	byName     map[string]License
	byHomepage map[string]License
	byConcept  map[string]License
}

func loadLicenses() (LicenseTable, error) {
	g, err := loadReferenceGraph("licenses.ttl", rdfx.FormatTurtle)
	if err != nil {
		return LicenseTable{}, err
	}

	t := LicenseTable{
		byName:     make(map[string]License),
		byHomepage: make(map[string]License),
		byConcept:  make(map[string]License),
	}
	for _, concept := range g.SubjectsOfType(SKOSConcept) {
		l := License{
			Concept:  subjectURI(concept),
			Name:     g.ObjectValue(concept, SKOSPrefLabel),
			Homepage: g.ObjectValue(concept, FOAFHomepage),
		}
		if l.Name == "" {
			return LicenseTable{}, errors.Errorf("%w: license %s has no skos:prefLabel",
				errors.ErrVocabularyData, l.Concept)
		}
		t.byName[l.Name] = l
		if l.Homepage != "" {
			t.byHomepage[l.Homepage] = l
		}
		if l.Concept != "" {
			t.byConcept[l.Concept] = l
		}
	}
	return t, nil
}

// Lookup resolves a raw license value, which may be a stored name, a
// homepage URI, or a concept URI, to its vocabulary entry.
func (t LicenseTable) Lookup(value string) (License, bool) {
	value = strings.TrimSpace(value)
	if l, ok := t.byName[value]; ok {
		return l, true
	}
	if l, ok := t.byHomepage[value]; ok {
		return l, true
	}
	l, ok := t.byConcept[value]
	return l, ok
}

// ByName resolves a stored license name.
func (t LicenseTable) ByName(name string) (License, bool) {
	l, ok := t.byName[name]
	return l, ok
}

// IsCreativeCommons reports whether the value resolves to a Creative
// Commons entry. Unknown values are never Creative Commons.
func (t LicenseTable) IsCreativeCommons(value string) bool {
	l, ok := t.Lookup(value)
	return ok && l.CreativeCommons()
}
