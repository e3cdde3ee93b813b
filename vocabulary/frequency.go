package vocabulary

import (
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// legacyIrregular is the one legacy frequency URI that is never accepted
// on input. Its modern counterpart OTHER carries a different meaning, so
// values still using it must be re-curated at the source.
const legacyIrregular = "http://purl.org/cld/freq/completelyIrregular"

// FrequencyTable maps EU frequency authority concepts to their legacy
// purl.org/cld/freq equivalents and back. Serialization accepts either
// form and always emits the EU URI.
type FrequencyTable struct {
	legacyByEU map[string]string
	euByLegacy map[string]string
}

func loadFrequencies() (FrequencyTable, error) {
	g, err := loadReferenceGraph("frequency.ttl", rdfx.FormatTurtle)
	if err != nil {
		return FrequencyTable{}, err
	}

	t := FrequencyTable{
		legacyByEU: make(map[string]string),
		euByLegacy: make(map[string]string),
	}
	for _, concept := range g.SubjectsOfType(SKOSConcept) {
		eu := subjectURI(concept)
		if eu == "" {
			continue
		}
		t.legacyByEU[eu] = ""
		for _, legacy := range g.ObjectValues(concept, SKOSExactMatch) {
			t.legacyByEU[eu] = legacy
			if legacy != legacyIrregular {
				t.euByLegacy[legacy] = eu
			}
		}
	}
	return t, nil
}

// Normalize maps a frequency URI to its EU authority form. EU URIs pass
// through when known; legacy purl.org/cld/freq URIs are translated,
// except completelyIrregular which is rejected. Unknown values return "".
func (t FrequencyTable) Normalize(uri string) string {
	uri = strings.TrimSpace(uri)
	if _, ok := t.legacyByEU[uri]; ok {
		return uri
	}
	return t.euByLegacy[uri]
}

// Legacy returns the purl.org/cld/freq counterpart of an EU frequency
// URI, or "" when the concept has none.
func (t FrequencyTable) Legacy(euURI string) string {
	return t.legacyByEU[euURI]
}

// Known reports whether the URI is an EU frequency authority concept.
func (t FrequencyTable) Known(uri string) bool {
	_, ok := t.legacyByEU[uri]
	return ok
}
