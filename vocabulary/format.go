package vocabulary

import (
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// formatExceptions maps format values whose EU file-type code differs
// from the value itself, mostly service interfaces.
var formatExceptions = map[string]string{
	"api":    "REST",
	"sparql": "SPARQLQ",
	"wfs":    "WFS_SRVC",
	"wms":    "WMS_SRVC",
	"wmts":   "WMTS_SRVC",
}

// FormatTable resolves free-text format values to EU file-type authority
// URIs. Matching is case-insensitive on the authority code.
type FormatTable struct {
	byKey map[string]string
}

func loadFormats() (FormatTable, error) {
	g, err := loadReferenceGraph("filetypes.ttl", rdfx.FormatTurtle)
	if err != nil {
		return FormatTable{}, err
	}

	t := FormatTable{byKey: make(map[string]string)}
	for _, concept := range g.SubjectsOfType(SKOSConcept) {
		uri := subjectURI(concept)
		code := strings.TrimPrefix(uri, EUFileTypeBase)
		if code == "" || code == uri {
			continue
		}
		t.byKey[strings.ToLower(code)] = uri
	}
	for value, code := range formatExceptions {
		t.byKey[value] = EUFileTypeBase + code
	}
	return t, nil
}

// URIFor resolves a format value to its EU file-type URI. Unknown values
// return ok=false; the caller decides whether to drop or keep the raw
// value.
func (t FormatTable) URIFor(value string) (string, bool) {
	uri, ok := t.byKey[strings.ToLower(strings.TrimSpace(value))]
	return uri, ok
}
