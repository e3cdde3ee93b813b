package vocabulary

import (
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// LanguageTable maps EU language authority URIs to ISO 639-1 codes and
// back, via the skos:notation on each authority entry.
type LanguageTable struct {
	codeByURI map[string]string
	uriByCode map[string]string
}

func loadLanguages() (LanguageTable, error) {
	g, err := loadReferenceGraph("languages.rdf", rdfx.FormatRDFXML)
	if err != nil {
		return LanguageTable{}, err
	}

	t := LanguageTable{
		codeByURI: make(map[string]string),
		uriByCode: make(map[string]string),
	}
	for _, triple := range g.Triples() {
		if !rdfx.TermsEqual(triple.Pred, SKOSNotation) {
			continue
		}
		uri := subjectURI(triple.Subj)
		code := strings.ToLower(triple.Obj.String())
		if uri == "" || code == "" {
			continue
		}
		t.codeByURI[uri] = code
		t.uriByCode[code] = uri
	}
	return t, nil
}

// Code resolves an EU language authority URI to its ISO 639-1 code.
func (t LanguageTable) Code(uri string) (string, bool) {
	code, ok := t.codeByURI[uri]
	return code, ok
}

// URI resolves an ISO 639-1 code to the EU language authority URI.
func (t LanguageTable) URI(code string) (string, bool) {
	uri, ok := t.uriByCode[strings.ToLower(strings.TrimSpace(code))]
	return uri, ok
}
