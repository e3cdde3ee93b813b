package vocabulary

import (
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// ThemeTable maps between the dcat-ap.ch theme scheme and the EU
// data-theme authority. Stored theme values are lowercase EU codes.
type ThemeTable struct {
	euByCH  map[string][]string
	euCodes map[string]string
}

func loadThemes() (ThemeTable, error) {
	g, err := loadReferenceGraph("themes.ttl", rdfx.FormatTurtle)
	if err != nil {
		return ThemeTable{}, err
	}

	t := ThemeTable{
		euByCH:  make(map[string][]string),
		euCodes: make(map[string]string),
	}
	for _, concept := range g.SubjectsOfType(SKOSConcept) {
		ch := subjectURI(concept)
		if ch == "" {
			continue
		}
		for _, eu := range g.ObjectValues(concept, SKOSExactMatch) {
			t.euByCH[ch] = append(t.euByCH[ch], eu)
			code := strings.TrimPrefix(eu, EUThemeBase)
			t.euCodes[strings.ToLower(code)] = eu
		}
	}
	return t, nil
}

// Classify resolves a theme URI to the lowercase EU data-theme codes it
// stands for. Swiss theme concepts expand to their EU matches, URIs in
// the deprecated opendata.swiss scheme are first rewritten into the
// current dcat-ap.ch scheme, and EU URIs map to their own code. Unknown
// URIs classify to nothing.
func (t ThemeTable) Classify(uri string) []string {
	uri = strings.TrimSpace(uri)
	if slug := strings.TrimPrefix(uri, DeprecatedThemeBase); slug != uri {
		uri = CHThemeBase + slug
	}
	if eus, ok := t.euByCH[uri]; ok {
		codes := make([]string, 0, len(eus))
		for _, eu := range eus {
			codes = append(codes, strings.ToLower(strings.TrimPrefix(eu, EUThemeBase)))
		}
		return codes
	}
	if code := strings.TrimPrefix(uri, EUThemeBase); code != uri {
		code = strings.ToLower(code)
		if _, ok := t.euCodes[code]; ok {
			return []string{code}
		}
	}
	return nil
}

// EUThemeURI resolves a stored lowercase code back to the EU data-theme
// authority URI.
func (t ThemeTable) EUThemeURI(code string) (string, bool) {
	uri, ok := t.euCodes[strings.ToLower(code)]
	return uri, ok
}
