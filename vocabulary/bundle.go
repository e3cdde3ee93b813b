package vocabulary

import (
	"bytes"
	"embed"
	"sync"

	"github.com/knakk/rdf"

	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

//go:embed data/frequency.ttl data/licenses.ttl data/themes.ttl data/filetypes.ttl data/media-types.xml data/languages.rdf
var referenceData embed.FS

// Bundle holds every controlled-vocabulary table. A Bundle is built once
// and never mutated; it is safe for concurrent readers.
type Bundle struct {
	Frequencies FrequencyTable
	Licenses    LicenseTable
	Formats     FormatTable
	MediaTypes  MediaTypeTable
	Themes      ThemeTable
	Languages   LanguageTable
}

// Load builds a Bundle from the bundled reference files. Malformed
// reference data is fatal: the mappers cannot run without the tables.
func Load() (*Bundle, error) {
	b := &Bundle{}

	var err error
	if b.Frequencies, err = loadFrequencies(); err != nil {
		return nil, errors.WrapFatal(err, "vocabulary", "Load", "building frequency table")
	}
	if b.Licenses, err = loadLicenses(); err != nil {
		return nil, errors.WrapFatal(err, "vocabulary", "Load", "building license table")
	}
	if b.Formats, err = loadFormats(); err != nil {
		return nil, errors.WrapFatal(err, "vocabulary", "Load", "building format table")
	}
	if b.MediaTypes, err = loadMediaTypes(); err != nil {
		return nil, errors.WrapFatal(err, "vocabulary", "Load", "building media-type table")
	}
	if b.Themes, err = loadThemes(); err != nil {
		return nil, errors.WrapFatal(err, "vocabulary", "Load", "building theme table")
	}
	if b.Languages, err = loadLanguages(); err != nil {
		return nil, errors.WrapFatal(err, "vocabulary", "Load", "building language table")
	}
	return b, nil
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the process-wide Bundle, built on first use.
// Single-flight: the tables are parsed at most once per process.
func Default() (*Bundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = Load()
	})
	return defaultBundle, defaultErr
}

// subjectURI returns the IRI string of a subject, or "" for blank nodes.
func subjectURI(s rdf.Subject) string {
	if iri, ok := s.(rdf.IRI); ok {
		return iri.String()
	}
	return ""
}

// loadReferenceGraph decodes one bundled Turtle or RDF/XML file.
func loadReferenceGraph(name string, format rdfx.Format) (*rdfx.Graph, error) {
	data, err := referenceData.ReadFile("data/" + name)
	if err != nil {
		return nil, errors.Errorf("%w: reading %s: %v", errors.ErrVocabularyData, name, err)
	}
	g, err := rdfx.Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Errorf("%w: parsing %s: %v", errors.ErrVocabularyData, name, err)
	}
	return g, nil
}
