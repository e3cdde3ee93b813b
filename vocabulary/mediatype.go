package vocabulary

import (
	"encoding/xml"
	"strings"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

// ianaRegistry mirrors the IANA media-types assignment file: a top-level
// registry holding one sub-registry per top-level type.
type ianaRegistry struct {
	XMLName    xml.Name          `xml:"registry"`
	ID         string            `xml:"id,attr"`
	Registries []ianaSubRegistry `xml:"registry"`
}

type ianaSubRegistry struct {
	ID      string       `xml:"id,attr"`
	Records []ianaRecord `xml:"record"`
}

type ianaRecord struct {
	Name string `xml:"name"`
	File string `xml:"file"`
}

// MediaTypeTable resolves media-type strings to IANA registry URIs.
type MediaTypeTable struct {
	byType map[string]string
}

func loadMediaTypes() (MediaTypeTable, error) {
	data, err := referenceData.ReadFile("data/media-types.xml")
	if err != nil {
		return MediaTypeTable{}, errors.Errorf("%w: reading media-types.xml: %v",
			errors.ErrVocabularyData, err)
	}

	var reg ianaRegistry
	if err := xml.Unmarshal(data, &reg); err != nil {
		return MediaTypeTable{}, errors.Errorf("%w: parsing media-types.xml: %v",
			errors.ErrVocabularyData, err)
	}

	t := MediaTypeTable{byType: make(map[string]string)}
	for _, sub := range reg.Registries {
		for _, rec := range sub.Records {
			if rec.Name == "" {
				continue
			}
			// Records without a file template still identify a type;
			// the path is constructed from registry id and name.
			path := rec.File
			if path == "" {
				path = sub.ID + "/" + rec.Name
			}
			mediaType := sub.ID + "/" + rec.Name
			t.byType[strings.ToLower(mediaType)] = IANAMediaTypeBase + path
		}
	}
	return t, nil
}

// URIFor resolves a media type such as "text/csv" to its IANA registry
// URI. Matching is case-insensitive and ignores parameters.
func (t MediaTypeTable) URIFor(mediaType string) (string, bool) {
	mediaType = strings.TrimSpace(mediaType)
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	uri, ok := t.byType[strings.ToLower(mediaType)]
	return uri, ok
}
