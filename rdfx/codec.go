package rdfx

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/knakk/rdf"
	"github.com/piprate/json-gold/ld"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

// Format identifies an RDF serialization understood by this package.
type Format string

const (
	FormatRDFXML   Format = "rdfxml"
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "ntriples"
	FormatJSONLD   Format = "jsonld"
)

// ParseFormat maps common format names and file extensions to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "rdfxml", "rdf", "xml", "application/rdf+xml":
		return FormatRDFXML, nil
	case "turtle", "ttl", "text/turtle":
		return FormatTurtle, nil
	case "ntriples", "nt", "application/n-triples":
		return FormatNTriples, nil
	case "jsonld", "json-ld", "json", "application/ld+json":
		return FormatJSONLD, nil
	default:
		return "", errors.Errorf("%w: unknown RDF format %q", errors.ErrParsingFailed, name)
	}
}

func (f Format) decoderFormat() (rdf.Format, error) {
	switch f {
	case FormatRDFXML:
		return rdf.RDFXML, nil
	case FormatTurtle:
		return rdf.Turtle, nil
	case FormatNTriples:
		return rdf.NTriples, nil
	default:
		return rdf.NTriples, errors.Errorf("%w: no triple decoder for format %q", errors.ErrParsingFailed, f)
	}
}

// Decode reads an RDF serialization into a new graph. JSON-LD input is
// not supported; harvested catalogs arrive as RDF/XML or Turtle.
func Decode(r io.Reader, format Format) (*Graph, error) {
	df, err := format.decoderFormat()
	if err != nil {
		return nil, err
	}
	triples, err := rdf.NewTripleDecoder(r, df).DecodeAll()
	if err != nil {
		return nil, errors.WrapInvalid(err, "rdfx", "Decode", "decoding triples")
	}
	g := NewGraph()
	g.Insert(triples...)
	return g, nil
}

// DecodeBytes is Decode over a byte slice, rejecting empty content.
func DecodeBytes(content []byte, format Format) (*Graph, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.ErrEmptyPage
	}
	return Decode(bytes.NewReader(content), format)
}

// Encode writes the graph in the requested serialization.
func Encode(w io.Writer, g *Graph, format Format) error {
	switch format {
	case FormatJSONLD:
		return encodeJSONLD(w, g)
	case FormatRDFXML:
		return encodeRDFXML(w, g)
	}
	ef, err := format.decoderFormat()
	if err != nil {
		return err
	}
	enc := rdf.NewTripleEncoder(w, ef)
	if err := enc.EncodeAll(g.Triples()); err != nil {
		return errors.Wrap(err, "rdfx", "Encode", "encoding triples")
	}
	return enc.Close()
}

// encodeJSONLD round-trips the graph through its N-Triples form, which
// json-gold consumes as N-Quads in the default graph.
func encodeJSONLD(w io.Writer, g *Graph) error {
	var nt strings.Builder
	for _, t := range g.Triples() {
		nt.WriteString(t.Serialize(rdf.NTriples))
	}

	proc := ld.NewJsonLdProcessor()
	opts := ld.NewJsonLdOptions("")
	opts.InputFormat = "application/n-quad"

	doc, err := proc.FromRDF(nt.String(), opts)
	if err != nil {
		return errors.Wrap(err, "rdfx", "Encode", "converting to JSON-LD")
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
