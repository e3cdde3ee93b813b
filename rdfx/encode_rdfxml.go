package rdfx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

const (
	rdfSyntaxNS  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	xsdStringIRI = "http://www.w3.org/2001/XMLSchema#string"
)

// preferredPrefixes maps namespace bases to the prefix they should be
// written with. Bases without an entry get a generated nsN prefix.
var preferredPrefixes = map[string]string{}

// RegisterPrefix records the prefix to use for a namespace base in
// RDF/XML output. The rdf: prefix is reserved for the syntax namespace.
func RegisterPrefix(prefix, base string) {
	if prefix == "" || base == "" || base == rdfSyntaxNS {
		return
	}
	preferredPrefixes[base] = prefix
}

// encodeRDFXML writes the graph in the flat rdf:Description form. The
// knakk triple encoder covers Turtle and N-Triples only, so RDF/XML
// output is produced here.
func encodeRDFXML(w io.Writer, g *Graph) error {
	triples := g.Triples()

	// Namespace prefixes must be declared on the root element, so the
	// predicate namespaces are collected before anything is written.
	prefixes := map[string]string{rdfSyntaxNS: "rdf"}
	var nsOrder []string
	generated := 0
	for _, t := range triples {
		ns, _, err := splitQName(t.Pred.(rdf.IRI).String())
		if err != nil {
			return err
		}
		if _, ok := prefixes[ns]; !ok {
			if p, known := preferredPrefixes[ns]; known {
				prefixes[ns] = p
			} else {
				generated++
				prefixes[ns] = fmt.Sprintf("ns%d", generated)
			}
			nsOrder = append(nsOrder, ns)
		}
	}

	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<rdf:RDF xmlns:rdf="` + rdfSyntaxNS + `"`)
	for _, ns := range nsOrder {
		b.WriteString("\n    xmlns:" + prefixes[ns] + `="`)
		escapeXML(&b, ns)
		b.WriteString(`"`)
	}
	b.WriteString(">\n")

	bySubject := map[string][]rdf.Triple{}
	var order []rdf.Subject
	for _, t := range triples {
		key := TermKey(t.Subj)
		if _, seen := bySubject[key]; !seen {
			order = append(order, t.Subj)
		}
		bySubject[key] = append(bySubject[key], t)
	}

	for _, subj := range order {
		b.WriteString("  <rdf:Description ")
		switch s := subj.(type) {
		case rdf.IRI:
			b.WriteString(`rdf:about="`)
			escapeXML(&b, s.String())
		default:
			b.WriteString(`rdf:nodeID="`)
			escapeXML(&b, blankID(subj))
		}
		b.WriteString("\">\n")

		for _, t := range bySubject[TermKey(subj)] {
			ns, local, err := splitQName(t.Pred.(rdf.IRI).String())
			if err != nil {
				return err
			}
			qname := prefixes[ns] + ":" + local
			b.WriteString("    <" + qname)
			switch o := t.Obj.(type) {
			case rdf.IRI:
				b.WriteString(` rdf:resource="`)
				escapeXML(&b, o.String())
				b.WriteString("\"/>\n")
			case rdf.Blank:
				b.WriteString(` rdf:nodeID="`)
				escapeXML(&b, blankID(o))
				b.WriteString("\"/>\n")
			case rdf.Literal:
				if lang := o.Lang(); lang != "" {
					b.WriteString(` xml:lang="`)
					escapeXML(&b, lang)
					b.WriteString(`"`)
				} else if dt := o.DataType.String(); dt != "" && dt != xsdStringIRI {
					b.WriteString(` rdf:datatype="`)
					escapeXML(&b, dt)
					b.WriteString(`"`)
				}
				b.WriteString(">")
				escapeXML(&b, o.String())
				b.WriteString("</" + qname + ">\n")
			}
		}
		b.WriteString("  </rdf:Description>\n")
	}
	b.WriteString("</rdf:RDF>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// splitQName splits an IRI at its last # or / so the local part can be
// used as an XML element name.
func splitQName(iri string) (ns, local string, err error) {
	idx := strings.LastIndexAny(iri, "#/")
	if idx < 0 || idx == len(iri)-1 {
		return "", "", errors.Errorf("%w: cannot derive a QName from predicate <%s>", errors.ErrParsingFailed, iri)
	}
	return iri[:idx+1], iri[idx+1:], nil
}

func blankID(term rdf.Term) string {
	return strings.TrimPrefix(term.Serialize(rdf.NTriples), "_:")
}

func escapeXML(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
