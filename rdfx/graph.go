// Package rdfx provides an in-memory RDF graph over github.com/knakk/rdf
// terms, with the lookups the profile mappers need: objects of a
// subject/predicate pair, subjects by type, and first-value helpers.
package rdfx

import (
	"github.com/knakk/rdf"
)

// RDFType is the rdf:type predicate.
var RDFType = MustIRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type")

// MustIRI returns the IRI for a string known to be valid at compile time.
// It panics on malformed input and is meant for vocabulary constants only.
func MustIRI(iri string) rdf.IRI {
	u, err := rdf.NewIRI(iri)
	if err != nil {
		panic("rdfx: bad IRI constant " + iri + ": " + err.Error())
	}
	return u
}

// TermKey returns a canonical string identity for a term. Two terms are
// the same graph node iff their keys are equal.
func TermKey(t rdf.Term) string {
	if t == nil {
		return ""
	}
	return t.Serialize(rdf.NTriples)
}

// TermsEqual reports whether two terms denote the same node.
func TermsEqual(a, b rdf.Term) bool {
	return TermKey(a) == TermKey(b)
}

// AsSubject converts an object term into a subject term, which is
// possible for IRIs and blank nodes but not literals.
func AsSubject(o rdf.Object) (rdf.Subject, bool) {
	switch t := o.(type) {
	case rdf.IRI:
		return t, true
	case rdf.Blank:
		return t, true
	default:
		return nil, false
	}
}

// Graph is an insert-only in-memory triple store. Insertion order is
// preserved in Triples, and lookups are index-backed.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}
	bySP    map[string][]rdf.Object
	byPO    map[string][]rdf.Subject
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		seen: make(map[string]struct{}),
		bySP: make(map[string][]rdf.Object),
		byPO: make(map[string][]rdf.Subject),
	}
}

func spKey(s rdf.Subject, p rdf.Predicate) string {
	return TermKey(s) + " " + TermKey(p)
}

func poKey(p rdf.Predicate, o rdf.Object) string {
	return TermKey(p) + " " + TermKey(o)
}

// Insert adds triples to the graph, skipping exact duplicates.
func (g *Graph) Insert(triples ...rdf.Triple) {
	for _, t := range triples {
		key := t.Serialize(rdf.NTriples)
		if _, dup := g.seen[key]; dup {
			continue
		}
		g.seen[key] = struct{}{}
		g.triples = append(g.triples, t)
		sp := spKey(t.Subj, t.Pred)
		g.bySP[sp] = append(g.bySP[sp], t.Obj)
		po := poKey(t.Pred, t.Obj)
		g.byPO[po] = append(g.byPO[po], t.Subj)
	}
}

// Triples returns all triples in insertion order. The returned slice is
// shared; callers must not mutate it.
func (g *Graph) Triples() []rdf.Triple {
	return g.triples
}

// Len returns the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Objects returns all objects o such that (s, p, o) is in the graph.
func (g *Graph) Objects(s rdf.Subject, p rdf.Predicate) []rdf.Object {
	return g.bySP[spKey(s, p)]
}

// Subjects returns all subjects s such that (s, p, o) is in the graph.
func (g *Graph) Subjects(p rdf.Predicate, o rdf.Object) []rdf.Subject {
	return g.byPO[poKey(p, o)]
}

// SubjectsOfType returns the subjects declared with rdf:type class, in
// first-seen order without duplicates.
func (g *Graph) SubjectsOfType(class rdf.IRI) []rdf.Subject {
	var out []rdf.Subject
	seen := make(map[string]struct{})
	for _, s := range g.Subjects(RDFType, class) {
		k := TermKey(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

// ObjectValue returns the lexical value of the first object for the
// subject/predicate pair, or "" when the edge is absent. Literals yield
// their value, IRIs their IRI string.
func (g *Graph) ObjectValue(s rdf.Subject, p rdf.Predicate) string {
	for _, o := range g.Objects(s, p) {
		return termValue(o)
	}
	return ""
}

// ObjectValues returns the lexical values of every object for the
// subject/predicate pair, in insertion order.
func (g *Graph) ObjectValues(s rdf.Subject, p rdf.Predicate) []string {
	objs := g.Objects(s, p)
	if len(objs) == 0 {
		return nil
	}
	out := make([]string, 0, len(objs))
	for _, o := range objs {
		out = append(out, termValue(o))
	}
	return out
}

// ObjectLiteral returns the first literal object for the pair along with
// its datatype IRI string, or ok=false when no object exists. A non-literal
// first object yields its IRI string with an empty datatype.
func (g *Graph) ObjectLiteral(s rdf.Subject, p rdf.Predicate) (value, datatype string, ok bool) {
	for _, o := range g.Objects(s, p) {
		if lit, isLit := o.(rdf.Literal); isLit {
			return lit.String(), lit.DataType.String(), true
		}
		return termValue(o), "", true
	}
	return "", "", false
}

func termValue(t rdf.Term) string {
	return t.String()
}
