package rdfx

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tr(t *testing.T, s, p, o string) rdf.Triple {
	t.Helper()
	subj, err := rdf.NewIRI(s)
	require.NoError(t, err)
	pred, err := rdf.NewIRI(p)
	require.NoError(t, err)
	obj, err := rdf.NewIRI(o)
	require.NoError(t, err)
	return rdf.Triple{Subj: subj, Pred: pred, Obj: obj}
}

func TestGraphInsertDeduplicates(t *testing.T) {
	g := NewGraph()
	triple := tr(t, "http://a", "http://p", "http://b")
	g.Insert(triple, triple)
	assert.Equal(t, 1, g.Len())
}

func TestGraphLookups(t *testing.T) {
	g := NewGraph()
	g.Insert(
		tr(t, "http://a", "http://p", "http://b"),
		tr(t, "http://a", "http://p", "http://c"),
		tr(t, "http://x", "http://p", "http://b"),
	)

	subj := MustIRI("http://a")
	pred := MustIRI("http://p")

	objs := g.Objects(subj, pred)
	require.Len(t, objs, 2)
	assert.Equal(t, "http://b", objs[0].String())

	subjects := g.Subjects(pred, MustIRI("http://b"))
	assert.Len(t, subjects, 2)

	assert.Equal(t, "http://b", g.ObjectValue(subj, pred))
	assert.Equal(t, []string{"http://b", "http://c"}, g.ObjectValues(subj, pred))
}

func TestSubjectsOfType(t *testing.T) {
	g := NewGraph()
	class := MustIRI("http://example.com/Thing")
	g.Insert(
		rdf.Triple{Subj: MustIRI("http://a"), Pred: RDFType, Obj: class},
		rdf.Triple{Subj: MustIRI("http://a"), Pred: RDFType, Obj: class},
		rdf.Triple{Subj: MustIRI("http://b"), Pred: RDFType, Obj: class},
	)

	subjects := g.SubjectsOfType(class)
	require.Len(t, subjects, 2)
	assert.Equal(t, "http://a", subjects[0].String())
	assert.Equal(t, "http://b", subjects[1].String())
}

func TestObjectLiteral(t *testing.T) {
	g := NewGraph()
	subj := MustIRI("http://a")
	pred := MustIRI("http://p")
	lit := rdf.NewTypedLiteral("2020", MustIRI("http://www.w3.org/2001/XMLSchema#gYear"))
	g.Insert(rdf.Triple{Subj: subj, Pred: pred, Obj: lit})

	value, datatype, ok := g.ObjectLiteral(subj, pred)
	require.True(t, ok)
	assert.Equal(t, "2020", value)
	assert.Equal(t, "http://www.w3.org/2001/XMLSchema#gYear", datatype)

	_, _, ok = g.ObjectLiteral(subj, MustIRI("http://other"))
	assert.False(t, ok)
}

func TestAsSubject(t *testing.T) {
	iri := MustIRI("http://a")
	s, ok := AsSubject(iri)
	require.True(t, ok)
	assert.True(t, TermsEqual(iri, s))

	blank, err := rdf.NewBlank("b1")
	require.NoError(t, err)
	_, ok = AsSubject(blank)
	assert.True(t, ok)

	lit, err := rdf.NewLiteral("text")
	require.NoError(t, err)
	_, ok = AsSubject(lit)
	assert.False(t, ok)
}
