package profile

import (
	"github.com/knakk/rdf"

	"github.com/opendata-swiss/dcatapchharvest/rdfx"
	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

// SchemaOrgGraph emits the schema.org variant of the given records, for
// consumers that index schema:Dataset rather than DCAT.
func (s *Serializer) SchemaOrgGraph(datasets ...*Dataset) *rdfx.Graph {
	g := rdfx.NewGraph()
	for _, d := range datasets {
		if err := s.serializeSchemaOrgDataset(g, d); err != nil {
			s.log.Error("skipping dataset", "identifier", d.Identifier, "error", err)
		}
	}
	return g
}

func (s *Serializer) serializeSchemaOrgDataset(g *rdfx.Graph, d *Dataset) error {
	subject, err := s.datasetSubject(d)
	if err != nil {
		return err
	}

	add := func(pred rdf.IRI, obj rdf.Object) {
		g.Insert(rdf.Triple{Subj: subject, Pred: pred, Obj: obj})
	}

	add(rdfx.RDFType, vocabulary.SchemaDataset)
	s.emitLiteral(add, vocabulary.SchemaIdentifier, d.Identifier)
	s.emitLocalized(add, vocabulary.SchemaName, d.Title)
	s.emitLocalized(add, vocabulary.SchemaDescription, d.Description)
	s.emitLiteral(add, vocabulary.SchemaDatePublished, d.Issued)
	s.emitLiteral(add, vocabulary.SchemaDateModified, d.Modified)
	s.emitIRI(add, vocabulary.SchemaSameAs, d.URL)

	for _, code := range d.Languages {
		s.emitLiteral(add, vocabulary.SchemaInLanguage, code)
	}
	s.emitSchemaKeywords(add, d)
	s.emitSchemaPublisher(g, add, d)
	s.emitSchemaContactPoints(g, add, d)
	for _, t := range d.Temporals {
		s.emitSchemaTemporal(add, t)
	}

	for _, r := range d.Resources {
		s.serializeSchemaOrgResource(g, add, r)
	}
	return nil
}

func (s *Serializer) emitSchemaKeywords(add func(rdf.IRI, rdf.Object), d *Dataset) {
	for _, lang := range s.langs {
		for _, kw := range d.Keywords[lang] {
			if kw == "" {
				continue
			}
			if lit, err := rdf.NewLangLiteral(kw, lang); err == nil {
				add(vocabulary.SchemaKeywords, lit)
			}
		}
	}
}

func (s *Serializer) emitSchemaPublisher(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	if d.Publisher.Empty() {
		return
	}
	node := s.newBlank()
	add(vocabulary.SchemaPublisher, node)
	g.Insert(rdf.Triple{Subj: node, Pred: rdfx.RDFType, Obj: vocabulary.SchemaOrganization})
	if d.Publisher.Name != "" {
		if lit, err := rdf.NewLiteral(d.Publisher.Name); err == nil {
			g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.SchemaName, Obj: lit})
		}
	}
	if d.Publisher.URL != "" {
		if iri, err := URIToIRI(d.Publisher.URL); err == nil {
			if term, err := rdf.NewIRI(iri); err == nil {
				g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.SchemaURL, Obj: term})
			}
		}
	}
}

func (s *Serializer) emitSchemaContactPoints(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	for _, cp := range d.ContactPoints {
		if cp.Name == "" && cp.Email == "" {
			continue
		}
		node := s.newBlank()
		add(vocabulary.SchemaContactPoint, node)
		if cp.Name != "" {
			if lit, err := rdf.NewLiteral(cp.Name); err == nil {
				g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.SchemaName, Obj: lit})
			}
		}
		if cp.Email != "" {
			if lit, err := rdf.NewLiteral(cp.Email); err == nil {
				g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.SchemaEmail, Obj: lit})
			}
		}
	}
}

// emitSchemaTemporal renders a coverage interval in the slash-separated
// form schema.org consumers expect.
func (s *Serializer) emitSchemaTemporal(add func(rdf.IRI, rdf.Object), t Temporal) {
	if t.StartDate == "" && t.EndDate == "" {
		return
	}
	coverage := t.StartDate + "/" + t.EndDate
	if lit, err := rdf.NewLiteral(coverage); err == nil {
		add(vocabulary.SchemaTemporalCoverage, lit)
	}
}

func (s *Serializer) serializeSchemaOrgResource(g *rdfx.Graph, addDataset func(rdf.IRI, rdf.Object), r *Resource) {
	var subject rdf.Subject
	if uri := s.resolver.ResourceURI(r, ""); uri != "" {
		if iri, err := URIToIRI(uri); err == nil {
			if term, err := rdf.NewIRI(iri); err == nil {
				subject = term
			}
		}
	}
	if subject == nil {
		subject = s.newBlank()
	}
	addDataset(vocabulary.SchemaDistributionProp, subject.(rdf.Object))

	add := func(pred rdf.IRI, obj rdf.Object) {
		g.Insert(rdf.Triple{Subj: subject, Pred: pred, Obj: obj})
	}

	add(rdfx.RDFType, vocabulary.SchemaDistribution)
	s.emitLiteral(add, vocabulary.SchemaIdentifier, r.Identifier)
	s.emitLocalized(add, vocabulary.SchemaName, r.Title)
	s.emitLocalized(add, vocabulary.SchemaDescription, r.Description)
	s.emitIRI(add, vocabulary.SchemaAccessURL, r.URL)
	s.emitIRI(add, vocabulary.SchemaDownloadURL, r.DownloadURL)
	s.emitLiteral(add, vocabulary.SchemaMediaType, r.MediaType)
	if r.ByteSize > 0 {
		if lit, err := rdf.NewLiteral(r.ByteSize); err == nil {
			add(vocabulary.SchemaByteSize, lit)
		}
	}
	s.emitLiteral(add, vocabulary.SchemaDatePublished, r.Issued)
	s.emitLiteral(add, vocabulary.SchemaDateModified, r.Modified)
}
