package profile

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/knakk/rdf"

	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

// Serializer emits RDF subgraphs for stored Dataset records, in the
// DCAT-AP CH profile or its schema.org variant.
type Serializer struct {
	vocab    *vocabulary.Bundle
	resolver *Resolver
	langs    []string
	log      *slog.Logger
}

// NewSerializer returns a Serializer using the given resolver for
// subject URIs. A nil logger disables diagnostics.
func NewSerializer(vocab *vocabulary.Bundle, resolver *Resolver, log *slog.Logger) *Serializer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Serializer{
		vocab:    vocab,
		resolver: resolver,
		langs:    DefaultLanguages,
		log:      log,
	}
}

// Graph emits the DCAT-AP CH subgraphs for the given records. A record
// whose own URI cannot be turned into a legal IRI is skipped with an
// error log; sibling records are still emitted.
func (s *Serializer) Graph(datasets ...*Dataset) *rdfx.Graph {
	g := rdfx.NewGraph()
	for _, d := range datasets {
		if err := s.SerializeDataset(g, d); err != nil {
			s.log.Error("skipping dataset", "identifier", d.Identifier, "error", err)
		}
	}
	return g
}

// CatalogGraph emits a dcat:Catalog node for the configured site linking
// every record, followed by the records themselves.
func (s *Serializer) CatalogGraph(datasets ...*Dataset) *rdfx.Graph {
	g := rdfx.NewGraph()
	catalogIRI, err := URIToIRI(s.resolver.SiteURL)
	if err != nil {
		s.log.Error("catalog node skipped", "error", err)
		return s.Graph(datasets...)
	}
	catalog := rdfx.MustIRI(catalogIRI)
	g.Insert(rdf.Triple{Subj: catalog, Pred: rdfx.RDFType, Obj: vocabulary.DCATCatalog})
	for _, d := range datasets {
		if err := s.SerializeDataset(g, d); err != nil {
			s.log.Error("skipping dataset", "identifier", d.Identifier, "error", err)
			continue
		}
		subject, _ := s.datasetSubject(d)
		g.Insert(rdf.Triple{Subj: catalog, Pred: vocabulary.DCATDatasetProp, Obj: subject})
	}
	return g
}

func (s *Serializer) datasetSubject(d *Dataset) (rdf.IRI, error) {
	iri, err := URIToIRI(s.resolver.DatasetURI(d, ""))
	if err != nil {
		return rdf.IRI{}, errors.Wrap(err, "profile", "SerializeDataset", "resolving subject URI")
	}
	subject, err := rdf.NewIRI(iri)
	if err != nil {
		return rdf.IRI{}, errors.Wrap(err, "profile", "SerializeDataset", "building subject IRI")
	}
	return subject, nil
}

// SerializeDataset emits one record's subgraph into g. All triples hang
// off the resolved canonical URI, never the record's raw stored value.
func (s *Serializer) SerializeDataset(g *rdfx.Graph, d *Dataset) error {
	subject, err := s.datasetSubject(d)
	if err != nil {
		return err
	}

	add := func(pred rdf.IRI, obj rdf.Object) {
		g.Insert(rdf.Triple{Subj: subject, Pred: pred, Obj: obj})
	}

	add(rdfx.RDFType, vocabulary.DCATDataset)
	s.emitLiteral(add, vocabulary.DCTIdentifier, d.Identifier)
	s.emitLocalized(add, vocabulary.DCTTitle, d.Title)
	s.emitLocalized(add, vocabulary.DCTDescription, d.Description)
	s.emitDate(add, vocabulary.DCTIssued, d.Issued)
	s.emitDate(add, vocabulary.DCTModified, d.Modified)
	s.emitIRI(add, vocabulary.DCATLandingPage, d.URL)
	s.emitLiteral(add, vocabulary.DCTSpatial, d.Spatial)
	s.emitIRI(add, vocabulary.DCTSpatial, d.SpatialURI)

	if uri := s.vocab.Frequencies.Normalize(d.AccrualPeriodicity); uri != "" {
		s.emitIRI(add, vocabulary.DCTAccrualPeriodicity, uri)
	}
	for _, group := range d.Groups {
		if uri, ok := s.vocab.Themes.EUThemeURI(group.Name); ok {
			s.emitIRI(add, vocabulary.DCATTheme, uri)
		}
	}
	for _, code := range d.Languages {
		if uri, ok := s.vocab.Languages.URI(code); ok {
			s.emitIRI(add, vocabulary.DCTLanguage, uri)
		}
	}
	s.emitKeywords(add, d)
	for _, doc := range d.Documentation {
		s.emitPage(g, add, doc)
	}
	for _, uri := range d.ConformsTo {
		s.emitIRI(add, vocabulary.DCTConformsTo, uri)
	}
	for _, sa := range d.SeeAlsos {
		s.emitLiteral(add, vocabulary.RDFSSeeAlso, sa.DatasetIdentifier)
	}

	s.emitContactPoints(g, add, d)
	s.emitTemporals(g, add, d)
	s.emitRelations(g, add, d)
	s.emitQualifiedRelations(g, add, d)
	s.emitPublisher(g, add, d)

	for _, r := range d.Resources {
		s.serializeResource(g, add, r)
	}
	return nil
}

func (s *Serializer) emitLiteral(add func(rdf.IRI, rdf.Object), pred rdf.IRI, value string) {
	if value == "" {
		return
	}
	lit, err := rdf.NewLiteral(value)
	if err != nil {
		return
	}
	add(pred, lit)
}

// emitLocalized emits one language-tagged literal per non-empty entry.
// Empty-string entries are never emitted.
func (s *Serializer) emitLocalized(add func(rdf.IRI, rdf.Object), pred rdf.IRI, lt LocalizedText) {
	for _, lang := range s.langs {
		value := lt[lang]
		if value == "" {
			continue
		}
		lit, err := rdf.NewLangLiteral(value, lang)
		if err != nil {
			continue
		}
		add(pred, lit)
	}
}

func (s *Serializer) emitDate(add func(rdf.IRI, rdf.Object), pred rdf.IRI, value string) {
	if value == "" {
		return
	}
	add(pred, rdf.NewTypedLiteral(value, vocabulary.XSDDateTime))
}

// emitIRI validates the URI and skips the triple when it is not a legal
// IRI. Invalid URIs never abort the record.
func (s *Serializer) emitIRI(add func(rdf.IRI, rdf.Object), pred rdf.IRI, uri string) {
	if uri == "" {
		return
	}
	iri, err := URIToIRI(uri)
	if err != nil {
		s.log.Debug("skipping triple with invalid URI", "predicate", pred.String(), "uri", uri)
		return
	}
	term, err := rdf.NewIRI(iri)
	if err != nil {
		return
	}
	add(pred, term)
}

func (s *Serializer) emitPage(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), uri string) {
	iri, err := URIToIRI(uri)
	if err != nil {
		return
	}
	term, err := rdf.NewIRI(iri)
	if err != nil {
		return
	}
	add(vocabulary.FOAFPage, term)
	g.Insert(rdf.Triple{Subj: term, Pred: rdfx.RDFType, Obj: vocabulary.FOAFDocument})
}

func (s *Serializer) emitKeywords(add func(rdf.IRI, rdf.Object), d *Dataset) {
	emitted := false
	for _, lang := range s.langs {
		for _, kw := range d.Keywords[lang] {
			if kw == "" {
				continue
			}
			lit, err := rdf.NewLangLiteral(kw, lang)
			if err != nil {
				continue
			}
			add(vocabulary.DCATKeyword, lit)
			emitted = true
		}
	}
	if emitted {
		return
	}
	// Records predating per-language keywords only carry flat tags.
	for _, tag := range d.Tags {
		lit, err := rdf.NewLangLiteral(tag.Name, s.fallbackLang())
		if err != nil {
			continue
		}
		add(vocabulary.DCATKeyword, lit)
	}
}

func (s *Serializer) fallbackLang() string {
	return DefaultLanguage
}

func (s *Serializer) newBlank() rdf.Blank {
	b, err := rdf.NewBlank("b" + strings.ReplaceAll(uuid.NewString(), "-", ""))
	if err != nil {
		// The generated id is always legal; this cannot happen.
		panic(err)
	}
	return b
}

func (s *Serializer) emitContactPoints(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	for _, cp := range d.ContactPoints {
		if cp.Name == "" && cp.Email == "" {
			continue
		}
		node := s.newBlank()
		add(vocabulary.DCATContactPoint, node)
		g.Insert(rdf.Triple{Subj: node, Pred: rdfx.RDFType, Obj: vocabulary.VCARDOrganization})
		if cp.Name != "" {
			if lit, err := rdf.NewLiteral(cp.Name); err == nil {
				g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.VCARDFn, Obj: lit})
			}
		}
		if cp.Email != "" {
			if mail, err := rdf.NewIRI(vocabulary.MailtoPrefix + cp.Email); err == nil {
				g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.VCARDHasEmail, Obj: mail})
			}
		}
	}
}

func (s *Serializer) emitTemporals(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	for _, t := range d.Temporals {
		if t.StartDate == "" && t.EndDate == "" {
			continue
		}
		node := s.newBlank()
		add(vocabulary.DCTTemporal, node)
		g.Insert(rdf.Triple{Subj: node, Pred: rdfx.RDFType, Obj: vocabulary.DCTPeriodOfTime})
		if t.StartDate != "" {
			g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.DCATStartDate,
				Obj: rdf.NewTypedLiteral(t.StartDate, vocabulary.XSDDateTime)})
		}
		if t.EndDate != "" {
			g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.DCATEndDate,
				Obj: rdf.NewTypedLiteral(t.EndDate, vocabulary.XSDDateTime)})
		}
	}
}

func (s *Serializer) emitRelations(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	for _, rel := range d.Relations {
		iri, err := URIToIRI(rel.URL)
		if err != nil {
			s.log.Debug("skipping relation with invalid URL", "url", rel.URL)
			continue
		}
		term, err := rdf.NewIRI(iri)
		if err != nil {
			continue
		}
		add(vocabulary.DCTRelation, term)
		for _, lang := range s.langs {
			if rel.Label[lang] == "" {
				continue
			}
			if lit, err := rdf.NewLangLiteral(rel.Label[lang], lang); err == nil {
				g.Insert(rdf.Triple{Subj: term, Pred: vocabulary.RDFSLabel, Obj: lit})
			}
		}
	}
}

func (s *Serializer) emitQualifiedRelations(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	for _, qr := range d.QualifiedRelations {
		relIRI, err := URIToIRI(qr.Relation)
		if err != nil {
			continue
		}
		relTerm, err := rdf.NewIRI(relIRI)
		if err != nil {
			continue
		}
		node := s.newBlank()
		add(vocabulary.DCATQualifiedRelation, node)
		g.Insert(rdf.Triple{Subj: node, Pred: rdfx.RDFType, Obj: vocabulary.DCATRelationship})
		g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.DCTRelation, Obj: relTerm})
		if qr.HadRole != "" {
			if roleIRI, err := URIToIRI(qr.HadRole); err == nil {
				if roleTerm, err := rdf.NewIRI(roleIRI); err == nil {
					g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.DCATHadRole, Obj: roleTerm})
				}
			}
		}
	}
}

func (s *Serializer) emitPublisher(g *rdfx.Graph, add func(rdf.IRI, rdf.Object), d *Dataset) {
	if d.Publisher.Empty() {
		return
	}
	var node rdf.Subject
	if d.Publisher.URL != "" {
		if iri, err := URIToIRI(d.Publisher.URL); err == nil {
			if term, err := rdf.NewIRI(iri); err == nil {
				node = term
			}
		}
	}
	if node == nil {
		node = s.newBlank()
	}
	add(vocabulary.DCTPublisher, node.(rdf.Object))
	g.Insert(rdf.Triple{Subj: node, Pred: rdfx.RDFType, Obj: vocabulary.FOAFOrganization})
	if d.Publisher.Name != "" {
		if lit, err := rdf.NewLiteral(d.Publisher.Name); err == nil {
			g.Insert(rdf.Triple{Subj: node, Pred: vocabulary.FOAFName, Obj: lit})
		}
	}
}

func (s *Serializer) serializeResource(g *rdfx.Graph, addDataset func(rdf.IRI, rdf.Object), r *Resource) {
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
	addDataset(vocabulary.DCATDistribution, subject.(rdf.Object))

	add := func(pred rdf.IRI, obj rdf.Object) {
		g.Insert(rdf.Triple{Subj: subject, Pred: pred, Obj: obj})
	}

	add(rdfx.RDFType, vocabulary.DCATDistributionClass)
	s.emitLiteral(add, vocabulary.DCTIdentifier, r.Identifier)
	s.emitLocalized(add, vocabulary.DCTTitle, r.Title)
	s.emitLocalized(add, vocabulary.DCTDescription, r.Description)
	s.emitDate(add, vocabulary.DCTIssued, r.Issued)
	s.emitDate(add, vocabulary.DCTModified, r.Modified)

	accessURL := r.URL
	if accessURL == "" {
		accessURL = r.DownloadURL
	}
	s.emitIRI(add, vocabulary.DCATAccessURL, accessURL)
	s.emitIRI(add, vocabulary.DCATDownloadURL, r.DownloadURL)

	s.emitLicenseValue(add, vocabulary.DCTLicense, r.License)
	s.emitLicenseValue(add, vocabulary.DCTRights, r.Rights)
	s.emitFormat(add, r)

	s.emitLiteral(add, vocabulary.DCTCoverage, r.Coverage)
	if r.ByteSize > 0 {
		add(vocabulary.DCATByteSize,
			rdf.NewTypedLiteral(strconv.FormatInt(r.ByteSize, 10), vocabulary.XSDDecimal))
	}
	if r.TemporalResolution != "" {
		add(vocabulary.DCATTemporalResolution,
			rdf.NewTypedLiteral(r.TemporalResolution, vocabulary.XSDDuration))
	}
	for _, code := range r.Languages {
		if uri, ok := s.vocab.Languages.URI(code); ok {
			s.emitIRI(add, vocabulary.DCTLanguage, uri)
		}
	}
	for _, doc := range r.Documentation {
		s.emitPage(g, add, doc)
	}
	for _, svc := range r.AccessServices {
		s.emitIRI(add, vocabulary.DCATAccessService, svc)
	}
}

// emitLicenseValue resolves the stored value to its vocabulary concept
// URI and emits it; unresolvable values are omitted since free-text
// license strings cannot round-trip to a concept.
func (s *Serializer) emitLicenseValue(add func(rdf.IRI, rdf.Object), pred rdf.IRI, value string) {
	if value == "" {
		return
	}
	l, ok := s.vocab.Licenses.Lookup(value)
	if !ok {
		s.log.Debug("license value has no vocabulary concept", "value", value)
		return
	}
	s.emitIRI(add, pred, l.Concept)
}

// emitFormat prefers the EU file-type vocabulary for dct:format, falling
// back to the IANA registry when the format key is only known there, and
// emits dcat:mediaType from the IANA registry.
func (s *Serializer) emitFormat(add func(rdf.IRI, rdf.Object), r *Resource) {
	if r.Format != "" {
		if uri, ok := s.vocab.Formats.URIFor(r.Format); ok {
			s.emitIRI(add, vocabulary.DCTFormat, uri)
		} else if uri, ok := s.vocab.MediaTypes.URIFor(r.Format); ok {
			s.emitIRI(add, vocabulary.DCTFormat, uri)
		}
	}
	if r.MediaType != "" {
		if uri, ok := s.vocab.MediaTypes.URIFor(r.MediaType); ok {
			s.emitIRI(add, vocabulary.DCATMediaType, uri)
		}
	}
}
