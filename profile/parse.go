package profile

import (
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/knakk/rdf"

	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

// Parser projects RDF dataset subgraphs onto flat Dataset records.
type Parser struct {
	vocab    *vocabulary.Bundle
	langs    []string
	fallback string
	log      *slog.Logger
}

// NewParser returns a Parser over the given vocabulary bundle. A nil
// logger disables diagnostics.
func NewParser(vocab *vocabulary.Bundle, log *slog.Logger) *Parser {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		vocab:    vocab,
		langs:    DefaultLanguages,
		fallback: DefaultLanguage,
		log:      log,
	}
}

// ParseDatasets extracts every dcat:Dataset subject from the graph. A
// graph without dataset subjects is an error; a subject that fails to
// parse is logged and skipped so its siblings still come through.
func (p *Parser) ParseDatasets(g *rdfx.Graph) ([]*Dataset, error) {
	subjects := g.SubjectsOfType(vocabulary.DCATDataset)
	if len(subjects) == 0 {
		return nil, errors.ErrNoDatasets
	}

	datasets := make([]*Dataset, 0, len(subjects))
	for _, s := range subjects {
		d, err := p.ParseDataset(g, s)
		if err != nil {
			p.log.Error("skipping dataset subject",
				"subject", rdfx.TermKey(s), "error", err)
			continue
		}
		datasets = append(datasets, d)
	}
	return datasets, nil
}

// ParseDataset projects one dataset subject onto a record. A sparse
// subject still yields a record with defaulted fields; only a missing
// subject reference is an error.
func (p *Parser) ParseDataset(g *rdfx.Graph, s rdf.Subject) (*Dataset, error) {
	if s == nil {
		return nil, errors.ErrInvalidSubject
	}

	d := &Dataset{
		Identifier:  g.ObjectValue(s, vocabulary.DCTIdentifier),
		Title:       p.localizedText(g, s, vocabulary.DCTTitle),
		Description: p.localizedText(g, s, vocabulary.DCTDescription),
		URL:         g.ObjectValue(s, vocabulary.DCATLandingPage),
	}
	if uri := subjectString(s); uri != "" {
		d.URI = uri
	}

	d.Issued = p.cleanDate(g, s, vocabulary.DCTIssued, false)
	d.Modified = p.cleanDate(g, s, vocabulary.DCTModified, false)

	p.parseSpatial(g, s, d)
	p.parseFrequency(g, s, d)
	p.parseKeywords(g, s, d)
	p.parseThemes(g, s, d)

	d.Languages = p.languageCodes(g, s)
	d.Documentation = iriValues(g, s, vocabulary.FOAFPage)
	d.ConformsTo = iriValues(g, s, vocabulary.DCTConformsTo)
	for _, ref := range g.ObjectValues(s, vocabulary.RDFSSeeAlso) {
		if ref != "" {
			d.SeeAlsos = append(d.SeeAlsos, SeeAlso{DatasetIdentifier: ref})
		}
	}

	p.parseContactPoints(g, s, d)
	p.parseTemporals(g, s, d)
	p.parseRelations(g, s, d)
	p.parseQualifiedRelations(g, s, d)
	p.parsePublisher(g, s, d)

	for _, o := range g.Objects(s, vocabulary.DCATDistribution) {
		node, ok := rdfx.AsSubject(o)
		if !ok {
			continue
		}
		d.Resources = append(d.Resources, p.parseResource(g, node))
	}

	return d, nil
}

// localizedText collects one literal per language tag, mapping untagged
// literals to the fallback language. The result always carries every
// supported language.
func (p *Parser) localizedText(g *rdfx.Graph, s rdf.Subject, pred rdf.IRI) LocalizedText {
	lt := NewLocalizedText(p.langs)
	for _, o := range g.Objects(s, pred) {
		lit, ok := o.(rdf.Literal)
		if !ok {
			continue
		}
		lang := lit.Lang()
		if lang == "" {
			lang = p.fallback
		}
		lang = strings.ToLower(lang)
		if i := strings.IndexByte(lang, '-'); i > 0 {
			lang = lang[:i]
		}
		if _, supported := lt[lang]; supported && lt[lang] == "" {
			lt[lang] = lit.String()
		}
	}
	return lt
}

func (p *Parser) cleanDate(g *rdfx.Graph, s rdf.Subject, pred rdf.IRI, end bool) string {
	value, datatype, ok := g.ObjectLiteral(s, pred)
	if !ok || value == "" {
		return ""
	}
	clean := CleanDatetime
	if end {
		clean = CleanEndDatetime
	}
	out, ok := clean(value, datatype)
	if !ok {
		p.log.Debug("dropping unparseable date literal",
			"predicate", pred.String(), "value", value, "datatype", datatype)
	}
	return out
}

func (p *Parser) parseSpatial(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	for _, o := range g.Objects(s, vocabulary.DCTSpatial) {
		switch t := o.(type) {
		case rdf.IRI:
			if d.SpatialURI == "" {
				d.SpatialURI = t.String()
			}
		case rdf.Literal:
			if d.Spatial == "" {
				d.Spatial = t.String()
			}
		}
	}
}

func (p *Parser) parseFrequency(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	raw := g.ObjectValue(s, vocabulary.DCTAccrualPeriodicity)
	if raw == "" {
		return
	}
	d.AccrualPeriodicity = p.vocab.Frequencies.Normalize(raw)
	if d.AccrualPeriodicity == "" {
		p.log.Debug("dropping unknown accrual periodicity", "value", raw)
	}
}

func (p *Parser) parseKeywords(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	d.Keywords = make(map[string][]string, len(p.langs))
	for _, lang := range p.langs {
		d.Keywords[lang] = []string{}
	}

	seen := make(map[string]struct{})
	for _, o := range g.Objects(s, vocabulary.DCATKeyword) {
		lit, ok := o.(rdf.Literal)
		if !ok {
			continue
		}
		tag := MungeTag(lit.String())
		if tag == "" {
			continue
		}
		lang := strings.ToLower(lit.Lang())
		if lang == "" {
			lang = p.fallback
		}
		if _, supported := d.Keywords[lang]; supported {
			d.Keywords[lang] = append(d.Keywords[lang], tag)
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		d.Tags = append(d.Tags, Tag{Name: tag})
	}
}

func (p *Parser) parseThemes(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	seen := make(map[string]struct{})
	for _, o := range g.Objects(s, vocabulary.DCATTheme) {
		iri, ok := o.(rdf.IRI)
		if !ok {
			continue
		}
		codes := p.vocab.Themes.Classify(iri.String())
		if len(codes) == 0 {
			p.log.Debug("dropping unmapped theme", "uri", iri.String())
			continue
		}
		for _, code := range codes {
			if _, dup := seen[code]; dup {
				continue
			}
			seen[code] = struct{}{}
			d.Groups = append(d.Groups, Group{Name: code})
		}
	}
	sort.Slice(d.Groups, func(i, j int) bool { return d.Groups[i].Name < d.Groups[j].Name })
}

func (p *Parser) languageCodes(g *rdfx.Graph, s rdf.Subject) []string {
	var codes []string
	seen := make(map[string]struct{})
	for _, raw := range g.ObjectValues(s, vocabulary.DCTLanguage) {
		code, ok := p.vocab.Languages.Code(raw)
		if !ok {
			// Some sources carry plain ISO codes instead of authority URIs.
			raw = strings.ToLower(strings.TrimSpace(raw))
			if _, known := p.vocab.Languages.URI(raw); !known {
				continue
			}
			code = raw
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func (p *Parser) parseContactPoints(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	for _, o := range g.Objects(s, vocabulary.DCATContactPoint) {
		node, ok := rdfx.AsSubject(o)
		if !ok {
			continue
		}
		cp := ContactPoint{
			Name:  g.ObjectValue(node, vocabulary.VCARDFn),
			Email: normalizeEmail(g.ObjectValue(node, vocabulary.VCARDHasEmail)),
		}
		if cp.Name == "" && cp.Email == "" {
			continue
		}
		d.ContactPoints = append(d.ContactPoints, cp)
	}
}

func (p *Parser) parseTemporals(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	for _, o := range g.Objects(s, vocabulary.DCTTemporal) {
		node, ok := rdfx.AsSubject(o)
		if !ok {
			continue
		}
		start := p.cleanDate(g, node, vocabulary.DCATStartDate, false)
		if start == "" {
			start = p.cleanDate(g, node, vocabulary.SchemaStartDate, false)
		}
		end := p.cleanDate(g, node, vocabulary.DCATEndDate, true)
		if end == "" {
			end = p.cleanDate(g, node, vocabulary.SchemaEndDate, true)
		}
		// An interval needs both ends; half-open ranges are dropped.
		if start == "" || end == "" {
			continue
		}
		d.Temporals = append(d.Temporals, Temporal{StartDate: start, EndDate: end})
	}
}

func (p *Parser) parseRelations(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	for _, o := range g.Objects(s, vocabulary.DCTRelation) {
		node, ok := rdfx.AsSubject(o)
		if !ok {
			continue
		}
		rel := Relation{
			Label: p.localizedText(g, node, vocabulary.RDFSLabel),
			URL:   subjectString(node),
		}
		if rel.Label.Empty() {
			fill := rel.URL
			if fill == "" {
				continue
			}
			for _, lang := range p.langs {
				rel.Label[lang] = fill
			}
		} else if flat := rel.Label.Flatten(); flat != "" {
			// A label in any language backfills the empty ones.
			for _, lang := range p.langs {
				if rel.Label[lang] == "" {
					rel.Label[lang] = flat
				}
			}
		}
		d.Relations = append(d.Relations, rel)
	}
}

func (p *Parser) parseQualifiedRelations(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	for _, o := range g.Objects(s, vocabulary.DCATQualifiedRelation) {
		node, ok := rdfx.AsSubject(o)
		if !ok {
			continue
		}
		qr := QualifiedRelation{
			Relation: g.ObjectValue(node, vocabulary.DCTRelation),
			HadRole:  g.ObjectValue(node, vocabulary.DCATHadRole),
		}
		if qr.Relation == "" {
			continue
		}
		d.QualifiedRelations = append(d.QualifiedRelations, qr)
	}
}

// orgSlugPattern matches the <id>@<org-slug> identifier convention.
var orgSlugPattern = regexp.MustCompile(`^[^@]+@([a-z0-9_-]+)$`)

// OrganizationSlug extracts the owning-organization slug embedded in a
// dataset identifier, or "".
func OrganizationSlug(identifier string) string {
	m := orgSlugPattern.FindStringSubmatch(identifier)
	if m == nil {
		return ""
	}
	return m[1]
}

func (p *Parser) parsePublisher(g *rdfx.Graph, s rdf.Subject, d *Dataset) {
	for _, o := range g.Objects(s, vocabulary.DCTPublisher) {
		node, ok := rdfx.AsSubject(o)
		if !ok {
			continue
		}
		pub := Publisher{URL: subjectString(node)}
		if p.nodeHasType(g, node, vocabulary.FOAFAgent) {
			pub.Name = p.localizedText(g, node, vocabulary.FOAFName).Flatten()
		} else {
			pub.Name = g.ObjectValue(node, vocabulary.FOAFName)
			if pub.Name == "" {
				pub.Name = g.ObjectValue(node, vocabulary.SchemaName)
			}
		}
		if pub.Name == "" {
			// Deprecated publisher shape: the name on rdfs:label.
			pub.Name = g.ObjectValue(node, vocabulary.RDFSLabel)
		}
		if pub.Empty() {
			continue
		}
		d.Publisher = pub
		break
	}
	if d.Publisher.URL == "" {
		if slug := OrganizationSlug(d.Identifier); slug != "" {
			d.Publisher.URL = vocabulary.OrganizationBaseURL + slug
		}
	}
}

func (p *Parser) nodeHasType(g *rdfx.Graph, node rdf.Subject, class rdf.IRI) bool {
	for _, o := range g.Objects(node, rdfx.RDFType) {
		if rdfx.TermsEqual(o, class) {
			return true
		}
	}
	return false
}

func (p *Parser) parseResource(g *rdfx.Graph, node rdf.Subject) *Resource {
	r := &Resource{
		Identifier:  g.ObjectValue(node, vocabulary.DCTIdentifier),
		Title:       p.localizedText(g, node, vocabulary.DCTTitle),
		Description: p.localizedText(g, node, vocabulary.DCTDescription),
		URL:         g.ObjectValue(node, vocabulary.DCATAccessURL),
		DownloadURL: g.ObjectValue(node, vocabulary.DCATDownloadURL),
		Coverage:    g.ObjectValue(node, vocabulary.DCTCoverage),
	}
	if r.URL == "" {
		// Download-only distributions are still reachable via their
		// download URL, which doubles as the resource identity.
		r.URL = r.DownloadURL
	}
	if uri := subjectString(node); uri != "" {
		r.URI = uri
	}

	r.Issued = p.cleanDate(g, node, vocabulary.DCTIssued, false)
	r.Modified = p.cleanDate(g, node, vocabulary.DCTModified, false)

	r.Languages = p.languageCodes(g, node)
	r.Documentation = iriValues(g, node, vocabulary.FOAFPage)
	r.AccessServices = iriValues(g, node, vocabulary.DCATAccessService)

	if raw := g.ObjectValue(node, vocabulary.DCATByteSize); raw != "" {
		if size, err := strconv.ParseInt(raw, 10, 64); err == nil {
			r.ByteSize = size
		}
	}
	if raw := g.ObjectValue(node, vocabulary.DCATTemporalResolution); raw != "" {
		r.TemporalResolution = raw
	}

	p.resolveFormats(g, node, r)
	p.resolveLicensing(g, node, r)
	return r
}

// resolveFormats normalizes format and media type against the file-type
// and IANA vocabularies, backfilling one from the other when only one
// side is present. Values outside both vocabularies are dropped.
func (p *Parser) resolveFormats(g *rdfx.Graph, node rdf.Subject, r *Resource) {
	rawFormat := g.ObjectValue(node, vocabulary.DCTFormat)
	rawMedia := g.ObjectValue(node, vocabulary.DCATMediaType)

	format := normalizeFormatKey(rawFormat)
	if _, ok := p.vocab.Formats.URIFor(format); !ok {
		format = ""
	}

	media := normalizeMediaTypeKey(rawMedia)
	if _, ok := p.vocab.MediaTypes.URIFor(media); !ok {
		media = ""
	}

	if media == "" && strings.Contains(rawFormat, "/") {
		candidate := normalizeMediaTypeKey(rawFormat)
		if _, ok := p.vocab.MediaTypes.URIFor(candidate); ok {
			media = candidate
		}
	}
	if format == "" && media != "" {
		candidate := media[strings.LastIndexByte(media, '/')+1:]
		if _, ok := p.vocab.Formats.URIFor(candidate); ok {
			format = candidate
		}
	}

	if format == "" && rawFormat != "" {
		p.log.Debug("dropping unrecognized format", "value", rawFormat)
	}
	if media == "" && rawMedia != "" {
		p.log.Debug("dropping unrecognized media type", "value", rawMedia)
	}
	r.Format = format
	r.MediaType = media
}

// normalizeFormatKey reduces a format literal or EU file-type URI to the
// lowercase authority code.
func normalizeFormatKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if rest := strings.TrimPrefix(raw, vocabulary.EUFileTypeBase); rest != raw {
		raw = rest
	}
	return strings.ToLower(raw)
}

// normalizeMediaTypeKey reduces a media-type literal or IANA registry
// URI to the lowercase registry/name key.
func normalizeMediaTypeKey(raw string) string {
	raw = strings.TrimSpace(raw)
	if rest := strings.TrimPrefix(raw, vocabulary.IANAMediaTypeBase); rest != raw {
		raw = rest
	}
	return strings.ToLower(raw)
}

// resolveLicensing normalizes rights and license to canonical vocabulary
// names and applies the cross-backfill rules: Creative Commons values
// belong on license, and a lone non-CC value fills the missing side.
func (p *Parser) resolveLicensing(g *rdfx.Graph, node rdf.Subject, r *Resource) {
	rights := p.canonicalLicense(g.ObjectValue(node, vocabulary.DCTRights))
	license := p.canonicalLicense(g.ObjectValue(node, vocabulary.DCTLicense))

	if rights != "" && p.vocab.Licenses.IsCreativeCommons(rights) {
		if license == "" {
			license = rights
		}
		rights = ""
	}
	if rights == "" && license != "" && !p.vocab.Licenses.IsCreativeCommons(license) {
		rights = license
	}
	if license == "" && rights != "" {
		license = rights
	}

	r.Rights = rights
	r.License = license
}

func (p *Parser) canonicalLicense(raw string) string {
	if raw == "" {
		return ""
	}
	l, ok := p.vocab.Licenses.Lookup(raw)
	if !ok {
		p.log.Debug("dropping unrecognized license value", "value", raw)
		return ""
	}
	return l.Name
}

func subjectString(s rdf.Subject) string {
	if iri, ok := s.(rdf.IRI); ok {
		return iri.String()
	}
	return ""
}

func iriValues(g *rdfx.Graph, s rdf.Subject, pred rdf.IRI) []string {
	var out []string
	for _, o := range g.Objects(s, pred) {
		if iri, ok := o.(rdf.IRI); ok {
			out = append(out, iri.String())
		}
	}
	return out
}
