// Package vocabulary provides the controlled-vocabulary tables and RDF
// namespace terms for the DCAT-AP Switzerland profile.
//
// The tables (frequency, license, format, IANA media type, theme and
// language) are built once from bundled reference files and are
// immutable afterwards; mappers receive them as an explicit Bundle
// value instead of reading hidden global caches.
package vocabulary

import (
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
)

// Namespace base IRIs used across the profile.
const (
	DCTBase    = "http://purl.org/dc/terms/"
	DCATBase   = "http://www.w3.org/ns/dcat#"
	VCARDBase  = "http://www.w3.org/2006/vcard/ns#"
	SchemaBase = "http://schema.org/"
	ADMSBase   = "http://www.w3.org/ns/adms#"
	FOAFBase   = "http://xmlns.com/foaf/0.1/"
	RDFSBase   = "http://www.w3.org/2000/01/rdf-schema#"
	SKOSBase   = "http://www.w3.org/2004/02/skos/core#"
	OWLBase    = "http://www.w3.org/2002/07/owl#"
	XSDBase    = "http://www.w3.org/2001/XMLSchema#"
	HydraBase  = "http://www.w3.org/ns/hydra/core#"
)

// EU authority and Swiss vocabulary base IRIs.
const (
	EUFrequencyBase = "http://publications.europa.eu/resource/authority/frequency/"
	EUThemeBase     = "http://publications.europa.eu/resource/authority/data-theme/"
	EUFileTypeBase  = "http://publications.europa.eu/resource/authority/file-type/"
	EULanguageBase  = "http://publications.europa.eu/resource/authority/language/"

	CHThemeBase         = "http://dcat-ap.ch/vocabulary/themes/"
	CHLicenseBase       = "http://dcat-ap.ch/vocabulary/licenses/"
	DeprecatedThemeBase = "http://opendata.swiss/themes/"

	IANAMediaTypeBase = "https://www.iana.org/assignments/media-types/"

	OrganizationBaseURL = "https://opendata.swiss/organization/"
)

// MailtoPrefix is stripped from vcard:hasEmail objects on parse and
// re-added on serialization.
const MailtoPrefix = "mailto:"

// Dublin Core terms.
var (
	DCTIdentifier         = rdfx.MustIRI(DCTBase + "identifier")
	DCTTitle              = rdfx.MustIRI(DCTBase + "title")
	DCTDescription        = rdfx.MustIRI(DCTBase + "description")
	DCTIssued             = rdfx.MustIRI(DCTBase + "issued")
	DCTModified           = rdfx.MustIRI(DCTBase + "modified")
	DCTAccrualPeriodicity = rdfx.MustIRI(DCTBase + "accrualPeriodicity")
	DCTPublisher          = rdfx.MustIRI(DCTBase + "publisher")
	DCTRelation           = rdfx.MustIRI(DCTBase + "relation")
	DCTTemporal           = rdfx.MustIRI(DCTBase + "temporal")
	DCTSpatial            = rdfx.MustIRI(DCTBase + "spatial")
	DCTLanguage           = rdfx.MustIRI(DCTBase + "language")
	DCTConformsTo         = rdfx.MustIRI(DCTBase + "conformsTo")
	DCTRights             = rdfx.MustIRI(DCTBase + "rights")
	DCTLicense            = rdfx.MustIRI(DCTBase + "license")
	DCTFormat             = rdfx.MustIRI(DCTBase + "format")
	DCTCoverage           = rdfx.MustIRI(DCTBase + "coverage")
	DCTPeriodOfTime       = rdfx.MustIRI(DCTBase + "PeriodOfTime")
)

// DCAT terms.
var (
	DCATDataset            = rdfx.MustIRI(DCATBase + "Dataset")
	DCATDistributionClass  = rdfx.MustIRI(DCATBase + "Distribution")
	DCATCatalog            = rdfx.MustIRI(DCATBase + "Catalog")
	DCATDatasetProp        = rdfx.MustIRI(DCATBase + "dataset")
	DCATTheme              = rdfx.MustIRI(DCATBase + "theme")
	DCATKeyword            = rdfx.MustIRI(DCATBase + "keyword")
	DCATContactPoint       = rdfx.MustIRI(DCATBase + "contactPoint")
	DCATDistribution       = rdfx.MustIRI(DCATBase + "distribution")
	DCATLandingPage        = rdfx.MustIRI(DCATBase + "landingPage")
	DCATDownloadURL        = rdfx.MustIRI(DCATBase + "downloadURL")
	DCATAccessURL          = rdfx.MustIRI(DCATBase + "accessURL")
	DCATMediaType          = rdfx.MustIRI(DCATBase + "mediaType")
	DCATByteSize           = rdfx.MustIRI(DCATBase + "byteSize")
	DCATStartDate          = rdfx.MustIRI(DCATBase + "startDate")
	DCATEndDate            = rdfx.MustIRI(DCATBase + "endDate")
	DCATTemporalResolution = rdfx.MustIRI(DCATBase + "temporalResolution")
	DCATAccessService      = rdfx.MustIRI(DCATBase + "accessService")
	DCATQualifiedRelation  = rdfx.MustIRI(DCATBase + "qualifiedRelation")
	DCATRelationship       = rdfx.MustIRI(DCATBase + "Relationship")
	DCATHadRole            = rdfx.MustIRI(DCATBase + "hadRole")
	DCATRelationProp       = rdfx.MustIRI(DCATBase + "relation")
)

// vCard terms.
var (
	VCARDOrganization = rdfx.MustIRI(VCARDBase + "Organization")
	VCARDFn           = rdfx.MustIRI(VCARDBase + "fn")
	VCARDHasEmail     = rdfx.MustIRI(VCARDBase + "hasEmail")
)

// FOAF terms.
var (
	FOAFAgent        = rdfx.MustIRI(FOAFBase + "Agent")
	FOAFOrganization = rdfx.MustIRI(FOAFBase + "Organization")
	FOAFName         = rdfx.MustIRI(FOAFBase + "name")
	FOAFPage         = rdfx.MustIRI(FOAFBase + "page")
	FOAFDocument     = rdfx.MustIRI(FOAFBase + "Document")
	FOAFHomepage     = rdfx.MustIRI(FOAFBase + "homepage")
)

// RDFS terms.
var (
	RDFSLabel   = rdfx.MustIRI(RDFSBase + "label")
	RDFSSeeAlso = rdfx.MustIRI(RDFSBase + "seeAlso")
)

// SKOS terms.
var (
	SKOSConcept    = rdfx.MustIRI(SKOSBase + "Concept")
	SKOSPrefLabel  = rdfx.MustIRI(SKOSBase + "prefLabel")
	SKOSNotation   = rdfx.MustIRI(SKOSBase + "notation")
	SKOSExactMatch = rdfx.MustIRI(SKOSBase + "exactMatch")
)

// schema.org terms used by the legacy temporal format and the
// schema.org output profile.
var (
	SchemaStartDate          = rdfx.MustIRI(SchemaBase + "startDate")
	SchemaEndDate            = rdfx.MustIRI(SchemaBase + "endDate")
	SchemaDate               = rdfx.MustIRI(SchemaBase + "Date")
	SchemaDateTime           = rdfx.MustIRI(SchemaBase + "DateTime")
	SchemaDataset            = rdfx.MustIRI(SchemaBase + "Dataset")
	SchemaDistribution       = rdfx.MustIRI(SchemaBase + "Distribution")
	SchemaDistributionProp   = rdfx.MustIRI(SchemaBase + "distribution")
	SchemaName               = rdfx.MustIRI(SchemaBase + "name")
	SchemaDescription        = rdfx.MustIRI(SchemaBase + "description")
	SchemaIdentifier         = rdfx.MustIRI(SchemaBase + "identifier")
	SchemaDatePublished      = rdfx.MustIRI(SchemaBase + "datePublished")
	SchemaDateModified       = rdfx.MustIRI(SchemaBase + "dateModified")
	SchemaSameAs             = rdfx.MustIRI(SchemaBase + "sameAs")
	SchemaInLanguage         = rdfx.MustIRI(SchemaBase + "inLanguage")
	SchemaPublisher          = rdfx.MustIRI(SchemaBase + "publisher")
	SchemaSourceOrganization = rdfx.MustIRI(SchemaBase + "sourceOrganization")
	SchemaOrganization       = rdfx.MustIRI(SchemaBase + "Organization")
	SchemaContactPoint       = rdfx.MustIRI(SchemaBase + "contactPoint")
	SchemaContactType        = rdfx.MustIRI(SchemaBase + "contactType")
	SchemaURL                = rdfx.MustIRI(SchemaBase + "url")
	SchemaEmail              = rdfx.MustIRI(SchemaBase + "email")
	SchemaKeywords           = rdfx.MustIRI(SchemaBase + "keywords")
	SchemaTemporalCoverage   = rdfx.MustIRI(SchemaBase + "temporalCoverage")
	SchemaMediaType          = rdfx.MustIRI(SchemaBase + "mediaType")
	SchemaByteSize           = rdfx.MustIRI(SchemaBase + "byteSize")
	SchemaDownloadURL        = rdfx.MustIRI(SchemaBase + "downloadURL")
	SchemaAccessURL          = rdfx.MustIRI(SchemaBase + "accessURL")
	SchemaVersion            = rdfx.MustIRI(SchemaBase + "version")
	SchemaAuthor             = rdfx.MustIRI(SchemaBase + "author")
)

// XSD datatypes.
var (
	XSDDate       = rdfx.MustIRI(XSDBase + "date")
	XSDDateTime   = rdfx.MustIRI(XSDBase + "dateTime")
	XSDGYear      = rdfx.MustIRI(XSDBase + "gYear")
	XSDGYearMonth = rdfx.MustIRI(XSDBase + "gYearMonth")
	XSDDuration   = rdfx.MustIRI(XSDBase + "duration")
	XSDDecimal    = rdfx.MustIRI(XSDBase + "decimal")
)

// OWL terms.
var (
	OWLVersionInfo = rdfx.MustIRI(OWLBase + "versionInfo")
)

// Hydra terms for paged collections. Both the current
// PartialCollectionView and the legacy PagedCollection spellings occur
// in harvested catalogs.
var (
	HydraPagedCollection       = rdfx.MustIRI(HydraBase + "PagedCollection")
	HydraPartialCollectionView = rdfx.MustIRI(HydraBase + "PartialCollectionView")
	HydraTotalItems            = rdfx.MustIRI(HydraBase + "totalItems")
	HydraItemsPerPage          = rdfx.MustIRI(HydraBase + "itemsPerPage")
	HydraNext                  = rdfx.MustIRI(HydraBase + "next")
	HydraPrevious              = rdfx.MustIRI(HydraBase + "previous")
	HydraFirst                 = rdfx.MustIRI(HydraBase + "first")
	HydraLast                  = rdfx.MustIRI(HydraBase + "last")
	HydraNextPage              = rdfx.MustIRI(HydraBase + "nextPage")
	HydraPreviousPage          = rdfx.MustIRI(HydraBase + "previousPage")
	HydraFirstPage             = rdfx.MustIRI(HydraBase + "firstPage")
	HydraLastPage              = rdfx.MustIRI(HydraBase + "lastPage")
)

func init() {
	for prefix, base := range PrefixMap() {
		rdfx.RegisterPrefix(prefix, base)
	}
}

// PrefixMap returns the prefix bindings used when serializing graphs.
func PrefixMap() map[string]string {
	return map[string]string{
		"dct":    DCTBase,
		"dcat":   DCATBase,
		"vcard":  VCARDBase,
		"schema": SchemaBase,
		"adms":   ADMSBase,
		"foaf":   FOAFBase,
		"rdfs":   RDFSBase,
		"skos":   SKOSBase,
		"owl":    OWLBase,
		"xsd":    XSDBase,
		"hydra":  HydraBase,
	}
}
