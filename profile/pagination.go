package profile

import (
	"github.com/knakk/rdf"

	"github.com/opendata-swiss/dcatapchharvest/rdfx"
	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

// Pagination is the paging description of one harvested catalog page.
// Values are kept as strings, matching how the source serializes them.
type Pagination struct {
	Count        string `json:"count"`
	ItemsPerPage string `json:"items_per_page"`
	Next         string `json:"next"`
	Previous     string `json:"previous"`
	First        string `json:"first"`
	Last         string `json:"last"`
}

// HasNext reports whether another page is available.
func (p Pagination) HasNext() bool {
	return p.Next != ""
}

func paginationSubject(g *rdfx.Graph) (rdf.Subject, bool) {
	for _, class := range []rdf.IRI{vocabulary.HydraPagedCollection, vocabulary.HydraPartialCollectionView} {
		if subjects := g.SubjectsOfType(class); len(subjects) > 0 {
			return subjects[0], true
		}
	}
	return nil, false
}

func firstValue(g *rdfx.Graph, s rdf.Subject, preds ...rdf.IRI) string {
	for _, p := range preds {
		if v := g.ObjectValue(s, p); v != "" {
			return v
		}
	}
	return ""
}

// ExtractPagination reads the hydra paging node from a harvested page
// graph. Both the PagedCollection and PartialCollectionView shapes are
// understood, including their respective link-property spellings. A
// graph without a paging node yields the zero Pagination.
func ExtractPagination(g *rdfx.Graph) Pagination {
	s, ok := paginationSubject(g)
	if !ok {
		return Pagination{}
	}
	return Pagination{
		Count:        g.ObjectValue(s, vocabulary.HydraTotalItems),
		ItemsPerPage: g.ObjectValue(s, vocabulary.HydraItemsPerPage),
		Next:         firstValue(g, s, vocabulary.HydraNext, vocabulary.HydraNextPage),
		Previous:     firstValue(g, s, vocabulary.HydraPrevious, vocabulary.HydraPreviousPage),
		First:        firstValue(g, s, vocabulary.HydraFirst, vocabulary.HydraFirstPage),
		Last:         firstValue(g, s, vocabulary.HydraLast, vocabulary.HydraLastPage),
	}
}
