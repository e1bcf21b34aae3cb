package index

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

var searchableFields = []string{"FullName", "Nickname", "Plot", "Dates"}

// Hit is a matching record, identified by its uuid
type Hit struct {
	Uuid  string
	Score float64
}

// Search looks for public records matching every keyword in any of their name,
// nickname, plot identifier or dates. Hits are ordered by relevance first and
// by death date, most recent first, on ties.
func (b *BleveIndexer) Search(keywords string, limit int) ([]Hit, error) {
	splitted := strings.Fields(keywords)
	if len(splitted) == 0 || limit <= 0 {
		return []Hit{}, nil
	}

	keywordQueries := make([]query.Query, 0, len(splitted))
	for _, keyword := range splitted {
		fieldQueries := make([]query.Query, 0, len(searchableFields))
		for _, field := range searchableFields {
			q := bleve.NewMatchQuery(keyword)
			q.SetField(field)
			q.SetOperator(query.MatchQueryOperatorAnd)
			if field == "FullName" || field == "Nickname" {
				q.SetBoost(2)
			}
			fieldQueries = append(fieldQueries, q)
		}
		keywordQueries = append(keywordQueries, bleve.NewDisjunctionQuery(fieldQueries...))
	}

	public := bleve.NewBoolFieldQuery(true)
	public.SetField("Public")

	compound := bleve.NewConjunctionQuery(append(keywordQueries, public)...)

	searchOptions := bleve.NewSearchRequestOptions(compound, limit, 0, false)
	searchOptions.SortBy([]string{"-_score", "-DeathDay"})
	searchResult, err := b.idx.Search(searchOptions)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, len(searchResult.Hits))
	for i, val := range searchResult.Hits {
		hits[i] = Hit{Uuid: val.ID, Score: val.Score}
	}
	return hits, nil
}
