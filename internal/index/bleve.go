package index

import (
	"log"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

const memorialAnalyzer = "memorial"

// BleveIndexer keeps the search index of publicly searchable burial records.
// Hidden records are never written to it.
type BleveIndexer struct {
	idx bleve.Index
}

// NewBleve creates a new BleveIndexer instance using the passed index
func NewBleve(index bleve.Index) *BleveIndexer {
	return &BleveIndexer{idx: index}
}

func Mapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(memorialAnalyzer,
		map[string]any{
			"type": custom.Name,
			"char_filters": []string{
				asciifolding.Name,
			},
			"tokenizer": unicode.Name,
			"token_filters": []string{
				lowercase.Name,
			},
		})
	if err != nil {
		log.Fatal(err)
	}
	indexMapping.DefaultAnalyzer = memorialAnalyzer

	memorialMapping := bleve.NewDocumentMapping()
	for _, field := range []string{"FullName", "Nickname", "Plot", "Dates"} {
		memorialMapping.AddFieldMappingsAt(field, bleve.NewTextFieldMapping())
	}
	memorialMapping.AddFieldMappingsAt("DeathDay", bleve.NewKeywordFieldMapping())
	memorialMapping.AddFieldMappingsAt("Public", bleve.NewBooleanFieldMapping())
	indexMapping.DefaultMapping = memorialMapping

	return indexMapping
}

// Count returns the number of indexed records
func (b *BleveIndexer) Count() (uint64, error) {
	return b.idx.DocCount()
}

// Close closes the index
func (b *BleveIndexer) Close() error {
	return b.idx.Close()
}
