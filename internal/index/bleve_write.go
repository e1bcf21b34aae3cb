package index

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/svera/camposanto/internal/webserver/model"
)

// Index adds or refreshes a burial record. Records not flagged as publicly
// searchable are removed instead.
func (b *BleveIndexer) Index(record *model.BurialRecord) error {
	if !record.IsPubliclySearchable {
		return b.Remove(record.Uuid)
	}

	if err := b.idx.Index(record.Uuid, NewMemorial(record)); err != nil {
		return fmt.Errorf("error indexing burial record %s: %w", record.Uuid, err)
	}
	return nil
}

// Remove deletes a burial record from the index. Removing a record which is
// not indexed is not an error.
func (b *BleveIndexer) Remove(uuid string) error {
	return b.idx.Delete(uuid)
}

// AddRecords indexes records in batches of batchSize, skipping the hidden ones
func (b *BleveIndexer) AddRecords(records []model.BurialRecord, batchSize int) error {
	batch := b.idx.NewBatch()
	for i := range records {
		if !records[i].IsPubliclySearchable {
			continue
		}
		if err := batch.Index(records[i].Uuid, NewMemorial(&records[i])); err != nil {
			log.Errorf("error indexing burial record %s: %s", records[i].Uuid, err)
			continue
		}

		if batch.Size() >= batchSize {
			if err := b.idx.Batch(batch); err != nil {
				return err
			}
			batch.Reset()
		}
	}
	return b.idx.Batch(batch)
}

// Reset removes every document from the index
func (b *BleveIndexer) Reset() error {
	for {
		req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), 1000, 0, false)
		res, err := b.idx.Search(req)
		if err != nil {
			return err
		}
		if len(res.Hits) == 0 {
			return nil
		}

		batch := b.idx.NewBatch()
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
		if err = b.idx.Batch(batch); err != nil {
			return err
		}
	}
}
