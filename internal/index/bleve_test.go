package index_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/svera/camposanto/internal/index"
	"github.com/svera/camposanto/internal/webserver/model"
)

func TestIndexAndSearch(t *testing.T) {
	idx := newIndex(t)
	records := fixtures()

	if err := idx.AddRecords(records, 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("Wrong number of indexed records, expected 3, got %d", count)
	}

	var cases = []struct {
		name     string
		search   string
		expected []string
	}{
		{"Search without accents finds accented names", "garcia", []string{"r2", "r1"}},
		{"Search is case insensitive", "GARCÍA", []string{"r2", "r1"}},
		{"Every keyword must match", "ana garcia", []string{"r1"}},
		{"Search by nickname", "paquita", []string{"r3"}},
		{"Search by plot identifier", "b-2-7-1", []string{"r2"}},
		{"Search by year", "1987", []string{"r1"}},
		{"Hidden records are never found", "oculto", []string{}},
		{"Blank search", "   ", []string{}},
		{"No matches", "zapatero", []string{}},
	}

	for _, tcase := range cases {
		t.Run(tcase.name, func(t *testing.T) {
			hits, err := idx.Search(tcase.search, 10)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := uuids(hits); !reflect.DeepEqual(got, tcase.expected) {
				t.Errorf("Wrong results, expected %v, got %v", tcase.expected, got)
			}
		})
	}
}

func TestSearchOrdersByRelevanceThenDeathDate(t *testing.T) {
	idx := newIndex(t)
	records := []model.BurialRecord{
		{Uuid: "older-tie", FirstName: "Ana", LastName: "García", DeathDate: date(1987, 3, 2), IsPubliclySearchable: true},
		{Uuid: "undated", FirstName: "Eva", LastName: "García", IsPubliclySearchable: true},
		{Uuid: "most-relevant", FirstName: "Pepe", LastName: "García", Nickname: "García", DeathDate: date(1950, 1, 1), IsPubliclySearchable: true},
		{Uuid: "newer-tie", FirstName: "Luis", LastName: "García", DeathDate: date(2001, 11, 20), IsPubliclySearchable: true},
	}
	if err := idx.AddRecords(records, 100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hits, err := idx.Search("garcia", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := []string{"most-relevant", "newer-tie", "older-tie", "undated"}
	if got := uuids(hits); !reflect.DeepEqual(got, expected) {
		t.Errorf("Wrong order, expected %v, got %v", expected, got)
	}
	if len(hits) == 4 && hits[1].Score != hits[2].Score {
		t.Errorf("Expected records differing only in death date to tie on score, got %f and %f", hits[1].Score, hits[2].Score)
	}
}

func TestSearchLimit(t *testing.T) {
	idx := newIndex(t)
	if err := idx.AddRecords(fixtures(), 100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hits, err := idx.Search("garcia", 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("Wrong number of results, expected 1, got %d", len(hits))
	}
}

func TestIndexRemovesRecordsWhichBecomeHidden(t *testing.T) {
	idx := newIndex(t)
	records := fixtures()
	if err := idx.AddRecords(records, 100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	records[0].IsPubliclySearchable = false
	if err := idx.Index(&records[0]); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hits, err := idx.Search("garcia", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := uuids(hits); !reflect.DeepEqual(got, []string{"r2"}) {
		t.Errorf("Wrong results, expected [r2], got %v", got)
	}

	if err = idx.Remove("not-indexed"); err != nil {
		t.Errorf("Unexpected error removing a record which is not indexed: %v", err)
	}
}

func TestReset(t *testing.T) {
	idx := newIndex(t)
	if err := idx.AddRecords(fixtures(), 100); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if err := idx.Reset(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	count, err := idx.Count()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("Wrong number of indexed records, expected 0, got %d", count)
	}
}

func newIndex(t *testing.T) *index.BleveIndexer {
	t.Helper()

	indexMem, err := bleve.NewMemOnly(index.Mapping())
	if err != nil {
		t.Fatalf("Error initialising index: %v", err)
	}
	idx := index.NewBleve(indexMem)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func fixtures() []model.BurialRecord {
	return []model.BurialRecord{
		{
			Uuid:                 "r1",
			FirstName:            "Ana",
			LastName:             "García",
			DeathDate:            date(1987, 3, 2),
			IsPubliclySearchable: true,
		},
		{
			Uuid:                 "r2",
			FirstName:            "Luis",
			LastName:             "García",
			DeathDate:            date(2001, 11, 20),
			IsPubliclySearchable: true,
			Plot:                 &model.Plot{Section: "B", Block: "2", Row: "7", Lot: "1"},
		},
		{
			Uuid:                 "r3",
			FirstName:            "Francisca",
			LastName:             "Martín",
			Nickname:             "Paquita",
			IsPubliclySearchable: true,
		},
		{
			Uuid:      "r4",
			FirstName: "Oculto",
			LastName:  "García",
		},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func uuids(hits []index.Hit) []string {
	ids := make([]string, len(hits))
	for i, hit := range hits {
		ids[i] = hit.Uuid
	}
	return ids
}
