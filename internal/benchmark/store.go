package benchmark

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"menu-profit-engine/internal/models"
	apperrors "menu-profit-engine/pkg/errors"
)

//go:embed references.yaml
var referencesYAML []byte

// StaticStore serves the embedded reference table. Keys are folded
// (lower-cased, trimmed) so "Paris" and "paris" hit the same record.
type StaticStore struct {
	refs map[string]models.BenchmarkReference
}

type refFile struct {
	References []models.BenchmarkReference `yaml:"references"`
}

// LoadStaticStore parses the embedded reference data.
func LoadStaticStore() (*StaticStore, error) {
	var f refFile
	if err := yaml.Unmarshal(referencesYAML, &f); err != nil {
		return nil, apperrors.NewValidation("benchmark.LoadStaticStore", "malformed embedded reference table", err)
	}
	return NewStaticStore(f.References), nil
}

// NewStaticStore indexes an explicit reference list.
func NewStaticStore(refs []models.BenchmarkReference) *StaticStore {
	s := &StaticStore{refs: make(map[string]models.BenchmarkReference, len(refs))}
	for _, r := range refs {
		s.refs[refKey(r.Zone, r.CuisineType, r.PriceRange)] = r
	}
	return s
}

func (s *StaticStore) Find(zone, cuisineType, priceRange string) (models.BenchmarkReference, bool) {
	r, ok := s.refs[refKey(zone, cuisineType, priceRange)]
	return r, ok
}

func refKey(zone, cuisineType, priceRange string) string {
	fold := func(v string) string { return strings.ToLower(strings.TrimSpace(v)) }
	return fmt.Sprintf("%s|%s|%s", fold(zone), fold(cuisineType), fold(priceRange))
}

// SQLStore reads reference records from the persistence collaborator
// (MySQL). Used when the host application maintains its own market data;
// the static store remains the fallback.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Find(zone, cuisineType, priceRange string) (models.BenchmarkReference, bool) {
	const q = `SELECT zone, cuisine_type, price_range, avg_price, avg_margin, sample_size
		FROM benchmark_references
		WHERE zone = ? AND cuisine_type = ? AND price_range = ?
		LIMIT 1`

	var r models.BenchmarkReference
	row := s.db.QueryRow(q, strings.ToLower(strings.TrimSpace(zone)),
		strings.ToLower(strings.TrimSpace(cuisineType)),
		strings.ToLower(strings.TrimSpace(priceRange)))
	if err := row.Scan(&r.Zone, &r.CuisineType, &r.PriceRange, &r.AvgPrice, &r.AvgMargin, &r.SampleSize); err != nil {
		return models.BenchmarkReference{}, false
	}
	return r, true
}
