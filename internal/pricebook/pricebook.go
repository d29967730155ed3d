// Package pricebook owns the static ingredient price reference table and the
// fuzzy name resolution over it. One consolidated table replaces the copies
// that used to live at every call site; the table is an ordered list so that
// resolution order stays deterministic and auditable.
package pricebook

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"

	"menu-profit-engine/internal/models"
	apperrors "menu-profit-engine/pkg/errors"
)

//go:embed prices.yaml
var pricesYAML []byte

// Entry is one reference row: ingredient name, category and price per
// canonical unit.
type Entry struct {
	ID       int64   `yaml:"id"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Unit     string  `yaml:"unit"`
	Price    float64 `yaml:"price"`
}

// Book resolves ingredient names and IDs to reference prices. Lookups are
// total: an unmatched name gets the default price, never an error. Read-only
// after Load, safe for concurrent use.
type Book struct {
	entries      []Entry
	byID         map[int64]Entry
	folded       []string // folded names, parallel to entries
	defaultPrice float64
}

type bookFile struct {
	DefaultPrice float64 `yaml:"defaultPrice"`
	Entries      []Entry `yaml:"entries"`
}

// Load parses the embedded reference table.
func Load() (*Book, error) {
	var f bookFile
	if err := yaml.Unmarshal(pricesYAML, &f); err != nil {
		return nil, apperrors.NewValidation("pricebook.Load", "malformed embedded price table", err)
	}
	return New(f.Entries, f.DefaultPrice), nil
}

// New builds a book from an explicit entry list, preserving its order.
func New(entries []Entry, defaultPrice float64) *Book {
	if defaultPrice <= 0 {
		defaultPrice = 2.0
	}
	b := &Book{
		entries:      entries,
		byID:         make(map[int64]Entry, len(entries)),
		folded:       make([]string, len(entries)),
		defaultPrice: defaultPrice,
	}
	for i, e := range entries {
		b.folded[i] = foldName(e.Name)
		if e.ID != 0 {
			b.byID[e.ID] = e
		}
	}
	return b
}

// PriceFor returns the price per canonical unit for an ingredient name.
// Guaranteed positive; falls back to the default price on no match.
func (b *Book) PriceFor(name string) float64 {
	if e, ok := b.Resolve(name); ok {
		return e.Price
	}
	return b.defaultPrice
}

// Resolve returns the matched entry so callers can audit which reference row
// priced a given name. Matching is bidirectional substring containment over
// folded names; the first entry in table order wins. Known limitation carried
// over from the reference data: overlapping names ("Tomates" vs "Tomates
// cerises") make order significant, which is why the table is a list.
func (b *Book) Resolve(name string) (Entry, bool) {
	q := foldName(name)
	if q == "" {
		return Entry{}, false
	}
	for i, key := range b.folded {
		if strings.Contains(key, q) || strings.Contains(q, key) {
			return b.entries[i], true
		}
	}
	return Entry{}, false
}

// DefaultPrice exposes the fallback unit price.
func (b *Book) DefaultPrice() float64 { return b.defaultPrice }

// Entries returns the table in resolution order.
func (b *Book) Entries() []Entry { return b.entries }

// Ingredient implements models.Catalog over the static table.
func (b *Book) Ingredient(id int64) (models.Ingredient, bool) {
	e, ok := b.byID[id]
	if !ok {
		return models.Ingredient{}, false
	}
	return models.Ingredient{
		ID:           e.ID,
		Name:         e.Name,
		Category:     e.Category,
		Unit:         e.Unit,
		PricePerUnit: e.Price,
	}, true
}

// accentFolder maps the accented runes that occur in ingredient data to
// their base letters. Intentionally small; extend as the table grows.
var accentFolder = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"ç", "c",
	"œ", "oe",
)

// foldName lower-cases and strips diacritics so "Crème fraîche" and
// "creme fraiche" resolve identically.
func foldName(s string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(s)))
}
