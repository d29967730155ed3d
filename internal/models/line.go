package models

import "strings"

// IngredientLine is the polymorphic wire form of one ingredient's use in one
// recipe. Callers historically sent three incompatible shapes for the same
// conceptual entity; all three are accepted here and resolved to a single
// normalized form in one explicit step instead of ad-hoc sniffing at every
// call site.
//
// Accepted shapes (exactly one per line):
//
//	catalog reference: {ingredientId, quantity, unit?}
//	embedded ref:      {ingredientRef: {id, name, unit}, relationQuantity}
//	flat:              {name, quantity, unit?}
type IngredientLine struct {
	IngredientID     *int64         `json:"ingredientId,omitempty"`
	IngredientRef    *IngredientRef `json:"ingredientRef,omitempty"`
	RelationQuantity *float64       `json:"relationQuantity,omitempty"`
	Name             string         `json:"name,omitempty"`
	Quantity         *float64       `json:"quantity,omitempty"`
	Unit             string         `json:"unit,omitempty"`
}

// IngredientRef is the embedded ingredient object of the second shape.
type IngredientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
}

// LineShape tags which of the accepted raw shapes a line matched.
type LineShape int

const (
	ShapeUnknown LineShape = iota
	ShapeCatalogRef
	ShapeEmbeddedRef
	ShapeFlat
)

func (s LineShape) String() string {
	switch s {
	case ShapeCatalogRef:
		return "catalog-ref"
	case ShapeEmbeddedRef:
		return "embedded-ref"
	case ShapeFlat:
		return "flat"
	default:
		return "unknown"
	}
}

// NormalizedLine is the single form consumed by everything downstream.
// IngredientID is set only for the catalog-ref shape, where the name must
// come from the catalog collaborator.
type NormalizedLine struct {
	IngredientID *int64
	Name         string
	Quantity     float64
	Unit         string
}

// Shape detects which raw shape this line carries. Detection requires the
// shape's own fields to be present and coherent; it never combines fields
// across shapes, so a line with an ingredientId but no quantity is unknown
// rather than guessed.
func (l IngredientLine) Shape() LineShape {
	if l.IngredientID != nil && l.Quantity != nil {
		return ShapeCatalogRef
	}
	if l.IngredientRef != nil && l.RelationQuantity != nil {
		return ShapeEmbeddedRef
	}
	if strings.TrimSpace(l.Name) != "" && l.Quantity != nil {
		return ShapeFlat
	}
	return ShapeUnknown
}

// Normalize resolves the line to its normalized form. ok is false when no
// shape matches or the quantity is negative; callers skip such lines and
// degrade the cost breakdown rather than abort.
func (l IngredientLine) Normalize() (NormalizedLine, bool) {
	switch l.Shape() {
	case ShapeCatalogRef:
		if *l.Quantity < 0 {
			return NormalizedLine{}, false
		}
		return NormalizedLine{
			IngredientID: l.IngredientID,
			Quantity:     *l.Quantity,
			Unit:         l.Unit,
		}, true
	case ShapeEmbeddedRef:
		if *l.RelationQuantity < 0 {
			return NormalizedLine{}, false
		}
		id := l.IngredientRef.ID
		return NormalizedLine{
			IngredientID: &id,
			Name:         l.IngredientRef.Name,
			Quantity:     *l.RelationQuantity,
			Unit:         l.IngredientRef.Unit,
		}, true
	case ShapeFlat:
		if *l.Quantity < 0 {
			return NormalizedLine{}, false
		}
		return NormalizedLine{
			Name:     strings.TrimSpace(l.Name),
			Quantity: *l.Quantity,
			Unit:     l.Unit,
		}, true
	default:
		return NormalizedLine{}, false
	}
}
