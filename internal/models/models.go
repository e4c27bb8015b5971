// Package models defines the domain entities for units of measure and
// their pairwise conversions, along with the enumerations both share.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Status marks whether a record participates in lookups.
// Convert only honors conversions whose status is Active.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Category groups units by what they measure.
type Category string

const (
	CategoryWeight    Category = "Weight"
	CategoryVolume    Category = "Volume"
	CategoryQuantity  Category = "Quantity"
	CategoryPackaging Category = "Packaging"
	CategoryLength    Category = "Length"
	CategoryArea      Category = "Area"
)

// UOMType distinguishes base units from units derived out of them.
type UOMType string

const (
	UOMTypeBase    UOMType = "base"
	UOMTypeDerived UOMType = "derived"
)

// MinConversionRatio is the smallest ratio a conversion may carry.
const MinConversionRatio = 0.001

// UOM is a unit of measure. UnitName and ShortCode are unique
// case-insensitively across all records; ShortCode is stored lower-cased.
type UOM struct {
	ID        uuid.UUID `json:"id"`
	UnitName  string    `json:"unitName"`
	ShortCode string    `json:"shortCode"`
	Type      UOMType   `json:"type"`
	Category  Category  `json:"category"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UOMConversion is a directed edge between two distinct units:
//
//	quantity_in_to = quantity_in_from * ConversionRatio
//
// At most one conversion exists per ordered (FromUOMID, ToUOMID) pair.
// FromUOM/ToUOM carry the expanded unit records when the repository
// resolved them; they are nil otherwise.
type UOMConversion struct {
	ID              uuid.UUID `json:"id"`
	FromUOMID       uuid.UUID `json:"-"`
	ToUOMID         uuid.UUID `json:"-"`
	ConversionRatio float64   `json:"conversionRatio"`
	Category        Category  `json:"category"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	FromUOM *UOM `json:"fromUOM,omitempty"`
	ToUOM   *UOM `json:"toUOM,omitempty"`
}

// ConversionResult is the outcome of converting a quantity between two units.
type ConversionResult struct {
	OriginalQuantity  float64 `json:"originalQuantity"`
	ConvertedQuantity float64 `json:"convertedQuantity"`
	FromUOM           *UOM    `json:"fromUOM"`
	ToUOM             *UOM    `json:"toUOM"`
}

// UOMFilter narrows UOM listings. Search is a case-insensitive substring
// match against unit name, short code, or category; the rest are equality
// filters. Zero values mean "no filter".
type UOMFilter struct {
	Search   string
	Status   Status
	Type     UOMType
	Category Category
}

// ConversionFilter narrows conversion listings. Search matches against the
// resolved from/to unit names or the conversion category.
type ConversionFilter struct {
	Search   string
	Status   Status
	Category Category
}
