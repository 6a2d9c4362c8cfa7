package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UOMType classifies a unit relative to the reference unit of its category.
type UOMType string

const (
	UOMReference UOMType = "reference"
	UOMBigger    UOMType = "bigger"
	UOMSmaller   UOMType = "smaller"
)

// UnitOfMeasure is a unit within a dimension category (weight, length, ...).
// Exactly one unit per category is the reference unit; conversion between two
// units always goes through it.
type UnitOfMeasure struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name       string          `gorm:"type:varchar(100);not null"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type       UOMType         `gorm:"type:varchar(20);not null"`
	Factor     decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	Active     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UnitOfMeasure) TableName() string {
	return "units_of_measure"
}

// ReferenceFactor returns the multiplier that converts a quantity expressed
// in this unit into the reference unit of its category.
func (u *UnitOfMeasure) ReferenceFactor() decimal.Decimal {
	switch u.Type {
	case UOMReference:
		return decimal.NewFromInt(1)
	case UOMBigger:
		return u.Factor
	default:
		if u.Factor.IsPositive() {
			return decimal.NewFromInt(1).Div(u.Factor)
		}
		return decimal.NewFromInt(1)
	}
}
