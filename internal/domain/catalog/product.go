package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable/manufacturable item. Inactive products stay visible
// to the planning export because historical records may still reference them.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Code         string          `gorm:"type:varchar(64)"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	UomID        uuid.UUID       `gorm:"type:uuid;not null"`
	ListPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProduceDelay decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"` // hours to produce one batch
	PurchaseOK   bool            `gorm:"not null;default:false"`
	Active       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// SupplierOffer is one sourcing option for a product: a supplier with lead
// time, price and an optional effective date window. Offers are ranked by
// Sequence, ties broken by declaration order.
type SupplierOffer struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID uuid.UUID       `gorm:"type:uuid;not null;index"`
	LeadTime   int             `gorm:"not null;default:0"` // days
	Sequence   int             `gorm:"not null;default:1"`
	MinQty     decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	Price      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DateStart  *time.Time
	DateEnd    *time.Time
	// LocationID qualifies an offer that only applies when sourcing into a
	// specific location. One offer may be repeated once per sourcing location.
	LocationID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SupplierOffer) TableName() string {
	return "supplier_offers"
}

// EffectiveOn reports whether the offer applies on the given date.
func (o *SupplierOffer) EffectiveOn(date time.Time) bool {
	if o.DateStart != nil && date.Before(*o.DateStart) {
		return false
	}
	if o.DateEnd != nil && date.After(*o.DateEnd) {
		return false
	}
	return true
}
