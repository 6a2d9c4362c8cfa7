package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale order states
const (
	SaleStateDraft  = "draft"
	SaleStateSale   = "sale"
	SaleStateDone   = "done"
	SaleStateSent   = "sent"
	SaleStateCancel = "cancel"
)

// Picking policies
const (
	PickingPolicyOne    = "one"
	PickingPolicyDirect = "direct"
)

// SaleOrder is a customer order header.
type SaleOrder struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(64);not null"`
	PartnerID      uuid.UUID `gorm:"type:uuid;not null"`
	WarehouseID    uuid.UUID `gorm:"type:uuid;not null"`
	State          string    `gorm:"type:varchar(20);not null;default:'draft'"`
	DateOrder      time.Time `gorm:"not null"`
	CommitmentDate *time.Time
	PickingPolicy  string `gorm:"type:varchar(20);not null;default:'direct'"`
}

// TableName returns the table name for GORM
func (SaleOrder) TableName() string {
	return "sale_orders"
}

// SaleOrderLine is one demand line of a customer order.
type SaleOrderLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	QtyDelivered decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	UomID        uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (SaleOrderLine) TableName() string {
	return "sale_order_lines"
}
