package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock move states
const (
	MoveStateDraft     = "draft"
	MoveStateWaiting   = "waiting"
	MoveStateConfirmed = "confirmed"
	MoveStatePartial   = "partially_available"
	MoveStateAssigned  = "assigned"
	MoveStateDone      = "done"
	MoveStateCancel    = "cancel"
)

// StockQuant holds the on-hand quantity of a product at a location.
type StockQuant struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,6);not null"`
}

// TableName returns the table name for GORM
func (StockQuant) TableName() string {
	return "stock_quants"
}

// OnHand is an aggregated on-hand quantity per (product, location) pair.
type OnHand struct {
	ProductID  uuid.UUID
	LocationID uuid.UUID
	Quantity   decimal.Decimal
}

// StockMove is one internal product movement between two locations.
type StockMove struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Reference        string          `gorm:"type:varchar(64)"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	UomID            uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	LocationID       uuid.UUID       `gorm:"type:uuid;not null"` // origin
	LocationDestID   uuid.UUID       `gorm:"type:uuid;not null"`
	State            string          `gorm:"type:varchar(20);not null;default:'draft'"`
	Date             time.Time       `gorm:"not null"`
	ShipmentID       *uuid.UUID      `gorm:"type:uuid;index"`
	PlannerReference string          `gorm:"type:varchar(64);column:frepple_reference"`
}

// TableName returns the table name for GORM
func (StockMove) TableName() string {
	return "stock_moves"
}

// Shipment groups the stock moves between one origin/destination pair, the
// way the host system groups moves into a picking. One shipment is created
// per location pair per import run.
type Shipment struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	State          string    `gorm:"type:varchar(20);not null;default:'draft'"`
	ScheduledDate  time.Time `gorm:"not null"`
	LocationID     uuid.UUID `gorm:"type:uuid;not null"`
	LocationDestID uuid.UUID `gorm:"type:uuid;not null"`
	Origin         string    `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// Orderpoint is a reorder rule for a (product, warehouse) pair. Zero-valued
// quantities mean "not set", not "set to zero".
type Orderpoint struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	UomID       uuid.UUID       `gorm:"type:uuid;not null"`
	MinQty      decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	MaxQty      decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	QtyMultiple decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
}

// TableName returns the table name for GORM
func (Orderpoint) TableName() string {
	return "orderpoints"
}

// StockRule is a replenishment rule routing goods between two locations.
type StockRule struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LocationSrcID *uuid.UUID `gorm:"type:uuid"`
	LocationID    uuid.UUID  `gorm:"type:uuid;not null"`
	DelayDays     int        `gorm:"not null;default:0"`
	RouteName     string     `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (StockRule) TableName() string {
	return "stock_rules"
}
