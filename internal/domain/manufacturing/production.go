package manufacturing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Manufacturing order states
const (
	MOStateDraft      = "draft"
	MOStateConfirmed  = "confirmed"
	MOStateReady      = "ready"
	MOStateInProgress = "in_production"
	MOStateDone       = "done"
	MOStateCancel     = "cancel"
)

// ManufacturingOrder is a production order for a recipe. Orders created by
// the planner import carry the planner's run reference and an origin marker
// so that a full-refresh import can purge its own previous proposals.
type ManufacturingOrder struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name             string          `gorm:"type:varchar(64);not null"`
	BOMID            *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	QuantityProduced decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	UomID            uuid.UUID       `gorm:"type:uuid;not null"`
	State            string          `gorm:"type:varchar(20);not null;default:'draft'"`
	DateStart        *time.Time
	DatePlannedStart *time.Time
	DatePlannedEnd   *time.Time
	LocationDestID   uuid.UUID `gorm:"type:uuid;not null"`
	PlannerReference string    `gorm:"type:varchar(64);index"`
	Origin           string    `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (ManufacturingOrder) TableName() string {
	return "manufacturing_orders"
}

// IsOpen reports whether the order is still in progress from a planning
// point of view.
func (m *ManufacturingOrder) IsOpen() bool {
	switch m.State {
	case MOStateConfirmed, MOStateReady, MOStateInProgress:
		return true
	}
	return false
}
