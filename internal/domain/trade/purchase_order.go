package trade

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase order states
const (
	PurchaseStateDraft  = "draft"
	PurchaseStateSent   = "sent"
	PurchaseStateOrder  = "purchase"
	PurchaseStateDone   = "done"
	PurchaseStateCancel = "cancel"
)

// PurchaseOrder is a supplier order header. Orders created by the planner
// import carry an origin marker; a full-refresh import purges its own
// previous draft proposals by that marker.
type PurchaseOrder struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(64);not null"`
	PartnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID  uuid.UUID `gorm:"type:uuid;not null"` // destination stock location
	State       string    `gorm:"type:varchar(20);not null;default:'draft'"`
	DateOrder   time.Time `gorm:"not null"`
	DatePlanned time.Time `gorm:"not null"`
	Origin      string    `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PullDateForward lowers the order's planned date to the given date when it
// is earlier. The order date always covers the earliest of its lines.
func (po *PurchaseOrder) PullDateForward(date time.Time) {
	if date.Before(po.DatePlanned) {
		po.DatePlanned = date
	}
}

// PurchaseOrderLine is one product line of a supplier order. Several planner
// records for the same product merge into one line; the planner references
// accumulate in a comma-joined audit trail.
type PurchaseOrderLine struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	QtyReceived      decimal.Decimal `gorm:"type:decimal(18,6);not null;default:0"`
	UomID            uuid.UUID       `gorm:"type:uuid;not null"`
	DatePlanned      time.Time       `gorm:"not null"`
	PriceUnit        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PlannerReference string          `gorm:"type:varchar(512);column:frepple_reference"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// Merge folds another planner record for the same product into this line:
// quantities sum, the planned date becomes the earliest of the two, and the
// incoming reference is appended to the audit trail.
func (l *PurchaseOrderLine) Merge(qty decimal.Decimal, datePlanned time.Time, reference string) {
	l.Quantity = l.Quantity.Add(qty)
	if datePlanned.Before(l.DatePlanned) {
		l.DatePlanned = datePlanned
	}
	l.AppendReference(reference)
}

// AppendReference adds a planner reference to the comma-joined audit trail.
func (l *PurchaseOrderLine) AppendReference(reference string) {
	if reference == "" {
		return
	}
	if l.PlannerReference == "" {
		l.PlannerReference = reference
		return
	}
	l.PlannerReference = strings.Join([]string{l.PlannerReference, reference}, ",")
}
