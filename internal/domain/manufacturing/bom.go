package manufacturing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BOM is a manufacturing recipe: the quantity of a product produced from a
// set of component lines, optionally through a multi-step routing. A routing
// is not mandatory here but the planning interchange format requires one, so
// recipes without an explicit routing are exported against a configured
// dummy route.
type BOM struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,6);not null;default:1"`
	UomID     uuid.UUID       `gorm:"type:uuid;not null"`
	RoutingID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (BOM) TableName() string {
	return "boms"
}

// BOMLine is one consumed component of a recipe. The same component may
// appear on several lines; the export sums them into a single flow.
type BOMLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BOMID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	UomID     uuid.UUID       `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (BOMLine) TableName() string {
	return "bom_lines"
}

// Byproduct is a secondary output of a recipe, either a fixed quantity per
// operation instance or proportional to the produced quantity.
type Byproduct struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BOMID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,6);not null"`
	UomID     uuid.UUID       `gorm:"type:uuid;not null"`
	Fixed     bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Byproduct) TableName() string {
	return "bom_byproducts"
}

// Routing is an ordered set of production steps attached to recipes.
type Routing struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"type:varchar(255);not null"`
	LocationID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Routing) TableName() string {
	return "routings"
}

// RoutingStep is one workcenter pass within a routing. Sequence numbers
// coming from the host system cannot be trusted to be dense or unique;
// consumers must rely on the synthetic priority assigned at export time.
type RoutingStep struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RoutingID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	WorkcenterID uuid.UUID       `gorm:"type:uuid;not null"`
	Sequence     int             `gorm:"not null;default:0"`
	CycleTime    decimal.Decimal `gorm:"type:decimal(10,4);not null;default:0"` // hours
}

// TableName returns the table name for GORM
func (RoutingStep) TableName() string {
	return "routing_steps"
}
