package resource

import "github.com/google/uuid"

// Location is a stock location inside a warehouse. CompleteName is the
// fully-qualified hierarchical name ("WH/Stock/Shelf 1") and must be unique;
// the host system does not enforce that, we assume it.
type Location struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(255);not null"`
	CompleteName string     `gorm:"type:varchar(512);not null"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "stock_locations"
}

// Warehouse groups stock locations. The five functional locations (input,
// output, pack, quality control, view) are the roots of the exported
// location tree; StockLocationID is the primary stock location used to
// resolve moves and inbound purchase orders.
type Warehouse struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	InputLocationID   uuid.UUID `gorm:"type:uuid;not null"`
	OutputLocationID  uuid.UUID `gorm:"type:uuid;not null"`
	PackLocationID    uuid.UUID `gorm:"type:uuid;not null"`
	QualityLocationID uuid.UUID `gorm:"type:uuid;not null"`
	ViewLocationID    uuid.UUID `gorm:"type:uuid;not null"`
	StockLocationID   uuid.UUID `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}
