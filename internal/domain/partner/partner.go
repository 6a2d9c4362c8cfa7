package partner

import (
	"context"

	"github.com/google/uuid"
)

// Partner is a business relation. The same record can act as a customer, a
// supplier, or both, discriminated by the rank fields. Partners form a
// parent/child hierarchy; only root customers are exported.
type Partner struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(255);not null"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index"`
	CustomerRank int        `gorm:"not null;default:0"`
	SupplierRank int        `gorm:"not null;default:0"`
	IsCompany    bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Partner) TableName() string {
	return "partners"
}

// Repository provides access to partners
type Repository interface {
	// FindRootCustomers returns customers without a parent, ordered by id.
	FindRootCustomers(ctx context.Context) ([]Partner, error)
	// FindSuppliers returns company partners with a supplier rank.
	FindSuppliers(ctx context.Context) ([]Partner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
}
