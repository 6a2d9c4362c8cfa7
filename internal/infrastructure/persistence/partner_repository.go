package persistence

import (
	"context"
	"errors"

	"github.com/erp/planner-connector/internal/domain/partner"
	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPartnerRepository implements partner.Repository using GORM
type GormPartnerRepository struct {
	db *gorm.DB
}

// NewGormPartnerRepository creates a new GormPartnerRepository
func NewGormPartnerRepository(db *gorm.DB) *GormPartnerRepository {
	return &GormPartnerRepository{db: db}
}

// FindRootCustomers returns customers without a parent
func (r *GormPartnerRepository) FindRootCustomers(ctx context.Context) ([]partner.Partner, error) {
	var partners []partner.Partner
	if err := r.db.WithContext(ctx).
		Where("customer_rank > 0 AND parent_id IS NULL").
		Order("id").
		Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// FindSuppliers returns company partners with a supplier rank
func (r *GormPartnerRepository) FindSuppliers(ctx context.Context) ([]partner.Partner, error) {
	var partners []partner.Partner
	if err := r.db.WithContext(ctx).
		Where("is_company AND supplier_rank > 0").
		Order("id").
		Find(&partners).Error; err != nil {
		return nil, err
	}
	return partners, nil
}

// FindByID finds a partner by its ID
func (r *GormPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	var p partner.Partner
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ partner.Repository = (*GormPartnerRepository)(nil)
