package persistence

import (
	"context"
	"errors"

	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBOMRepository implements manufacturing.BOMRepository using GORM
type GormBOMRepository struct {
	db *gorm.DB
}

// NewGormBOMRepository creates a new GormBOMRepository
func NewGormBOMRepository(db *gorm.DB) *GormBOMRepository {
	return &GormBOMRepository{db: db}
}

// FindAll returns every recipe
func (r *GormBOMRepository) FindAll(ctx context.Context) ([]manufacturing.BOM, error) {
	var boms []manufacturing.BOM
	if err := r.db.WithContext(ctx).Order("id").Find(&boms).Error; err != nil {
		return nil, err
	}
	return boms, nil
}

// FindByID finds a recipe by its ID
func (r *GormBOMRepository) FindByID(ctx context.Context, id uuid.UUID) (*manufacturing.BOM, error) {
	var bom manufacturing.BOM
	if err := r.db.WithContext(ctx).First(&bom, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &bom, nil
}

// FindLines returns the component lines of a recipe
func (r *GormBOMRepository) FindLines(ctx context.Context, bomID uuid.UUID) ([]manufacturing.BOMLine, error) {
	var lines []manufacturing.BOMLine
	if err := r.db.WithContext(ctx).
		Where("bom_id = ?", bomID).
		Order("id").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindByproducts returns the byproduct lines of a recipe
func (r *GormBOMRepository) FindByproducts(ctx context.Context, bomID uuid.UUID) ([]manufacturing.Byproduct, error) {
	var byproducts []manufacturing.Byproduct
	if err := r.db.WithContext(ctx).
		Where("bom_id = ?", bomID).
		Order("id").
		Find(&byproducts).Error; err != nil {
		return nil, err
	}
	return byproducts, nil
}

// GormRoutingRepository implements manufacturing.RoutingRepository using GORM
type GormRoutingRepository struct {
	db *gorm.DB
}

// NewGormRoutingRepository creates a new GormRoutingRepository
func NewGormRoutingRepository(db *gorm.DB) *GormRoutingRepository {
	return &GormRoutingRepository{db: db}
}

// FindByID finds a routing by its ID
func (r *GormRoutingRepository) FindByID(ctx context.Context, id uuid.UUID) (*manufacturing.Routing, error) {
	var routing manufacturing.Routing
	if err := r.db.WithContext(ctx).First(&routing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &routing, nil
}

// FindAllSteps returns every routing step ordered by routing then sequence
func (r *GormRoutingRepository) FindAllSteps(ctx context.Context) ([]manufacturing.RoutingStep, error) {
	var steps []manufacturing.RoutingStep
	if err := r.db.WithContext(ctx).
		Order("routing_id, sequence, id").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// GormManufacturingOrderRepository implements
// manufacturing.ManufacturingOrderRepository using GORM
type GormManufacturingOrderRepository struct {
	db *gorm.DB
}

// NewGormManufacturingOrderRepository creates a new GormManufacturingOrderRepository
func NewGormManufacturingOrderRepository(db *gorm.DB) *GormManufacturingOrderRepository {
	return &GormManufacturingOrderRepository{db: db}
}

// FindOpen returns orders in an open or in-progress state
func (r *GormManufacturingOrderRepository) FindOpen(ctx context.Context) ([]manufacturing.ManufacturingOrder, error) {
	var orders []manufacturing.ManufacturingOrder
	if err := r.db.WithContext(ctx).
		Where("state IN ?", []string{
			manufacturing.MOStateConfirmed,
			manufacturing.MOStateReady,
			manufacturing.MOStateInProgress,
		}).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create persists a new production order
func (r *GormManufacturingOrderRepository) Create(ctx context.Context, mo *manufacturing.ManufacturingOrder) error {
	return r.db.WithContext(ctx).Create(mo).Error
}

// DeleteDraftsByOrigin removes draft and cancelled orders carrying the given
// origin marker
func (r *GormManufacturingOrderRepository) DeleteDraftsByOrigin(ctx context.Context, origin string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("origin = ? AND state IN ?", origin, []string{manufacturing.MOStateDraft, manufacturing.MOStateCancel}).
		Delete(&manufacturing.ManufacturingOrder{})
	return result.RowsAffected, result.Error
}

var (
	_ manufacturing.BOMRepository                = (*GormBOMRepository)(nil)
	_ manufacturing.RoutingRepository            = (*GormRoutingRepository)(nil)
	_ manufacturing.ManufacturingOrderRepository = (*GormManufacturingOrderRepository)(nil)
)
