package persistence

import (
	"context"

	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuantRepository implements inventory.QuantRepository using GORM
type GormQuantRepository struct {
	db *gorm.DB
}

// NewGormQuantRepository creates a new GormQuantRepository
func NewGormQuantRepository(db *gorm.DB) *GormQuantRepository {
	return &GormQuantRepository{db: db}
}

// SumOnHand aggregates positive on-hand quantities per (product, location)
// pair in SQL
func (r *GormQuantRepository) SumOnHand(ctx context.Context) ([]inventory.OnHand, error) {
	var rows []inventory.OnHand
	err := r.db.WithContext(ctx).
		Model(&inventory.StockQuant{}).
		Select("product_id, location_id, SUM(quantity) AS quantity").
		Where("quantity > 0").
		Group("product_id, location_id").
		Order("product_id, location_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GormMoveRepository implements inventory.MoveRepository using GORM
type GormMoveRepository struct {
	db *gorm.DB
}

// NewGormMoveRepository creates a new GormMoveRepository
func NewGormMoveRepository(db *gorm.DB) *GormMoveRepository {
	return &GormMoveRepository{db: db}
}

// FindInternalMoves returns moves between two different locations
func (r *GormMoveRepository) FindInternalMoves(ctx context.Context) ([]inventory.StockMove, error) {
	var moves []inventory.StockMove
	if err := r.db.WithContext(ctx).
		Where("location_id <> location_dest_id").
		Order("id").
		Find(&moves).Error; err != nil {
		return nil, err
	}
	return moves, nil
}

// CreateMove persists a new stock move
func (r *GormMoveRepository) CreateMove(ctx context.Context, move *inventory.StockMove) error {
	return r.db.WithContext(ctx).Create(move).Error
}

// CreateShipment persists a new shipment header
func (r *GormMoveRepository) CreateShipment(ctx context.Context, shipment *inventory.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

// DeleteDraftsByOrigin removes draft shipments and their moves carrying the
// given origin marker
func (r *GormMoveRepository) DeleteDraftsByOrigin(ctx context.Context, origin string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&inventory.Shipment{}).
			Where("origin = ? AND state = ?", origin, inventory.MoveStateDraft).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("shipment_id IN ?", ids).Delete(&inventory.StockMove{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&inventory.Shipment{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}

// GormOrderpointRepository implements inventory.OrderpointRepository using GORM
type GormOrderpointRepository struct {
	db *gorm.DB
}

// NewGormOrderpointRepository creates a new GormOrderpointRepository
func NewGormOrderpointRepository(db *gorm.DB) *GormOrderpointRepository {
	return &GormOrderpointRepository{db: db}
}

// FindAll returns every reorder rule
func (r *GormOrderpointRepository) FindAll(ctx context.Context) ([]inventory.Orderpoint, error) {
	var orderpoints []inventory.Orderpoint
	if err := r.db.WithContext(ctx).Order("id").Find(&orderpoints).Error; err != nil {
		return nil, err
	}
	return orderpoints, nil
}

// GormStockRuleRepository implements inventory.StockRuleRepository using GORM
type GormStockRuleRepository struct {
	db *gorm.DB
}

// NewGormStockRuleRepository creates a new GormStockRuleRepository
func NewGormStockRuleRepository(db *gorm.DB) *GormStockRuleRepository {
	return &GormStockRuleRepository{db: db}
}

// FindAllOrdered returns rules ordered so duplicate location pairs can be
// collapsed keeping the longest lead time
func (r *GormStockRuleRepository) FindAllOrdered(ctx context.Context) ([]inventory.StockRule, error) {
	var rules []inventory.StockRule
	if err := r.db.WithContext(ctx).
		Order("location_src_id, location_id, delay_days DESC, id").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

var (
	_ inventory.QuantRepository      = (*GormQuantRepository)(nil)
	_ inventory.MoveRepository       = (*GormMoveRepository)(nil)
	_ inventory.OrderpointRepository = (*GormOrderpointRepository)(nil)
	_ inventory.StockRuleRepository  = (*GormStockRuleRepository)(nil)
)
