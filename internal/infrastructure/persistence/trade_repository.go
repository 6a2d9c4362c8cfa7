package persistence

import (
	"context"

	"github.com/erp/planner-connector/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleOrderRepository implements trade.SaleOrderRepository using GORM
type GormSaleOrderRepository struct {
	db *gorm.DB
}

// NewGormSaleOrderRepository creates a new GormSaleOrderRepository
func NewGormSaleOrderRepository(db *gorm.DB) *GormSaleOrderRepository {
	return &GormSaleOrderRepository{db: db}
}

// FindExportableLines returns every sale order line joined with its header,
// ordered by order then line id
func (r *GormSaleOrderRepository) FindExportableLines(ctx context.Context) ([]trade.OpenSaleLine, error) {
	var orders []trade.SaleOrder
	if err := r.db.WithContext(ctx).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]trade.SaleOrder, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	var lines []trade.SaleOrderLine
	if err := r.db.WithContext(ctx).Order("order_id, id").Find(&lines).Error; err != nil {
		return nil, err
	}

	result := make([]trade.OpenSaleLine, 0, len(lines))
	for _, line := range lines {
		order, ok := byID[line.OrderID]
		if !ok {
			continue
		}
		result = append(result, trade.OpenSaleLine{Line: line, Order: order})
	}
	return result, nil
}

// GormPurchaseOrderRepository implements trade.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindOpenLines returns lines of confirmed orders joined with their header
func (r *GormPurchaseOrderRepository) FindOpenLines(ctx context.Context) ([]trade.OpenPurchaseLine, error) {
	var orders []trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Where("state NOT IN ?", []string{trade.PurchaseStateDraft, trade.PurchaseStateSent, trade.PurchaseStateCancel}).
		Order("id").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]trade.PurchaseOrder, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var lines []trade.PurchaseOrderLine
	if err := r.db.WithContext(ctx).
		Where("order_id IN ?", ids).
		Order("order_id, id").
		Find(&lines).Error; err != nil {
		return nil, err
	}

	result := make([]trade.OpenPurchaseLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, trade.OpenPurchaseLine{Line: line, Order: byID[line.OrderID]})
	}
	return result, nil
}

// CreateOrder persists a new purchase order header
func (r *GormPurchaseOrderRepository) CreateOrder(ctx context.Context, po *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// CreateLine persists a new purchase order line
func (r *GormPurchaseOrderRepository) CreateLine(ctx context.Context, line *trade.PurchaseOrderLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

// UpdateOrder saves changes to a purchase order header
func (r *GormPurchaseOrderRepository) UpdateOrder(ctx context.Context, po *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

// UpdateLine saves changes to a purchase order line
func (r *GormPurchaseOrderRepository) UpdateLine(ctx context.Context, line *trade.PurchaseOrderLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// DeleteDraftsByOrigin removes draft orders and their lines carrying the
// given origin marker
func (r *GormPurchaseOrderRepository) DeleteDraftsByOrigin(ctx context.Context, origin string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uuid.UUID
		if err := tx.Model(&trade.PurchaseOrder{}).
			Where("origin = ? AND state = ?", origin, trade.PurchaseStateDraft).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("order_id IN ?", ids).Delete(&trade.PurchaseOrderLine{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&trade.PurchaseOrder{})
		removed = result.RowsAffected
		return result.Error
	})
	return removed, err
}

var (
	_ trade.SaleOrderRepository     = (*GormSaleOrderRepository)(nil)
	_ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
)
