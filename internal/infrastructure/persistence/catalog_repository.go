package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitOfMeasureRepository implements catalog.UnitOfMeasureRepository using GORM
type GormUnitOfMeasureRepository struct {
	db *gorm.DB
}

// NewGormUnitOfMeasureRepository creates a new GormUnitOfMeasureRepository
func NewGormUnitOfMeasureRepository(db *gorm.DB) *GormUnitOfMeasureRepository {
	return &GormUnitOfMeasureRepository{db: db}
}

// FindAllIncludingInactive returns every unit, active or not
func (r *GormUnitOfMeasureRepository) FindAllIncludingInactive(ctx context.Context) ([]catalog.UnitOfMeasure, error) {
	var units []catalog.UnitOfMeasure
	if err := r.db.WithContext(ctx).Order("id").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindByID finds a unit by its ID
func (r *GormUnitOfMeasureRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.UnitOfMeasure, error) {
	var unit catalog.UnitOfMeasure
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindRoots returns categories without a parent
func (r *GormCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id IS NULL").
		Order("name, id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindChildren returns the direct subcategories of a category
func (r *GormCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name, id").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindAllIncludingInactive returns every product, active or not
func (r *GormProductRepository) FindAllIncludingInactive(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Order("id").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory returns the products directly under a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("id").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// GormSupplierOfferRepository implements catalog.SupplierOfferRepository using GORM
type GormSupplierOfferRepository struct {
	db *gorm.DB
}

// NewGormSupplierOfferRepository creates a new GormSupplierOfferRepository
func NewGormSupplierOfferRepository(db *gorm.DB) *GormSupplierOfferRepository {
	return &GormSupplierOfferRepository{db: db}
}

// FindByProduct returns the offers for a product in declaration order
func (r *GormSupplierOfferRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.SupplierOffer, error) {
	var offers []catalog.SupplierOffer
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindEffective returns the preferred offer from the supplier effective on
// the given date
func (r *GormSupplierOfferRepository) FindEffective(ctx context.Context, productID, supplierID uuid.UUID, date time.Time) (*catalog.SupplierOffer, error) {
	var offers []catalog.SupplierOffer
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND supplier_id = ?", productID, supplierID).
		Order("sequence, id").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	for i := range offers {
		if offers[i].EffectiveOn(date) {
			return &offers[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

var (
	_ catalog.UnitOfMeasureRepository = (*GormUnitOfMeasureRepository)(nil)
	_ catalog.CategoryRepository      = (*GormCategoryRepository)(nil)
	_ catalog.ProductRepository       = (*GormProductRepository)(nil)
	_ catalog.SupplierOfferRepository = (*GormSupplierOfferRepository)(nil)
)
