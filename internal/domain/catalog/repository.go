package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UnitOfMeasureRepository provides access to units of measure
type UnitOfMeasureRepository interface {
	// FindAllIncludingInactive returns every unit, active or not. Inactive
	// units may still be referenced by historical records and must not fail
	// conversion.
	FindAllIncludingInactive(ctx context.Context) ([]UnitOfMeasure, error)
	FindByID(ctx context.Context, id uuid.UUID) (*UnitOfMeasure, error)
}

// CategoryRepository provides access to the product category tree
type CategoryRepository interface {
	// FindRoots returns categories without a parent, ordered by name then id.
	FindRoots(ctx context.Context) ([]Category, error)
	// FindChildren returns the direct subcategories, ordered by name then id.
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
}

// ProductRepository provides access to products
type ProductRepository interface {
	FindAllIncludingInactive(ctx context.Context) ([]Product, error)
	// FindByCategory returns the products directly under a category, ordered
	// by id.
	FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
}

// SupplierOfferRepository provides access to sourcing offers
type SupplierOfferRepository interface {
	// FindByProduct returns the offers for a product ordered by id.
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]SupplierOffer, error)
	// FindEffective returns the preferred offer (lowest sequence, earliest
	// declaration) from the given supplier that is effective on the date.
	FindEffective(ctx context.Context, productID, supplierID uuid.UUID, date time.Time) (*SupplierOffer, error)
}
