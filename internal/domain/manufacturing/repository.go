package manufacturing

import (
	"context"

	"github.com/google/uuid"
)

// BOMRepository provides access to recipes
type BOMRepository interface {
	FindAll(ctx context.Context) ([]BOM, error)
	FindByID(ctx context.Context, id uuid.UUID) (*BOM, error)
	FindLines(ctx context.Context, bomID uuid.UUID) ([]BOMLine, error)
	FindByproducts(ctx context.Context, bomID uuid.UUID) ([]Byproduct, error)
}

// RoutingRepository provides access to routings and their steps
type RoutingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Routing, error)
	// FindAllSteps returns every routing step ordered by routing then
	// declared sequence.
	FindAllSteps(ctx context.Context) ([]RoutingStep, error)
}

// ManufacturingOrderRepository provides access to production orders
type ManufacturingOrderRepository interface {
	// FindOpen returns orders in an open/in-progress state.
	FindOpen(ctx context.Context) ([]ManufacturingOrder, error)
	Create(ctx context.Context, mo *ManufacturingOrder) error
	// DeleteDraftsByOrigin removes draft and cancelled orders created by the
	// given origin marker, returning how many were removed.
	DeleteDraftsByOrigin(ctx context.Context, origin string) (int64, error)
}
