package inventory

import "context"

// QuantRepository provides access to on-hand inventory
type QuantRepository interface {
	// SumOnHand aggregates strictly positive on-hand quantities per
	// (product, location) pair directly in SQL.
	SumOnHand(ctx context.Context) ([]OnHand, error)
}

// MoveRepository provides access to stock moves and their grouping shipments
type MoveRepository interface {
	// FindInternalMoves returns moves between two different locations,
	// ordered by id.
	FindInternalMoves(ctx context.Context) ([]StockMove, error)
	CreateMove(ctx context.Context, move *StockMove) error
	CreateShipment(ctx context.Context, shipment *Shipment) error
	// DeleteDraftsByOrigin removes draft shipments (and their moves) created
	// by the given origin marker, returning how many shipments were removed.
	DeleteDraftsByOrigin(ctx context.Context, origin string) (int64, error)
}

// OrderpointRepository provides access to reorder rules
type OrderpointRepository interface {
	FindAll(ctx context.Context) ([]Orderpoint, error)
}

// StockRuleRepository provides access to replenishment rules
type StockRuleRepository interface {
	// FindAllOrdered returns rules ordered by source location, destination
	// location, then delay descending, so that duplicate location pairs can
	// be collapsed keeping the longest lead time.
	FindAllOrdered(ctx context.Context) ([]StockRule, error)
}
