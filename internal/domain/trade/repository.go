package trade

import (
	"context"
)

// OpenSaleLine joins a sale order line with its order header for export.
type OpenSaleLine struct {
	Line  SaleOrderLine
	Order SaleOrder
}

// SaleOrderRepository provides access to customer orders
type SaleOrderRepository interface {
	// FindExportableLines returns every line with a product, a warehouse and
	// a partner, joined with its order, ordered by order then line id.
	FindExportableLines(ctx context.Context) ([]OpenSaleLine, error)
}

// OpenPurchaseLine joins a purchase order line with its order header.
type OpenPurchaseLine struct {
	Line  PurchaseOrderLine
	Order PurchaseOrder
}

// PurchaseOrderRepository provides access to supplier orders
type PurchaseOrderRepository interface {
	// FindOpenLines returns lines whose order is confirmed (not draft, sent
	// or cancelled), joined with the order header.
	FindOpenLines(ctx context.Context) ([]OpenPurchaseLine, error)
	CreateOrder(ctx context.Context, po *PurchaseOrder) error
	CreateLine(ctx context.Context, line *PurchaseOrderLine) error
	UpdateOrder(ctx context.Context, po *PurchaseOrder) error
	UpdateLine(ctx context.Context, line *PurchaseOrderLine) error
	// DeleteDraftsByOrigin removes draft orders (and their lines) created by
	// the given origin marker, returning how many orders were removed.
	DeleteDraftsByOrigin(ctx context.Context, origin string) (int64, error)
}
