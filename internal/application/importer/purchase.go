package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/erp/planner-connector/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// handlePurchase reconciles one PO record. Records sharing a supplier and
// destination location fold into one purchase order per run; records also
// sharing the product merge into one line with summed quantity and the
// earliest planned date. The unit price is always re-derived from the
// supplier offer effective on the line's planned date.
func (imp *Importer) handlePurchase(ctx context.Context, s *Session, rec OperationPlan) error {
	uomID, productID, err := rec.ItemIDs()
	if err != nil {
		return err
	}
	supplierID, err := rec.SupplierID()
	if err != nil {
		return err
	}
	locationID, err := parseID(rec.LocationID, "location id")
	if err != nil {
		return err
	}
	qty, err := rec.Qty()
	if err != nil {
		return err
	}
	datePlanned, err := rec.EndTime()
	if err != nil {
		return err
	}

	if _, err := imp.repos.Partners.FindByID(ctx, supplierID); err != nil {
		return resolveErr("supplier", supplierID, err)
	}
	product, err := imp.repos.Products.FindByID(ctx, productID)
	if err != nil {
		return resolveErr("product", productID, err)
	}
	if _, err := imp.repos.Units.FindByID(ctx, uomID); err != nil {
		return resolveErr("unit of measure", uomID, err)
	}
	// The destination must be the primary stock location of a warehouse;
	// purchased goods arrive through the warehouse's inbound route.
	if _, err := imp.repos.Warehouses.FindByStockLocation(ctx, locationID); err != nil {
		return resolveErr("warehouse stock location", locationID, err)
	}

	key := poKey{supplierID: supplierID, locationID: locationID}
	order, ok := s.orders[key]
	if !ok {
		order = &trade.PurchaseOrder{
			ID:          uuid.New(),
			Name:        fmt.Sprintf("%s %s", OriginMarker, rec.Ref()),
			PartnerID:   supplierID,
			LocationID:  locationID,
			State:       trade.PurchaseStateDraft,
			DateOrder:   datePlanned,
			DatePlanned: datePlanned,
			Origin:      OriginMarker,
		}
		if err := imp.repos.Purchases.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("creating purchase order: %w", err)
		}
		s.orders[key] = order
	}

	lineKey := poLineKey{productID: productID, order: key}
	line, ok := s.lines[lineKey]
	if !ok {
		line = &trade.PurchaseOrderLine{
			ID:               uuid.New(),
			OrderID:          order.ID,
			ProductID:        productID,
			Quantity:         qty,
			UomID:            product.UomID,
			DatePlanned:      datePlanned,
			PlannerReference: rec.Ref(),
		}
		line.PriceUnit = imp.priceFor(ctx, productID, supplierID, line)
		if err := imp.repos.Purchases.CreateLine(ctx, line); err != nil {
			return fmt.Errorf("creating purchase order line: %w", err)
		}
		s.lines[lineKey] = line
	} else {
		line.Merge(qty, datePlanned, rec.Ref())
		line.PriceUnit = imp.priceFor(ctx, productID, supplierID, line)
		if err := imp.repos.Purchases.UpdateLine(ctx, line); err != nil {
			return fmt.Errorf("updating purchase order line: %w", err)
		}
	}

	order.PullDateForward(line.DatePlanned)
	if err := imp.repos.Purchases.UpdateOrder(ctx, order); err != nil {
		return fmt.Errorf("updating purchase order: %w", err)
	}
	return nil
}

// priceFor looks up the preferred supplier offer effective on the line's
// planned date. No effective offer means price zero, not an error.
func (imp *Importer) priceFor(ctx context.Context, productID, supplierID uuid.UUID, line *trade.PurchaseOrderLine) decimal.Decimal {
	offer, err := imp.repos.Offers.FindEffective(ctx, productID, supplierID, line.DatePlanned)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			imp.log.Warn("supplier offer lookup failed, price left at zero")
		}
		return decimal.Zero
	}
	return offer.Price
}

func resolveErr(what string, id uuid.UUID, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("no %s was found with id %s", what, id)
	}
	return fmt.Errorf("resolving %s %s: %w", what, id, err)
}
