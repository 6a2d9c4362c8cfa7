package importer

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/google/uuid"
)

// handleManufacturing reconciles one MO record. No aggregation happens
// here: the planner regenerates its references every run, so each record
// yields exactly one new production order. The destination location must
// belong to a warehouse, otherwise no manufacturing resource can fulfil
// the order and the record is rejected.
func (imp *Importer) handleManufacturing(ctx context.Context, s *Session, rec OperationPlan) error {
	uomID, productID, err := rec.ItemIDs()
	if err != nil {
		return err
	}
	locationID, err := parseID(rec.LocationID, "location id")
	if err != nil {
		return err
	}
	bomID, err := rec.OperationBOMID()
	if err != nil {
		return err
	}
	qty, err := rec.Qty()
	if err != nil {
		return err
	}
	start, err := rec.StartTime()
	if err != nil {
		return err
	}
	end, err := rec.EndTime()
	if err != nil {
		return err
	}

	if _, err := imp.repos.Products.FindByID(ctx, productID); err != nil {
		return resolveErr("product", productID, err)
	}
	if _, err := imp.repos.Units.FindByID(ctx, uomID); err != nil {
		return resolveErr("unit of measure", uomID, err)
	}
	location, err := imp.repos.Locations.FindByID(ctx, locationID)
	if err != nil {
		return resolveErr("location", locationID, err)
	}
	if location.WarehouseID == nil {
		return fmt.Errorf("location %s is not tied to a manufacturing warehouse", locationID)
	}
	bom, err := imp.repos.BOMs.FindByID(ctx, bomID)
	if err != nil {
		return resolveErr("bill of material", bomID, err)
	}

	mo := &manufacturing.ManufacturingOrder{
		ID:               uuid.New(),
		Name:             fmt.Sprintf("%s %s", OriginMarker, rec.Ref()),
		BOMID:            &bom.ID,
		ProductID:        productID,
		Quantity:         qty,
		UomID:            uomID,
		State:            manufacturing.MOStateDraft,
		DatePlannedStart: &start,
		DatePlannedEnd:   &end,
		LocationDestID:   locationID,
		PlannerReference: rec.Ref(),
		Origin:           OriginMarker,
	}
	if err := imp.repos.Productions.Create(ctx, mo); err != nil {
		return fmt.Errorf("creating manufacturing order: %w", err)
	}
	return nil
}
