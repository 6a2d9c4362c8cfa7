package importer

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/google/uuid"
)

// plannerStatusToMove maps the planner's operation plan statuses onto the
// host system's move states.
var plannerStatusToMove = map[string]string{
	"proposed":  inventory.MoveStateDraft,
	"approved":  inventory.MoveStateWaiting,
	"confirmed": inventory.MoveStateAssigned,
	"completed": inventory.MoveStateDone,
	"closed":    inventory.MoveStateCancel,
}

// handleDistribution reconciles one DO record. Records sharing an origin
// and destination pair group under one shipment per run; every record
// becomes one move line of that shipment. Locations resolve strictly by
// identifier.
func (imp *Importer) handleDistribution(ctx context.Context, s *Session, rec OperationPlan) error {
	_, productID, err := rec.ItemIDs()
	if err != nil {
		return err
	}
	originID, err := parseID(rec.OriginID, "origin id")
	if err != nil {
		return err
	}
	destID, err := parseID(rec.DestinationID, "destination id")
	if err != nil {
		return err
	}
	qty, err := rec.Qty()
	if err != nil {
		return err
	}
	date, err := rec.StartTime()
	if err != nil {
		return err
	}

	product, err := imp.repos.Products.FindByID(ctx, productID)
	if err != nil {
		return resolveErr("product", productID, err)
	}
	if _, err := imp.repos.Locations.FindByID(ctx, originID); err != nil {
		return resolveErr("origin location", originID, err)
	}
	if _, err := imp.repos.Locations.FindByID(ctx, destID); err != nil {
		return resolveErr("destination location", destID, err)
	}

	key := routeKey{srcID: originID, destID: destID}
	shipment, ok := s.shipments[key]
	if !ok {
		shipment = &inventory.Shipment{
			ID:             uuid.New(),
			State:          inventory.MoveStateDraft,
			ScheduledDate:  date,
			LocationID:     originID,
			LocationDestID: destID,
			Origin:         OriginMarker,
		}
		if err := imp.repos.Moves.CreateShipment(ctx, shipment); err != nil {
			return fmt.Errorf("creating shipment: %w", err)
		}
		s.shipments[key] = shipment
	}

	state, ok := plannerStatusToMove[rec.Status]
	if !ok {
		state = inventory.MoveStateDraft
	}
	move := &inventory.StockMove{
		ID:               uuid.New(),
		Reference:        fmt.Sprintf("%s - %s - %s", OriginMarker, rec.Ref(), product.Name),
		ProductID:        productID,
		UomID:            product.UomID,
		Quantity:         qty,
		LocationID:       originID,
		LocationDestID:   destID,
		State:            state,
		Date:             date,
		ShipmentID:       &shipment.ID,
		PlannerReference: rec.Ref(),
	}
	if err := imp.repos.Moves.CreateMove(ctx, move); err != nil {
		return fmt.Errorf("creating stock move: %w", err)
	}
	return nil
}
