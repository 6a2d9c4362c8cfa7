package export

import (
	"context"

	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/google/uuid"
)

// moveStatusToPlanner maps the host system's move states onto the planner's
// operation plan statuses.
var moveStatusToPlanner = map[string]string{
	inventory.MoveStateDraft:     "proposed",
	inventory.MoveStateWaiting:   "approved",
	inventory.MoveStateConfirmed: "approved",
	inventory.MoveStatePartial:   "approved",
	inventory.MoveStateAssigned:  "confirmed",
	inventory.MoveStateDone:      "completed",
	inventory.MoveStateCancel:    "closed",
}

// writeMoveLines emits the internal stock moves as distribution operation
// plans. A move whose source and destination resolve to the same
// warehouse's primary stock location is skipped: two raw locations inside
// one warehouse are the same place as far as the planner is concerned.
func (e *Exporter) writeMoveLines(ctx context.Context, s *Session, pw *planWriter) error {
	moves, err := e.repos.Moves.FindInternalMoves(ctx)
	if err != nil {
		return err
	}

	stockLocationOf := map[uuid.UUID]uuid.UUID{}
	resolveStockLocation := func(locationID uuid.UUID) uuid.UUID {
		if resolved, ok := stockLocationOf[locationID]; ok {
			return resolved
		}
		resolved := locationID
		loc, err := e.repos.Locations.FindByID(ctx, locationID)
		if err == nil && loc.WarehouseID != nil {
			if wh, err := e.repos.Warehouses.FindByID(ctx, *loc.WarehouseID); err == nil {
				resolved = wh.StockLocationID
			}
		}
		stockLocationOf[locationID] = resolved
		return resolved
	}

	pw.raw("<!-- stock move lines -->\n<operationplans>\n")
	for _, move := range moves {
		if resolveStockLocation(move.LocationID) == resolveStockLocation(move.LocationDestID) {
			continue
		}
		productName, ok := s.productNames[move.ProductID]
		if !ok {
			continue
		}
		originName, ok := s.locationNames[move.LocationID]
		if !ok {
			continue
		}
		destName, ok := s.locationNames[move.LocationDestID]
		if !ok {
			continue
		}
		product := s.products[move.ProductID]
		refUom, _ := s.uom.ReferenceForUnit(product.UomID)
		status, ok := moveStatusToPlanner[move.State]
		if !ok {
			status = "closed"
		}

		pw.printf("<operationplan ordertype=\"DO\" reference=\"%s\" start=\"%s\" quantity=\"%s\" status=\"%s\">\n",
			move.ID, move.Date.Format(timeLayout), s.uom.Convert(move.Quantity, move.UomID).String(), status)
		pw.printf("<item name=%s subcategory=\"%s,%s\" description=\"product\"/>\n",
			quoteAttr(productName), refUom, move.ProductID)
		pw.printf("<location name=%s subcategory=\"%s\" description=\"destination location\"/>\n",
			quoteAttr(destName), move.LocationDestID)
		pw.printf("<origin name=%s subcategory=\"%s\" description=\"origin location\"/>\n",
			quoteAttr(originName), move.LocationID)
		pw.raw("</operationplan>\n")
	}
	pw.raw("</operationplans>\n")
	return pw.Err()
}

// writeStockRules emits the replenishment rules as item distributions.
// Rules arrive ordered by location pair with descending lead time, so the
// first rule of each pair carries the longest lead time and duplicates can
// simply be dropped.
func (e *Exporter) writeStockRules(ctx context.Context, s *Session, pw *planWriter) error {
	rules, err := e.repos.StockRules.FindAllOrdered(ctx)
	if err != nil {
		return err
	}

	pw.raw("<!-- stock rules -->\n<itemdistributions>\n")
	var lastSrc *uuid.UUID
	var lastDest uuid.UUID
	first := true
	for _, rule := range rules {
		if !first && sameRulePair(lastSrc, rule.LocationSrcID) && lastDest == rule.LocationID {
			continue
		}
		first = false
		lastSrc = rule.LocationSrcID
		lastDest = rule.LocationID

		pw.raw("<itemdistribution>\n")
		if rule.LocationSrcID != nil {
			if name, ok := s.locationNames[*rule.LocationSrcID]; ok {
				pw.printf("<origin name=%s subcategory=\"%s\" description=\"location\"/>\n",
					quoteAttr(name), *rule.LocationSrcID)
			}
		}
		if name, ok := s.locationNames[rule.LocationID]; ok {
			pw.printf("<destination name=%s subcategory=\"%s\" description=\"location\"/>\n",
				quoteAttr(name), rule.LocationID)
		}
		if rule.DelayDays > 0 {
			pw.printf("<leadtime>%s</leadtime>\n", isoDays(rule.DelayDays))
		}
		pw.raw("</itemdistribution>\n")
	}
	pw.raw("</itemdistributions>\n")
	return pw.Err()
}

func sameRulePair(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
