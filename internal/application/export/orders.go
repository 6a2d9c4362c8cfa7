package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// writePurchaseOrders emits the open purchase order lines as confirmed
// procurement operation plans. Only the outstanding part of each line is
// sent; fully received lines are of no interest to the planner.
func (e *Exporter) writePurchaseOrders(ctx context.Context, s *Session, pw *planWriter) error {
	lines, err := e.repos.Purchases.FindOpenLines(ctx)
	if err != nil {
		return err
	}

	pw.raw("<!-- open purchase orders -->\n<operationplans>\n")
	for _, pl := range lines {
		outstanding := pl.Line.Quantity.Sub(pl.Line.QtyReceived)
		if outstanding.Sign() <= 0 {
			continue
		}
		productName, ok := s.productNames[pl.Line.ProductID]
		if !ok {
			continue
		}
		supplier, err := e.repos.Partners.FindByID(ctx, pl.Order.PartnerID)
		if err != nil {
			s.log.Warn("skipping purchase line with unresolvable supplier",
				zap.String("line_id", pl.Line.ID.String()),
				zap.String("partner_id", pl.Order.PartnerID.String()))
			continue
		}
		qty := s.uom.Convert(outstanding, pl.Line.UomID)
		pw.printf("<operationplan reference=%s ordertype=\"PO\" start=\"%s\" end=\"%s\" quantity=\"%s\" status=\"confirmed\">",
			quoteAttr(pl.Order.Name),
			pl.Order.DateOrder.Format(timeLayout),
			pl.Line.DatePlanned.Format(timeLayout),
			qty.String())
		pw.printf("<item name=%s/><location name=%s/><supplier name=%s/>",
			quoteAttr(productName), quoteAttr(s.mfgLocation), quoteAttr(partnerExportName(*supplier)))
		pw.raw("</operationplan>\n")
	}
	pw.raw("</operationplans>\n")
	return pw.Err()
}

// writeManufacturingOrders emits work in progress. An order referencing a
// recipe absent from the operation set of this export is skipped, an
// expected gap with partial exports rather than an anomaly. The remaining
// quantity nets the already reported completions against the per-instance
// yield recorded by the recipe stage.
func (e *Exporter) writeManufacturingOrders(ctx context.Context, s *Session, pw *planWriter) error {
	orders, err := e.repos.Productions.FindOpen(ctx)
	if err != nil {
		return err
	}

	pw.raw("<!-- manufacturing orders in progress -->\n<operationplans>\n")
	for _, mo := range orders {
		if mo.BOMID == nil {
			continue
		}
		start := mo.DateStart
		if start == nil {
			start = mo.DatePlannedStart
		}
		if start == nil {
			continue
		}
		location, ok := s.locationNames[mo.LocationDestID]
		if !ok {
			continue
		}
		productName, ok := s.productNames[mo.ProductID]
		if !ok {
			continue
		}
		operation := fmt.Sprintf("%s %s @ %s", *mo.BOMID, productName, location)
		if _, ok := s.operations[operation]; !ok {
			continue
		}

		perInstance := s.opYield[yieldKey{operation: operation, product: productName}]
		if perInstance.Sign() <= 0 {
			continue
		}
		ordered := s.uom.Convert(mo.Quantity, mo.UomID)
		completed := s.uom.Convert(mo.QuantityProduced, mo.UomID)
		remaining := ordered.Div(perInstance).Sub(completed)
		if remaining.Sign() <= 0 {
			continue
		}

		pw.printf("<operationplan reference=%s start=\"%s\" end=\"%s\" quantity=\"%s\"><operation name=%s/></operationplan>\n",
			quoteAttr(mo.Name),
			start.Format(timeLayout),
			start.Format(timeLayout),
			remaining.String(),
			quoteAttr(operation))
	}
	pw.raw("</operationplans>\n")
	return pw.Err()
}
