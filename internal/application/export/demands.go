package export

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// demandStatus derives the planner status of a sale order line from the
// order state and the delivered quantity, and returns the quantity still to
// plan. A confirmed line fully delivered is closed; a partially delivered
// one stays open for the remainder.
func demandStatus(line trade.SaleOrderLine, order trade.SaleOrder) (string, decimal.Decimal) {
	qty := line.Quantity
	switch order.State {
	case trade.SaleStateDraft:
		return "quote", qty
	case trade.SaleStateSale:
		remaining := line.Quantity.Sub(line.QtyDelivered)
		if remaining.Sign() <= 0 {
			return "closed", qty
		}
		return "open", remaining
	case trade.SaleStateDone, trade.SaleStateSent:
		return "closed", qty
	default:
		return "canceled", qty
	}
}

// writeDemands emits one demand per sale order line. The picking policy
// decides the minimum shipment: all-at-once orders require the full
// quantity in one delivery.
func (e *Exporter) writeDemands(ctx context.Context, s *Session, pw *planWriter) error {
	lines, err := e.repos.Sales.FindExportableLines(ctx)
	if err != nil {
		return err
	}

	pw.raw("<!-- sales order lines -->\n<demands>\n")
	for _, sl := range lines {
		productName, ok := s.productNames[sl.Line.ProductID]
		if !ok {
			s.log.Warn("skipping demand with unresolvable product",
				zap.String("line_id", sl.Line.ID.String()),
				zap.String("product_id", sl.Line.ProductID.String()))
			continue
		}
		location, ok := s.warehouseNames[sl.Order.WarehouseID]
		if !ok {
			s.log.Warn("skipping demand with unresolvable warehouse",
				zap.String("line_id", sl.Line.ID.String()),
				zap.String("warehouse_id", sl.Order.WarehouseID.String()))
			continue
		}
		customer, err := e.repos.Partners.FindByID(ctx, sl.Order.PartnerID)
		if err != nil {
			s.log.Warn("skipping demand with unresolvable customer",
				zap.String("line_id", sl.Line.ID.String()),
				zap.String("partner_id", sl.Order.PartnerID.String()))
			continue
		}

		status, rawQty := demandStatus(sl.Line, sl.Order)
		// A full run carries the live pipeline, an incremental run only
		// the demands that have closed since the last full transfer.
		if s.mode == ModeIncremental && status != "closed" {
			continue
		}
		if s.mode == ModeFull && status == "closed" {
			continue
		}
		qty := s.uom.Convert(rawQty, sl.Line.UomID)

		due := sl.Order.DateOrder
		if sl.Order.CommitmentDate != nil {
			due = *sl.Order.CommitmentDate
		}

		minShipment := "1"
		if sl.Order.PickingPolicy == trade.PickingPolicyOne {
			minShipment = qty.String()
		}

		name := fmt.Sprintf("%s %s", sl.Order.Name, sl.Line.ID)
		pw.printf("<demand name=%s quantity=\"%s\" due=\"%s\" priority=\"1\" minshipment=\"%s\" description=\"status=%s\">\n",
			quoteAttr(name), qty.String(), due.Format(timeLayout), minShipment, status)
		pw.printf("<item name=%s/>\n", quoteAttr(productName))
		pw.printf("<customer name=%s/>\n", quoteAttr(partnerExportName(*customer)))
		pw.printf("<location name=%s/>\n", quoteAttr(location))
		writeProperties(pw, commonFieldsOf(&sl.Line))
		pw.raw("</demand>\n")
	}
	pw.raw("</demands>\n")
	return pw.Err()
}
