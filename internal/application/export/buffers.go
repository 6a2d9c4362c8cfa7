package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// writeOrderpoints emits one buffer per reorder rule. A zero-valued
// quantity means the property is not set and is omitted entirely; absence
// and zero are different statements to the planner.
func (e *Exporter) writeOrderpoints(ctx context.Context, s *Session, pw *planWriter) error {
	orderpoints, err := e.repos.Orderpoints.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(orderpoints) == 0 {
		return nil
	}

	pw.raw("<!-- order points -->\n<buffers>\n")
	for _, op := range orderpoints {
		itemName, ok := s.productNames[op.ProductID]
		if !ok {
			continue
		}
		warehouseName, ok := s.warehouseNames[op.WarehouseID]
		if !ok {
			continue
		}
		factor := s.uom.Factor(op.UomID)

		pw.printf("<buffer name=%s><item name=%s/><location name=%s/>\n",
			quoteAttr(fmt.Sprintf("%s @ %s", itemName, warehouseName)),
			quoteAttr(itemName), quoteAttr(warehouseName))
		if op.MinQty.Sign() != 0 {
			pw.printf("<doubleproperty name=\"ss_min_qty\" value=\"%s\"/>\n",
				op.MinQty.Mul(factor).String())
		}
		if reorder := op.MaxQty.Sub(op.MinQty); reorder.Sign() != 0 {
			pw.printf("<doubleproperty name=\"roq_min_qty\" value=\"%s\"/>\n",
				reorder.Mul(factor).String())
		}
		if op.QtyMultiple.Sign() != 0 {
			pw.printf("<doubleproperty name=\"roq_multiple_qty\" value=\"%s\"/>\n",
				op.QtyMultiple.Mul(factor).String())
		}
		pw.raw("<booleanproperty name=\"ip_flag\" value=\"true\"/>\n")
		pw.raw("<stringproperty name=\"roq_type\" value=\"quantity\"/>\n")
		pw.raw("<stringproperty name=\"ss_type\" value=\"quantity\"/>\n")
		pw.raw("</buffer>\n")
	}
	pw.raw("</buffers>\n")
	return pw.Err()
}

// writeOnhand emits the aggregated positive on-hand inventory. The
// summation happens in SQL; here quantities for locations resolving to the
// same exported name fold together.
func (e *Exporter) writeOnhand(ctx context.Context, s *Session, pw *planWriter) error {
	rows, err := e.repos.Quants.SumOnHand(ctx)
	if err != nil {
		return err
	}

	type bufferKey struct {
		item     string
		location string
	}
	totals := map[bufferKey]decimal.Decimal{}
	var order []bufferKey
	for _, row := range rows {
		itemName, ok := s.productNames[row.ProductID]
		if !ok {
			continue
		}
		locationName, ok := s.locationNames[row.LocationID]
		if !ok {
			continue
		}
		key := bufferKey{item: itemName, location: locationName}
		if prev, ok := totals[key]; ok {
			totals[key] = prev.Add(row.Quantity)
		} else {
			totals[key] = row.Quantity
			order = append(order, key)
		}
	}

	pw.raw("<!-- inventory -->\n<buffers>\n")
	for _, key := range order {
		pw.printf("<buffer name=%s onhand=\"%s\"><item name=%s/><location name=%s/></buffer>\n",
			quoteAttr(fmt.Sprintf("%s @ %s", key.item, key.location)),
			totals[key].String(), quoteAttr(key.item), quoteAttr(key.location))
	}
	pw.raw("</buffers>\n")
	return pw.Err()
}
