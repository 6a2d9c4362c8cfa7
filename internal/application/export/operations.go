package export

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// routingUse is one workcenter pass of a routing, after collapsing repeated
// use of the same workcenter when work-order tracking is disabled.
type routingUse struct {
	workcenter string
	cycleTime  decimal.Decimal
	sequence   int
	stepName   string
}

// writeOperations flattens every manufacturing recipe into either a single
// fixed-duration operation or a routing operation with ordered
// suboperations. It records the emitted operation names and the produced
// quantity per operation instance for the manufacturing-order stage.
func (e *Exporter) writeOperations(ctx context.Context, s *Session, pw *planWriter) error {
	pw.raw("<!-- bills of material -->\n<operations>\n")

	routingUses, err := e.collectRoutingUses(ctx, s)
	if err != nil {
		return err
	}

	boms, err := e.repos.BOMs.FindAll(ctx)
	if err != nil {
		return err
	}
	for _, bom := range boms {
		if err := e.writeRecipe(ctx, s, pw, bom, routingUses); err != nil {
			return err
		}
	}

	pw.raw("</operations>\n")
	return pw.Err()
}

// collectRoutingUses loads all routing steps grouped by routing. When
// work-order tracking is disabled, repeated use of the same workcenter
// within one routing sums the cycle times into a single use.
func (e *Exporter) collectRoutingUses(ctx context.Context, s *Session) (map[uuid.UUID][]routingUse, error) {
	steps, err := e.repos.Routings.FindAllSteps(ctx)
	if err != nil {
		return nil, err
	}
	uses := make(map[uuid.UUID][]routingUse)
	for _, step := range steps {
		name := s.workcenterNames[step.WorkcenterID]
		if name == "" {
			name = step.WorkcenterID.String()
		}
		existing := uses[step.RoutingID]
		if !e.cfg.ManageWorkOrders {
			merged := false
			for i := range existing {
				if existing[i].workcenter == name {
					existing[i].cycleTime = existing[i].cycleTime.Add(step.CycleTime)
					merged = true
					break
				}
			}
			if merged {
				continue
			}
		}
		uses[step.RoutingID] = append(existing, routingUse{
			workcenter: name,
			cycleTime:  step.CycleTime,
			sequence:   step.Sequence,
			stepName:   step.Name,
		})
	}
	return uses, nil
}

func (e *Exporter) writeRecipe(ctx context.Context, s *Session, pw *planWriter, bom manufacturing.BOM, routingUses map[uuid.UUID][]routingUse) error {
	productName, ok := s.productNames[bom.ProductID]
	if !ok {
		s.log.Warn("skipping recipe with unresolvable product",
			zap.String("bom_id", bom.ID.String()),
			zap.String("product_id", bom.ProductID.String()))
		return nil
	}
	product := s.products[bom.ProductID]

	// The interchange format requires a location; recipes without a routing
	// (or with a routing that names none) fall back to the configured
	// manufacturing location.
	location := s.mfgLocation
	var steps []routingUse
	if bom.RoutingID != nil {
		steps = routingUses[*bom.RoutingID]
		routing, err := e.repos.Routings.FindByID(ctx, *bom.RoutingID)
		if err == nil && routing.LocationID != nil {
			if name, ok := s.locationNames[*routing.LocationID]; ok {
				location = name
			}
		}
	}

	operation := fmt.Sprintf("%s %s @ %s", bom.ID, productName, location)
	s.operations[operation] = struct{}{}

	uomFactor := s.uom.Factor(bom.UomID)
	produced := bom.Quantity.Mul(uomFactor)
	s.opYield[yieldKey{operation: operation, product: productName}] = produced

	routed := e.cfg.ManageWorkOrders && bom.RoutingID != nil && len(steps) > 0
	if !routed {
		return e.writeSimpleOperation(ctx, s, pw, bom, operation, productName, location, product.ProduceDelay, produced, steps)
	}
	return e.writeRoutedOperation(ctx, s, pw, bom, operation, productName, location, produced, steps)
}

func (e *Exporter) writeSimpleOperation(ctx context.Context, s *Session, pw *planWriter, bom manufacturing.BOM, operation, productName, location string, produceDelay, produced decimal.Decimal, steps []routingUse) error {
	pw.printf("<operation name=%s size_multiple=\"1\" duration=\"%s\" posttime=\"%s\" xsi:type=\"operation_fixed_time\">\n",
		quoteAttr(operation), isoFloatTime(produceDelay), isoDays(e.cfg.ManufacturingLeadDays))
	pw.printf("<item name=%s/><location name=%s/>\n", quoteAttr(productName), quoteAttr(location))

	pw.printf("<flows>\n<flow xsi:type=\"flow_end\" quantity=\"%s\"><item name=%s/></flow>\n",
		produced.String(), quoteAttr(productName))
	if err := e.writeConsumingFlows(ctx, s, pw, bom.ID); err != nil {
		return err
	}
	if err := e.writeByproductFlows(ctx, s, pw, bom.ID); err != nil {
		return err
	}
	pw.raw("</flows>\n")

	if len(steps) > 0 {
		pw.raw("<loads>\n")
		for _, step := range steps {
			pw.printf("<load quantity=\"%s\"><resource name=%s/></load>\n",
				step.cycleTime.String(), quoteAttr(step.workcenter))
		}
		pw.raw("</loads>\n")
	}
	pw.raw("</operation>\n")
	return pw.Err()
}

// writeRoutedOperation emits one routing operation with a suboperation per
// step. Suboperation priority is the step's position times ten; consumers
// trust that priority, not declaration order, because the source sequence
// numbers cannot be trusted. Consuming flows sit on the first suboperation
// only, producing and byproduct flows on the last only.
func (e *Exporter) writeRoutedOperation(ctx context.Context, s *Session, pw *planWriter, bom manufacturing.BOM, operation, productName, location string, produced decimal.Decimal, steps []routingUse) error {
	pw.printf("<operation name=%s size_multiple=\"1\" posttime=\"%s\" xsi:type=\"operation_routing\">",
		quoteAttr(operation), isoDays(e.cfg.ManufacturingLeadDays))
	pw.printf("<item name=%s/><location name=%s/>\n", quoteAttr(productName), quoteAttr(location))

	pw.raw("<suboperations>")
	for pos, step := range steps {
		priority := (pos + 1) * 10
		subName := fmt.Sprintf("%s - %s - %d", operation, step.stepName, (pos+1)*100)
		pw.printf("<suboperation><operation name=%s priority=\"%d\" duration=\"%s\" xsi:type=\"operation_fixed_time\">\n",
			quoteAttr(subName), priority, isoFloatTime(step.cycleTime))
		pw.printf("<location name=%s/>\n", quoteAttr(location))
		pw.printf("<loads><load quantity=\"1\"><resource name=%s/></load></loads>\n",
			quoteAttr(step.workcenter))
		if pos == len(steps)-1 {
			pw.printf("<flows>\n<flow xsi:type=\"flow_end\" quantity=\"%s\"><item name=%s/></flow>\n",
				produced.String(), quoteAttr(productName))
			if err := e.writeByproductFlows(ctx, s, pw, bom.ID); err != nil {
				return err
			}
			pw.raw("</flows>\n")
		}
		if pos == 0 {
			pw.raw("<flows>\n")
			if err := e.writeConsumingFlows(ctx, s, pw, bom.ID); err != nil {
				return err
			}
			pw.raw("</flows>\n")
		}
		pw.raw("</operation></suboperation>\n")
	}
	pw.raw("</suboperations>\n</operation>\n")
	return pw.Err()
}

// writeConsumingFlows emits one negative flow per distinct component. The
// same component consumed on several lines sums into a single flow; all
// lines of one component are assumed to share effectivity.
func (e *Exporter) writeConsumingFlows(ctx context.Context, s *Session, pw *planWriter, bomID uuid.UUID) error {
	lines, err := e.repos.BOMs.FindLines(ctx, bomID)
	if err != nil {
		return err
	}
	consumed := map[uuid.UUID]decimal.Decimal{}
	var order []uuid.UUID
	for _, line := range lines {
		if _, ok := s.productNames[line.ProductID]; !ok {
			continue
		}
		qty := s.uom.Convert(line.Quantity, line.UomID)
		if prev, ok := consumed[line.ProductID]; ok {
			consumed[line.ProductID] = prev.Add(qty)
		} else {
			consumed[line.ProductID] = qty
			order = append(order, line.ProductID)
		}
	}
	for _, productID := range order {
		pw.printf("<flow xsi:type=\"flow_start\" quantity=\"-%s\"><item name=%s/></flow>\n",
			consumed[productID].String(), quoteAttr(s.productNames[productID]))
	}
	return pw.Err()
}

// writeByproductFlows emits the secondary outputs: fixed quantities use
// flow_fixed_end, proportional ones flow_end.
func (e *Exporter) writeByproductFlows(ctx context.Context, s *Session, pw *planWriter, bomID uuid.UUID) error {
	byproducts, err := e.repos.BOMs.FindByproducts(ctx, bomID)
	if err != nil {
		return err
	}
	for _, bp := range byproducts {
		name, ok := s.productNames[bp.ProductID]
		if !ok {
			continue
		}
		flowType := "flow_end"
		if bp.Fixed {
			flowType = "flow_fixed_end"
		}
		pw.printf("<flow xsi:type=\"%s\" quantity=\"%s\"><item name=%s/></flow>\n",
			flowType, s.uom.Convert(bp.Quantity, bp.UomID).String(), quoteAttr(name))
	}
	return pw.Err()
}
