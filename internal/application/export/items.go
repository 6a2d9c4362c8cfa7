package export

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/google/uuid"
)

// writeItems emits the item tree: top-level categories ordered by name, each
// with its direct products first and its subcategories after. The ordering
// is a contract of the interchange format, not a cosmetic choice.
func (e *Exporter) writeItems(ctx context.Context, s *Session, pw *planWriter) error {
	if err := s.loadProducts(ctx, e.repos.Products); err != nil {
		return err
	}

	roots, err := e.repos.Categories.FindRoots(ctx)
	if err != nil {
		return err
	}

	supplierNames := map[uuid.UUID]string{}
	pw.raw("<!-- products -->\n<items>\n")
	visited := map[uuid.UUID]struct{}{}
	for _, root := range roots {
		if err := e.writeCategory(ctx, s, pw, root, visited, supplierNames); err != nil {
			return err
		}
	}
	pw.raw("</items>\n")
	return pw.Err()
}

func (e *Exporter) writeCategory(ctx context.Context, s *Session, pw *planWriter, cat catalog.Category, visited map[uuid.UUID]struct{}, supplierNames map[uuid.UUID]string) error {
	if _, seen := visited[cat.ID]; seen {
		return fmt.Errorf("category %s: %w", cat.ID, shared.ErrHierarchyCycle)
	}
	visited[cat.ID] = struct{}{}

	pw.printf("<item name=%s category=\"%s\" description=\"category\">\n",
		quoteAttr(cat.Name), cat.ID)

	products, err := e.repos.Products.FindByCategory(ctx, cat.ID)
	if err != nil {
		return err
	}
	subcategories, err := e.repos.Categories.FindChildren(ctx, cat.ID)
	if err != nil {
		return err
	}

	if len(products) > 0 || len(subcategories) > 0 {
		pw.raw("<members>\n")
		for _, p := range products {
			if err := e.writeProduct(ctx, s, pw, p, supplierNames); err != nil {
				return err
			}
		}
		for _, sub := range subcategories {
			if err := e.writeCategory(ctx, s, pw, sub, visited, supplierNames); err != nil {
				return err
			}
		}
		pw.raw("</members>\n")
	}

	pw.raw("</item>\n")
	return pw.Err()
}

// writeProduct emits one product item. The subcategory attribute carries the
// reference unit id and the product id, comma separated, so the import side
// can recover both without name lookups.
func (e *Exporter) writeProduct(ctx context.Context, s *Session, pw *planWriter, p catalog.Product, supplierNames map[uuid.UUID]string) error {
	refUom, _ := s.uom.ReferenceForUnit(p.UomID)
	name := productDisplayName(p)
	pw.printf("<item name=%s cost=\"%s\" subcategory=\"%s,%s\" description=\"product\">\n",
		quoteAttr(name), p.ListPrice.StringFixed(6), refUom, p.ID)

	if p.PurchaseOK {
		offers, err := e.repos.Offers.FindByProduct(ctx, p.ID)
		if err != nil {
			return err
		}
		for i, offer := range offers {
			if i == 0 {
				pw.raw("<itemsuppliers>\n")
			}
			supplierName, ok := supplierNames[offer.SupplierID]
			if !ok {
				sup, err := e.repos.Partners.FindByID(ctx, offer.SupplierID)
				if err != nil {
					return err
				}
				supplierName = partnerExportName(*sup)
				supplierNames[offer.SupplierID] = supplierName
			}
			pw.printf("<itemsupplier leadtime=\"%s\" priority=\"%d\" size_minimum=\"%s\" cost=\"%s\"",
				isoDays(offer.LeadTime), offer.Sequence, offer.MinQty.StringFixed(6), offer.Price.StringFixed(6))
			if offer.DateStart != nil {
				pw.printf(" effective_start=\"%s\"", offer.DateStart.Format(timeLayout))
			}
			if offer.DateEnd != nil {
				pw.printf(" effective_end=\"%s\"", offer.DateEnd.Format(timeLayout))
			}
			pw.raw(">\n")
			if offer.LocationID != nil {
				if locName, ok := s.locationNames[*offer.LocationID]; ok {
					pw.printf("<location name=%s/>\n", quoteAttr(locName))
				}
			}
			pw.printf("<supplier name=%s/>\n</itemsupplier>\n", quoteAttr(supplierName))
			if i == len(offers)-1 {
				pw.raw("</itemsuppliers>\n")
			}
		}
	}

	writeProperties(pw, commonFieldsOf(&p))
	pw.raw("</item>\n")
	return pw.Err()
}
