package export

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/google/uuid"
)

// writeLocations emits one location tree per warehouse: the warehouse as
// root, then its five functional locations (input, output, pack, quality
// control, view) each recursed through its children. It also populates the
// session's location map used by every later stage that resolves a location
// id to a name.
func (e *Exporter) writeLocations(ctx context.Context, s *Session, pw *planWriter) error {
	warehouses, err := e.repos.Warehouses.FindAll(ctx)
	if err != nil {
		return err
	}

	pw.raw("<!-- warehouses -->\n<locations>\n")
	for _, wh := range warehouses {
		s.warehouseNames[wh.ID] = wh.Name
		pw.printf("<location name=%s subcategory=\"%s\" description=\"warehouse\">\n",
			quoteAttr(wh.Name), wh.ID)
		pw.printf("<available name=%s/>\n", quoteAttr(s.calendarName))
		pw.raw("<members>\n")

		visited := map[uuid.UUID]struct{}{}
		for _, rootID := range []uuid.UUID{
			wh.InputLocationID,
			wh.OutputLocationID,
			wh.PackLocationID,
			wh.QualityLocationID,
			wh.ViewLocationID,
		} {
			if err := e.writeLocationTree(ctx, s, pw, rootID, visited); err != nil {
				return err
			}
		}

		pw.raw("</members>\n</location>\n")
	}
	pw.raw("</locations>\n")
	return pw.Err()
}

// writeLocationTree recursively emits a location and its children. The
// visited set guards against cycles in the backing hierarchy; a revisit is
// a configuration error that terminates the run, never a silent loop.
func (e *Exporter) writeLocationTree(ctx context.Context, s *Session, pw *planWriter, id uuid.UUID, visited map[uuid.UUID]struct{}) error {
	if _, seen := visited[id]; seen {
		return fmt.Errorf("location %s: %w", id, shared.ErrHierarchyCycle)
	}
	visited[id] = struct{}{}

	loc, err := e.repos.Locations.FindByID(ctx, id)
	if err != nil {
		return err
	}
	s.locationNames[loc.ID] = loc.CompleteName

	pw.printf("<location name=%s subcategory=\"%s\" description=\"location\">\n",
		quoteAttr(loc.CompleteName), loc.ID)
	pw.printf("<available name=%s/>\n", quoteAttr(s.calendarName))

	children, err := e.repos.Locations.FindChildren(ctx, loc.ID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		pw.raw("<members>\n")
		for _, child := range children {
			if err := e.writeLocationTree(ctx, s, pw, child.ID, visited); err != nil {
				return err
			}
		}
		pw.raw("</members>\n")
	}
	pw.raw("</location>\n")
	return pw.Err()
}
