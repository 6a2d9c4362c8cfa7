package importer

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/erp/planner-connector/internal/domain/partner"
	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/erp/planner-connector/internal/domain/trade"
	"go.uber.org/zap"
)

// Run modes, mirroring the export side.
const (
	// ModeFull erases all previous draft proposals before importing.
	ModeFull = 1
	// ModeIncremental imports on top of whatever exists.
	ModeIncremental = 2
)

// Repositories bundles every data source the import pipeline touches.
type Repositories struct {
	Units       catalog.UnitOfMeasureRepository
	Products    catalog.ProductRepository
	Offers      catalog.SupplierOfferRepository
	Partners    partner.Repository
	Warehouses  resource.WarehouseRepository
	Locations   resource.LocationRepository
	BOMs        manufacturing.BOMRepository
	Productions manufacturing.ManufacturingOrderRepository
	Purchases   trade.PurchaseOrderRepository
	Moves       inventory.MoveRepository
}

// Importer reconciles a planner result document against the host system's
// transactional records. One malformed record never aborts a run; only
// stream failures do.
type Importer struct {
	repos Repositories
	log   *zap.Logger
}

// NewImporter creates a new Importer
func NewImporter(repos Repositories, log *zap.Logger) *Importer {
	return &Importer{repos: repos, log: log.Named("import")}
}

// Run performs one forward pass over the document, dispatching each
// complete operationplan element by its order type. In full mode the
// previous draft proposals of all three kinds are purged first.
func (imp *Importer) Run(ctx context.Context, r io.Reader, mode int) (*Summary, error) {
	s := newSession()

	if mode == ModeFull {
		if err := imp.purge(ctx, s); err != nil {
			return nil, err
		}
	}

	d := xml.NewDecoder(r)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading plan document: %w", err)
		}
		el, ok := tok.(xml.StartElement)
		if !ok || el.Name.Local != "operationplan" {
			continue
		}
		rec := recordFromElement(el)
		// Discard the subtree right away to keep memory bounded.
		if err := d.Skip(); err != nil {
			return nil, fmt.Errorf("reading plan document: %w", err)
		}
		imp.dispatch(ctx, s, rec)
	}

	return s.summary(), nil
}

// dispatch routes one record to its handler. Handler errors are recorded in
// the run's message log and processing continues with the next record.
func (imp *Importer) dispatch(ctx context.Context, s *Session, rec OperationPlan) {
	var err error
	switch rec.OrderType {
	case OrderTypePurchase:
		if err = imp.handlePurchase(ctx, s, rec); err == nil {
			s.countPO++
		}
	case OrderTypeDistribution:
		if err = imp.handleDistribution(ctx, s, rec); err == nil {
			s.countDO++
		}
	case OrderTypeManufacturing:
		if err = imp.handleManufacturing(ctx, s, rec); err == nil {
			s.countMO++
		}
	default:
		return
	}
	if err != nil {
		imp.log.Error("skipping operationplan",
			zap.String("ordertype", rec.OrderType),
			zap.String("reference", rec.Ref()),
			zap.Error(err))
		s.addMessage("operationplan %s (%s): %v", rec.Ref(), rec.OrderType, err)
	}
}

// purge removes the draft proposals left behind by previous imports and
// resets the correlation maps, so a full refresh starts from a clean slate.
func (imp *Importer) purge(ctx context.Context, s *Session) error {
	removed, err := imp.repos.Purchases.DeleteDraftsByOrigin(ctx, OriginMarker)
	if err != nil {
		return fmt.Errorf("purging draft purchase orders: %w", err)
	}
	s.addMessage("Removed %d old draft purchase orders", removed)

	removed, err = imp.repos.Productions.DeleteDraftsByOrigin(ctx, OriginMarker)
	if err != nil {
		return fmt.Errorf("purging draft manufacturing orders: %w", err)
	}
	s.addMessage("Removed %d old draft manufacturing orders", removed)

	removed, err = imp.repos.Moves.DeleteDraftsByOrigin(ctx, OriginMarker)
	if err != nil {
		return fmt.Errorf("purging draft shipments: %w", err)
	}
	s.addMessage("Removed %d old draft shipments", removed)

	s.orders = make(map[poKey]*trade.PurchaseOrder)
	s.lines = make(map[poLineKey]*trade.PurchaseOrderLine)
	s.shipments = make(map[routeKey]*inventory.Shipment)
	return nil
}
