package export

import (
	"context"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/erp/planner-connector/internal/domain/partner"
	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/erp/planner-connector/internal/domain/trade"
	"github.com/erp/planner-connector/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Repositories bundles every data source the export pipeline reads from.
type Repositories struct {
	Units       catalog.UnitOfMeasureRepository
	Categories  catalog.CategoryRepository
	Products    catalog.ProductRepository
	Offers      catalog.SupplierOfferRepository
	Partners    partner.Repository
	Warehouses  resource.WarehouseRepository
	Locations   resource.LocationRepository
	Calendars   resource.CalendarRepository
	Workcenters resource.WorkcenterRepository
	BOMs        manufacturing.BOMRepository
	Routings    manufacturing.RoutingRepository
	Productions manufacturing.ManufacturingOrderRepository
	Sales       trade.SaleOrderRepository
	Purchases   trade.PurchaseOrderRepository
	Quants      inventory.QuantRepository
	Moves       inventory.MoveRepository
	Orderpoints inventory.OrderpointRepository
	StockRules  inventory.StockRuleRepository
}

type yieldKey struct {
	operation string
	product   string
}

// Session carries the state accumulated across export stages of one run.
// Earlier stages populate the lookup tables, later stages read them; the
// stage graph guarantees the ordering. Nothing here outlives the run.
type Session struct {
	mode     int
	settings config.ConnectorConfig
	log      *zap.Logger

	uom *UOMTable

	// calendarName and mfgLocation come from the company settings, with the
	// company name as fallback for the manufacturing location.
	calendarName string
	mfgLocation  string

	// locationNames maps a location id to its fully-qualified exported name.
	// Populated by the locations stage.
	locationNames map[uuid.UUID]string
	// warehouseNames maps a warehouse id to its exported name.
	warehouseNames map[uuid.UUID]string

	// products maps a product id to its record; productNames holds the
	// exported display name ("[code] name" when a code exists).
	products     map[uuid.UUID]catalog.Product
	productNames map[uuid.UUID]string

	workcenterNames map[uuid.UUID]string

	// operations is the set of operation names emitted by the recipe stage.
	// The manufacturing-order stage skips orders whose recipe is absent.
	operations map[string]struct{}
	// opYield maps (operation name, produced item) to the quantity produced
	// by one operation instance, for back-computing remaining quantities.
	opYield map[yieldKey]decimal.Decimal
}

func newSession(mode int, settings config.ConnectorConfig, log *zap.Logger) *Session {
	calendarName := settings.Calendar
	if calendarName == "" {
		calendarName = "Working hours"
	}
	mfgLocation := settings.ManufacturingWarehouse
	if mfgLocation == "" {
		mfgLocation = settings.Company
	}
	return &Session{
		mode:            mode,
		settings:        settings,
		log:             log,
		calendarName:    calendarName,
		mfgLocation:     mfgLocation,
		locationNames:   make(map[uuid.UUID]string),
		warehouseNames:  make(map[uuid.UUID]string),
		products:        make(map[uuid.UUID]catalog.Product),
		productNames:    make(map[uuid.UUID]string),
		workcenterNames: make(map[uuid.UUID]string),
		operations:      make(map[string]struct{}),
		opYield:         make(map[yieldKey]decimal.Decimal),
	}
}

// loadProducts fills the product lookup tables shared by the item, demand,
// order and buffer stages.
func (s *Session) loadProducts(ctx context.Context, repo catalog.ProductRepository) error {
	products, err := repo.FindAllIncludingInactive(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		s.products[p.ID] = p
		s.productNames[p.ID] = productDisplayName(p)
	}
	return nil
}

func productDisplayName(p catalog.Product) string {
	if p.Code != "" {
		return "[" + p.Code + "] " + p.Name
	}
	return p.Name
}
