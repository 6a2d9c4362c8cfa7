package export

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/erp/planner-connector/internal/infrastructure/config"
	"github.com/erp/planner-connector/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestExporter(t *testing.T, db *gorm.DB, cfg config.ConnectorConfig) *Exporter {
	t.Helper()
	repos := Repositories{
		Units:       persistence.NewGormUnitOfMeasureRepository(db),
		Categories:  persistence.NewGormCategoryRepository(db),
		Products:    persistence.NewGormProductRepository(db),
		Offers:      persistence.NewGormSupplierOfferRepository(db),
		Partners:    persistence.NewGormPartnerRepository(db),
		Warehouses:  persistence.NewGormWarehouseRepository(db),
		Locations:   persistence.NewGormLocationRepository(db),
		Calendars:   persistence.NewGormCalendarRepository(db),
		Workcenters: persistence.NewGormWorkcenterRepository(db),
		BOMs:        persistence.NewGormBOMRepository(db),
		Routings:    persistence.NewGormRoutingRepository(db),
		Productions: persistence.NewGormManufacturingOrderRepository(db),
		Sales:       persistence.NewGormSaleOrderRepository(db),
		Purchases:   persistence.NewGormPurchaseOrderRepository(db),
		Quants:      persistence.NewGormQuantRepository(db),
		Moves:       persistence.NewGormMoveRepository(db),
		Orderpoints: persistence.NewGormOrderpointRepository(db),
		StockRules:  persistence.NewGormStockRuleRepository(db),
	}
	return NewExporter(repos, cfg, zap.NewNop())
}

func testConnectorConfig() config.ConnectorConfig {
	return config.ConnectorConfig{
		Company:               "Test Company",
		Calendar:              "Working hours",
		ManufacturingLeadDays: 1,
		PurchaseLeadDays:      1,
	}
}

// seedWarehouse creates a warehouse with its six locations and returns it.
func seedWarehouse(t *testing.T, db *gorm.DB, name string) resource.Warehouse {
	t.Helper()
	mk := func(locName string) resource.Location {
		loc := resource.Location{
			ID:           uuid.New(),
			Name:         locName,
			CompleteName: name + "/" + locName,
		}
		require.NoError(t, db.Create(&loc).Error)
		return loc
	}
	wh := resource.Warehouse{
		ID:                uuid.New(),
		Name:              name,
		InputLocationID:   mk("Input").ID,
		OutputLocationID:  mk("Output").ID,
		PackLocationID:    mk("Pack").ID,
		QualityLocationID: mk("Quality").ID,
		ViewLocationID:    mk("View").ID,
		StockLocationID:   mk("Stock").ID,
	}
	require.NoError(t, db.Create(&wh).Error)
	require.NoError(t, db.Model(&resource.Location{}).
		Where("id IN ?", []uuid.UUID{wh.StockLocationID}).
		Update("warehouse_id", wh.ID).Error)
	return wh
}

func seedProduct(t *testing.T, db *gorm.DB, name string, categoryID, uomID uuid.UUID) catalog.Product {
	t.Helper()
	p := catalog.Product{
		ID:         uuid.New(),
		Name:       name,
		CategoryID: categoryID,
		UomID:      uomID,
		ListPrice:  decimal.NewFromInt(10),
		Active:     true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func exportDocument(t *testing.T, e *Exporter, mode int) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, e.Run(context.Background(), &buf, mode))
	return buf.String()
}

func TestFullModeDocumentShape(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	wh := seedWarehouse(t, db, "WH")

	// One reorder rule, because an empty rule set drops its whole section.
	category := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&category).Error)
	p := seedProduct(t, db, "Widget", category.ID, ref.ID)
	require.NoError(t, db.Create(&inventory.Orderpoint{
		ID: uuid.New(), ProductID: p.ID, WarehouseID: wh.ID, UomID: ref.ID,
		MinQty: decimal.NewFromInt(5), MaxQty: decimal.NewFromInt(20),
	}).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8" ?>`))
	assert.Contains(t, doc, `source="erp_1"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</plan>"))

	// Section order is a contract of the interchange format.
	markers := []string{
		"<!-- calendar -->",
		"<!-- warehouses -->",
		"<!-- customers -->",
		"<!-- workcenters -->",
		"<!-- products -->",
		"<!-- bills of material -->",
		"<!-- sales order lines -->",
		"<!-- open purchase orders -->",
		"<!-- manufacturing orders in progress -->",
		"<!-- order points -->",
		"<!-- inventory -->",
		"<!-- stock move lines -->",
		"<!-- stock rules -->",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(doc, m)
		require.GreaterOrEqual(t, idx, 0, "missing section %s", m)
		assert.Greater(t, idx, last, "section %s out of order", m)
		last = idx
	}
}

func TestIncrementalModeSkipsMasterData(t *testing.T) {
	db := newTestDB(t)
	seedUnits(t, db)
	seedWarehouse(t, db, "WH")

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeIncremental)

	assert.Contains(t, doc, `source="erp_2"`)
	assert.Contains(t, doc, "<!-- warehouses -->")
	assert.Contains(t, doc, "<!-- customers -->")
	assert.Contains(t, doc, "<!-- products -->")
	assert.Contains(t, doc, "<!-- sales order lines -->")

	assert.NotContains(t, doc, "<!-- calendar -->")
	assert.NotContains(t, doc, "<!-- workcenters -->")
	assert.NotContains(t, doc, "<!-- bills of material -->")
	assert.NotContains(t, doc, "<!-- inventory -->")
	assert.NotContains(t, doc, "<!-- stock rules -->")
}

func TestCalendarEarlierPatternWinsPriority(t *testing.T) {
	db := newTestDB(t)
	seedUnits(t, db)
	seedWarehouse(t, db, "WH")

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&resource.Attendance{
		ID: uuid.New(), CalendarName: "Working hours", Weekday: 0,
		DateFrom: &newer,
		HourFrom: decimal.NewFromInt(8), HourTo: decimal.NewFromInt(17),
	}).Error)
	require.NoError(t, db.Create(&resource.Attendance{
		ID: uuid.New(), CalendarName: "Working hours", Weekday: 1,
		DateFrom: &older,
		HourFrom: decimal.NewFromInt(9), HourTo: decimal.NewFromInt(18),
	}).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	re := regexp.MustCompile(`<bucket start="(\d{4})-\d{2}-\d{2}T00:00:00" value="1" days="\d+" priority="(\d+)"`)
	matches := re.FindAllStringSubmatch(doc, -1)
	require.Len(t, matches, 2)
	assert.Equal(t, "2024", matches[0][1])
	assert.Equal(t, "1000", matches[0][2])
	assert.Equal(t, "2025", matches[1][1])
	assert.Equal(t, "999", matches[1][2])
}

func TestCalendarWithoutSubsystemDefaultsTo247(t *testing.T) {
	db := newTestDB(t)
	seedUnits(t, db)
	require.NoError(t, db.Migrator().DropTable(&resource.Attendance{}))
	require.NoError(t, db.Migrator().DropTable(&resource.Holiday{}))

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Contains(t, doc, "<!-- Working hours are assumed to be 24*7. -->")
	assert.Contains(t, doc, `default="1"`)
}

func TestItemTreeProductsBeforeSubcategories(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	seedWarehouse(t, db, "WH")

	root := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&root).Error)
	child := catalog.Category{ID: uuid.New(), Name: "Raw Material", ParentID: &root.ID}
	require.NoError(t, db.Create(&child).Error)
	seedProduct(t, db, "Widget", root.ID, ref.ID)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	productIdx := strings.Index(doc, `<item name="Widget"`)
	childIdx := strings.Index(doc, `<item name="Raw Material"`)
	require.GreaterOrEqual(t, productIdx, 0)
	require.GreaterOrEqual(t, childIdx, 0)
	assert.Less(t, productIdx, childIdx, "direct products come before subcategories")
}

// cyclicCategoryRepository simulates an inconsistent category source where a
// node shows up among its own descendants.
type cyclicCategoryRepository struct {
	a, b catalog.Category
}

func (r *cyclicCategoryRepository) FindRoots(ctx context.Context) ([]catalog.Category, error) {
	return []catalog.Category{r.a}, nil
}

func (r *cyclicCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	switch parentID {
	case r.a.ID:
		return []catalog.Category{r.b}, nil
	case r.b.ID:
		return []catalog.Category{r.a}, nil
	}
	return nil, nil
}

type emptyProductRepository struct{}

func (emptyProductRepository) FindAllIncludingInactive(ctx context.Context) ([]catalog.Product, error) {
	return nil, nil
}

func (emptyProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID) ([]catalog.Product, error) {
	return nil, nil
}

func (emptyProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return nil, shared.ErrNotFound
}

func TestCategoryCycleFailsRun(t *testing.T) {
	e := &Exporter{
		repos: Repositories{
			Categories: &cyclicCategoryRepository{
				a: catalog.Category{ID: uuid.New(), Name: "A"},
				b: catalog.Category{ID: uuid.New(), Name: "B"},
			},
			Products: emptyProductRepository{},
		},
		cfg: testConnectorConfig(),
		log: zap.NewNop(),
	}
	s := newSession(ModeFull, e.cfg, e.log)
	s.uom = &UOMTable{units: map[uuid.UUID]uomEntry{}, referenceByCat: map[uuid.UUID]uuid.UUID{}, log: e.log}

	var buf bytes.Buffer
	err := e.writeItems(context.Background(), s, newPlanWriter(&buf))
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrHierarchyCycle)
}

func TestLocationCycleFailsRun(t *testing.T) {
	db := newTestDB(t)
	seedUnits(t, db)
	wh := seedWarehouse(t, db, "WH")

	// The input root listed as its own child. The hierarchy walk must refuse
	// to loop on it.
	require.NoError(t, db.Model(&resource.Location{}).
		Where("id = ?", wh.InputLocationID).
		Update("parent_id", wh.InputLocationID).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	var buf bytes.Buffer
	err := e.Run(context.Background(), &buf, ModeFull)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrHierarchyCycle)
}

func TestStageOrderSatisfiesDependencies(t *testing.T) {
	e := newTestExporter(t, newTestDB(t), testConnectorConfig())
	order, err := sortStages(e.stages())
	require.NoError(t, err)
	require.Len(t, order, len(e.stages()))

	seen := map[string]bool{}
	for _, st := range order {
		for _, dep := range st.needs {
			assert.True(t, seen[dep], "stage %s runs before its dependency %s", st.name, dep)
		}
		seen[st.name] = true
	}
}

func TestStageCycleDetected(t *testing.T) {
	_, err := sortStages([]stage{
		{name: "a", needs: []string{"b"}},
		{name: "b", needs: []string{"a"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependency cycle")
}
