package export

import (
	"strings"
	"testing"
	"time"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMove(t *testing.T, db *gorm.DB, productID, srcID, destID uuid.UUID, uomID uuid.UUID, state string) inventory.StockMove {
	t.Helper()
	m := inventory.StockMove{
		ID: uuid.New(), ProductID: productID, UomID: uomID,
		Quantity: decimal.NewFromInt(5), LocationID: srcID, LocationDestID: destID,
		State: state, Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func TestMoveLinesSkipSameWarehouseMoves(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	wh1 := seedWarehouse(t, db, "WH1")
	wh2 := seedWarehouse(t, db, "WH2")

	category := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&category).Error)
	product := seedProduct(t, db, "Widget", category.ID, ref.ID)

	// Tie every functional location of each warehouse back to it, so both
	// ends of an intra-warehouse move resolve to the same stock location.
	for _, pair := range []struct {
		wh  resource.Warehouse
		ids []uuid.UUID
	}{
		{wh1, []uuid.UUID{wh1.InputLocationID, wh1.OutputLocationID, wh1.StockLocationID}},
		{wh2, []uuid.UUID{wh2.InputLocationID, wh2.OutputLocationID, wh2.StockLocationID}},
	} {
		require.NoError(t, db.Model(&resource.Location{}).
			Where("id IN ?", pair.ids).
			Update("warehouse_id", pair.wh.ID).Error)
	}

	internal := seedMove(t, db, product.ID, wh1.InputLocationID, wh1.OutputLocationID, ref.ID, inventory.MoveStateDraft)
	crossDock := seedMove(t, db, product.ID, wh1.OutputLocationID, wh2.InputLocationID, ref.ID, inventory.MoveStateAssigned)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.NotContains(t, doc, internal.ID.String(),
		"both ends resolve to the same warehouse stock location")
	assert.Contains(t, doc, `reference="`+crossDock.ID.String()+`"`)
	assert.Contains(t, doc, `status="confirmed"`, "assigned moves export as confirmed")
}

func TestStockRulesKeepLongestLeadTimePerRoute(t *testing.T) {
	db := newTestDB(t)
	seedUnits(t, db)
	wh := seedWarehouse(t, db, "WH")

	src := wh.OutputLocationID
	dest := wh.InputLocationID
	for _, days := range []int{2, 7, 4} {
		require.NoError(t, db.Create(&inventory.StockRule{
			ID: uuid.New(), LocationSrcID: &src, LocationID: dest, DelayDays: days,
		}).Error)
	}

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Equal(t, 1, strings.Count(doc, "<itemdistribution>"),
		"duplicate rules for one route collapse")
	assert.Contains(t, doc, "<leadtime>P7D</leadtime>", "the longest lead time wins")
}
