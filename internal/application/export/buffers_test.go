package export

import (
	"strings"
	"testing"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderpointOmitsUnsetQuantities(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	wh := seedWarehouse(t, db, "WH")

	category := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&category).Error)
	product := seedProduct(t, db, "Widget", category.ID, ref.ID)

	// Only a minimum: no reorder quantity, no multiple.
	require.NoError(t, db.Create(&inventory.Orderpoint{
		ID: uuid.New(), ProductID: product.ID, WarehouseID: wh.ID, UomID: ref.ID,
		MinQty: decimal.NewFromInt(5), MaxQty: decimal.NewFromInt(5),
	}).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Contains(t, doc, `<doubleproperty name="ss_min_qty" value="5"/>`)
	assert.NotContains(t, doc, `roq_min_qty`, "zero means unset, not zero")
	assert.NotContains(t, doc, `roq_multiple_qty`)
	assert.Contains(t, doc, `<booleanproperty name="ip_flag" value="true"/>`)
	assert.Contains(t, doc, `<stringproperty name="roq_type" value="quantity"/>`)
	assert.Contains(t, doc, `<stringproperty name="ss_type" value="quantity"/>`)
}

func TestOrderpointConvertsQuantitiesToReferenceUnit(t *testing.T) {
	db := newTestDB(t)
	_, dozen, _ := seedUnits(t, db)
	wh := seedWarehouse(t, db, "WH")

	category := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&category).Error)
	product := seedProduct(t, db, "Widget", category.ID, dozen.ID)

	require.NoError(t, db.Create(&inventory.Orderpoint{
		ID: uuid.New(), ProductID: product.ID, WarehouseID: wh.ID, UomID: dozen.ID,
		MinQty: decimal.NewFromInt(2), MaxQty: decimal.NewFromInt(5),
	}).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Contains(t, doc, `<doubleproperty name="ss_min_qty" value="24"/>`)
	assert.Contains(t, doc, `<doubleproperty name="roq_min_qty" value="36"/>`)
}

func TestOnhandSumsPositiveQuantitiesPerLocation(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	wh := seedWarehouse(t, db, "WH")

	category := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&category).Error)
	product := seedProduct(t, db, "Widget", category.ID, ref.ID)

	for _, qty := range []int64{3, 4, -2} {
		require.NoError(t, db.Create(&inventory.StockQuant{
			ID: uuid.New(), ProductID: product.ID, LocationID: wh.InputLocationID,
			Quantity: decimal.NewFromInt(qty),
		}).Error)
	}

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Contains(t, doc, `onhand="7"`, "negative quants stay out of the sum")
	assert.Equal(t, 1, strings.Count(doc, `onhand=`), "one buffer per product and location")
}
