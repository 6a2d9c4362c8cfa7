package export

import (
	"regexp"
	"strings"
	"testing"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recipeFixture struct {
	product   catalog.Product
	component catalog.Product
	bom       manufacturing.BOM
	routing   manufacturing.Routing
}

// seedRecipe creates a product with a three-step routed recipe consuming one
// component.
func seedRecipe(t *testing.T, db *gorm.DB, ref catalog.UnitOfMeasure) recipeFixture {
	t.Helper()
	category := catalog.Category{ID: uuid.New(), Name: "All"}
	require.NoError(t, db.Create(&category).Error)
	product := seedProduct(t, db, "Table", category.ID, ref.ID)
	component := seedProduct(t, db, "Leg", category.ID, ref.ID)

	cut := resource.Workcenter{ID: uuid.New(), Name: "Cutting", CostHour: decimal.NewFromInt(25)}
	assembly := resource.Workcenter{ID: uuid.New(), Name: "Assembly", CostHour: decimal.NewFromInt(40)}
	require.NoError(t, db.Create(&cut).Error)
	require.NoError(t, db.Create(&assembly).Error)

	routing := manufacturing.Routing{ID: uuid.New(), Name: "Table line"}
	require.NoError(t, db.Create(&routing).Error)
	steps := []manufacturing.RoutingStep{
		{ID: uuid.New(), RoutingID: routing.ID, Name: "Cut", WorkcenterID: cut.ID, Sequence: 1, CycleTime: decimal.NewFromInt(1)},
		{ID: uuid.New(), RoutingID: routing.ID, Name: "Sand", WorkcenterID: cut.ID, Sequence: 2, CycleTime: decimal.NewFromInt(2)},
		{ID: uuid.New(), RoutingID: routing.ID, Name: "Assemble", WorkcenterID: assembly.ID, Sequence: 3, CycleTime: decimal.NewFromInt(3)},
	}
	for i := range steps {
		require.NoError(t, db.Create(&steps[i]).Error)
	}

	bom := manufacturing.BOM{
		ID:        uuid.New(),
		ProductID: product.ID,
		Quantity:  decimal.NewFromInt(1),
		UomID:     ref.ID,
		RoutingID: &routing.ID,
	}
	require.NoError(t, db.Create(&bom).Error)
	require.NoError(t, db.Create(&manufacturing.BOMLine{
		ID: uuid.New(), BOMID: bom.ID, ProductID: component.ID,
		Quantity: decimal.NewFromInt(4), UomID: ref.ID,
	}).Error)

	return recipeFixture{product: product, component: component, bom: bom, routing: routing}
}

func TestRoutedOperationSuboperationPriorities(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	seedWarehouse(t, db, "WH")
	seedRecipe(t, db, ref)

	cfg := testConnectorConfig()
	cfg.ManageWorkOrders = true
	e := newTestExporter(t, db, cfg)
	doc := exportDocument(t, e, ModeFull)

	require.Contains(t, doc, `xsi:type="operation_routing"`)

	re := regexp.MustCompile(`<suboperation><operation name="[^"]*" priority="(\d+)"`)
	matches := re.FindAllStringSubmatch(doc, -1)
	require.Len(t, matches, 3)
	assert.Equal(t, "10", matches[0][1])
	assert.Equal(t, "20", matches[1][1])
	assert.Equal(t, "30", matches[2][1])
}

func TestRoutedOperationFlowPlacement(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	seedWarehouse(t, db, "WH")
	seedRecipe(t, db, ref)

	cfg := testConnectorConfig()
	cfg.ManageWorkOrders = true
	e := newTestExporter(t, db, cfg)
	doc := exportDocument(t, e, ModeFull)

	subs := strings.Split(doc, "<suboperation>")
	require.Len(t, subs, 4)

	first, middle, last := subs[1], subs[2], subs[3]
	assert.Contains(t, first, `quantity="-4"`, "first step consumes the components")
	assert.NotContains(t, first, `xsi:type="flow_end"`)
	assert.NotContains(t, middle, "<flows>")
	assert.Contains(t, last, `xsi:type="flow_end"`, "last step produces the output")
	assert.NotContains(t, last, `quantity="-`)
}

func TestRepeatedWorkcenterMergedWithoutWorkOrders(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	seedWarehouse(t, db, "WH")
	seedRecipe(t, db, ref)

	// Work-order tracking disabled collapses the recipe into one fixed-time
	// operation; the two passes on the cutting workcenter sum into one load.
	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	require.Contains(t, doc, `xsi:type="operation_fixed_time"`)
	assert.NotContains(t, doc, `xsi:type="operation_routing"`)
	assert.Contains(t, doc, `<load quantity="3"><resource name="Cutting"/></load>`)
	assert.Contains(t, doc, `<load quantity="3"><resource name="Assembly"/></load>`)
	assert.Equal(t, 1, strings.Count(doc, `<resource name="Cutting"/></load>`))
}

func TestDuplicateComponentLinesSummed(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	seedWarehouse(t, db, "WH")
	fx := seedRecipe(t, db, ref)

	require.NoError(t, db.Create(&manufacturing.BOMLine{
		ID: uuid.New(), BOMID: fx.bom.ID, ProductID: fx.component.ID,
		Quantity: decimal.NewFromInt(2), UomID: ref.ID,
	}).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Contains(t, doc, `quantity="-6"`)
	assert.Equal(t, 1, strings.Count(doc, `<item name="Leg"/></flow>`))
}

func TestByproductFlowTypes(t *testing.T) {
	db := newTestDB(t)
	ref, _, _ := seedUnits(t, db)
	seedWarehouse(t, db, "WH")
	fx := seedRecipe(t, db, ref)

	category := catalog.Category{ID: uuid.New(), Name: "Scrap"}
	require.NoError(t, db.Create(&category).Error)
	sawdust := seedProduct(t, db, "Sawdust", category.ID, ref.ID)
	offcut := seedProduct(t, db, "Offcut", category.ID, ref.ID)
	require.NoError(t, db.Create(&manufacturing.Byproduct{
		ID: uuid.New(), BOMID: fx.bom.ID, ProductID: sawdust.ID,
		Quantity: decimal.NewFromInt(1), UomID: ref.ID, Fixed: true,
	}).Error)
	require.NoError(t, db.Create(&manufacturing.Byproduct{
		ID: uuid.New(), BOMID: fx.bom.ID, ProductID: offcut.ID,
		Quantity: decimal.NewFromInt(2), UomID: ref.ID,
	}).Error)

	e := newTestExporter(t, db, testConnectorConfig())
	doc := exportDocument(t, e, ModeFull)

	assert.Contains(t, doc, `<flow xsi:type="flow_fixed_end" quantity="1"><item name="Sawdust"/></flow>`)
	assert.Contains(t, doc, `<flow xsi:type="flow_end" quantity="2"><item name="Offcut"/></flow>`)
}
