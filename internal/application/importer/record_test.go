package importer

import (
	"encoding/xml"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrs(pairs ...string) xml.StartElement {
	el := xml.StartElement{Name: xml.Name{Local: "operationplan"}}
	for i := 0; i+1 < len(pairs); i += 2 {
		el.Attr = append(el.Attr, xml.Attr{
			Name:  xml.Name{Local: pairs[i]},
			Value: pairs[i+1],
		})
	}
	return el
}

func TestRecordFromElement(t *testing.T) {
	rec := recordFromElement(attrs(
		"reference", "PO-9",
		"ordertype", "PO",
		"quantity", "12.5",
		"start", "2026-02-01T08:00:00",
		"end", "2026-02-05T17:00:00",
		"status", "proposed",
	))
	assert.Equal(t, "PO-9", rec.Reference)
	assert.Equal(t, OrderTypePurchase, rec.OrderType)
	assert.Equal(t, "12.5", rec.Quantity)
	assert.Equal(t, "proposed", rec.Status)
}

func TestRefFallsBackToLegacyID(t *testing.T) {
	withRef := recordFromElement(attrs("reference", "MO-1", "id", "42"))
	assert.Equal(t, "MO-1", withRef.Ref())

	legacyOnly := recordFromElement(attrs("id", "42"))
	assert.Equal(t, "42", legacyOnly.Ref())
}

func TestItemIDsSplitsCompositeHint(t *testing.T) {
	uomID := uuid.New()
	productID := uuid.New()
	rec := OperationPlan{ItemID: fmt.Sprintf("%s,%s", uomID, productID)}

	gotUom, gotProduct, err := rec.ItemIDs()
	require.NoError(t, err)
	assert.Equal(t, uomID, gotUom)
	assert.Equal(t, productID, gotProduct)
}

func TestItemIDsRejectsMalformedHint(t *testing.T) {
	for _, bad := range []string{"", "just-one-part", "nope,also-nope", uuid.New().String()} {
		_, _, err := OperationPlan{ItemID: bad}.ItemIDs()
		assert.Error(t, err, "item_id %q", bad)
	}
}

func TestSupplierIDLeadsTheExportedName(t *testing.T) {
	id := uuid.New()
	rec := OperationPlan{Supplier: fmt.Sprintf("%s Acme Corp", id)}

	got, err := rec.SupplierID()
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = OperationPlan{Supplier: "Acme Corp"}.SupplierID()
	assert.Error(t, err)
}

func TestOperationBOMIDLeadsTheOperationName(t *testing.T) {
	id := uuid.New()
	rec := OperationPlan{Operation: fmt.Sprintf("%s Table @ WH/Stock", id)}

	got, err := rec.OperationBOMID()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTimestampsFallBackToEachOther(t *testing.T) {
	rec := OperationPlan{End: "2026-02-05T17:00:00"}

	start, err := rec.StartTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 5, 17, 0, 0, 0, time.UTC), start)

	end, err := rec.EndTime()
	require.NoError(t, err)
	assert.Equal(t, start, end)

	_, err = OperationPlan{}.StartTime()
	assert.Error(t, err)
}
