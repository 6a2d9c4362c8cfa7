package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/planner-connector/internal/application/export"
	"github.com/erp/planner-connector/internal/application/importer"
	"github.com/erp/planner-connector/internal/infrastructure/config"
	"github.com/erp/planner-connector/internal/infrastructure/persistence"
	"github.com/erp/planner-connector/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	log := zap.NewNop()
	cfg := config.ConnectorConfig{Company: "Test Company", Calendar: "Working hours"}

	exp := export.NewExporter(export.Repositories{
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
	}, cfg, log)

	imp := importer.NewImporter(importer.Repositories{
		Units:       persistence.NewGormUnitOfMeasureRepository(db),
		Products:    persistence.NewGormProductRepository(db),
		Offers:      persistence.NewGormSupplierOfferRepository(db),
		Partners:    persistence.NewGormPartnerRepository(db),
		Warehouses:  persistence.NewGormWarehouseRepository(db),
		Locations:   persistence.NewGormLocationRepository(db),
		BOMs:        persistence.NewGormBOMRepository(db),
		Productions: persistence.NewGormManufacturingOrderRepository(db),
		Purchases:   persistence.NewGormPurchaseOrderRepository(db),
		Moves:       persistence.NewGormMoveRepository(db),
	}, log)

	engine := gin.New()
	router.NewRouter(engine).
		Register(NewPlanHandler(exp, imp, log)).
		Setup()
	return engine
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plan", nil)
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), `source="erp_1"`)
	assert.Contains(t, w.Body.String(), "</plan>")
}

func TestExportEndpointIncrementalMode(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/plan?mode=2", nil)
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `source="erp_2"`)
}

func TestExportEndpointRejectsBadMode(t *testing.T) {
	srv := newTestServer(t)

	for _, mode := range []string{"0", "3", "full"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/plan?mode="+mode, nil)
		srv.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "mode %q", mode)
	}
}

func TestImportEndpointRawBody(t *testing.T) {
	srv := newTestServer(t)
	body := `<?xml version="1.0" encoding="UTF-8" ?><plan><operationplans></operationplans></plan>`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan?mode=2", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/xml")
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		PurchaseOrders      int      `json:"purchase_orders"`
		StockMoves          int      `json:"stock_moves"`
		ManufacturingOrders int      `json:"manufacturing_orders"`
		Messages            []string `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.PurchaseOrders)
	assert.Contains(t, resp.Messages, "Processed 0 uploaded procurement orders")
}

func TestImportEndpointMultipartUpload(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("frePPLe plan", "plan.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(`<plan><operationplans></operationplans></plan>`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan?mode=2", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Processed 0 uploaded stock moves")
}
