package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erp/planner-connector/internal/application/export"
	"github.com/erp/planner-connector/internal/application/importer"
	"github.com/erp/planner-connector/internal/infrastructure/config"
	"github.com/erp/planner-connector/internal/infrastructure/logger"
	"github.com/erp/planner-connector/internal/infrastructure/persistence"
	"github.com/erp/planner-connector/internal/interfaces/http/handler"
	"github.com/erp/planner-connector/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting planner connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.Open(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	uomRepo := persistence.NewGormUnitOfMeasureRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	offerRepo := persistence.NewGormSupplierOfferRepository(db)
	partnerRepo := persistence.NewGormPartnerRepository(db)
	warehouseRepo := persistence.NewGormWarehouseRepository(db)
	locationRepo := persistence.NewGormLocationRepository(db)
	calendarRepo := persistence.NewGormCalendarRepository(db)
	workcenterRepo := persistence.NewGormWorkcenterRepository(db)
	bomRepo := persistence.NewGormBOMRepository(db)
	routingRepo := persistence.NewGormRoutingRepository(db)
	productionRepo := persistence.NewGormManufacturingOrderRepository(db)
	saleRepo := persistence.NewGormSaleOrderRepository(db)
	purchaseRepo := persistence.NewGormPurchaseOrderRepository(db)
	quantRepo := persistence.NewGormQuantRepository(db)
	moveRepo := persistence.NewGormMoveRepository(db)
	orderpointRepo := persistence.NewGormOrderpointRepository(db)
	stockRuleRepo := persistence.NewGormStockRuleRepository(db)

	// Initialize the export and import pipelines
	exporter := export.NewExporter(export.Repositories{
		Units:       uomRepo,
		Categories:  categoryRepo,
		Products:    productRepo,
		Offers:      offerRepo,
		Partners:    partnerRepo,
		Warehouses:  warehouseRepo,
		Locations:   locationRepo,
		Calendars:   calendarRepo,
		Workcenters: workcenterRepo,
		BOMs:        bomRepo,
		Routings:    routingRepo,
		Productions: productionRepo,
		Sales:       saleRepo,
		Purchases:   purchaseRepo,
		Quants:      quantRepo,
		Moves:       moveRepo,
		Orderpoints: orderpointRepo,
		StockRules:  stockRuleRepo,
	}, cfg.Connector, log)

	imp := importer.NewImporter(importer.Repositories{
		Units:       uomRepo,
		Products:    productRepo,
		Offers:      offerRepo,
		Partners:    partnerRepo,
		Warehouses:  warehouseRepo,
		Locations:   locationRepo,
		BOMs:        bomRepo,
		Productions: productionRepo,
		Purchases:   purchaseRepo,
		Moves:       moveRepo,
	}, log)

	// Setup HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.MaxMultipartMemory = cfg.HTTP.MaxBodySize

	planHandler := handler.NewPlanHandler(exporter, imp, log)
	router.NewRouter(engine).
		Register(planHandler).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
