package persistence

import (
	"fmt"
	"time"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/erp/planner-connector/internal/domain/manufacturing"
	"github.com/erp/planner-connector/internal/domain/partner"
	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/erp/planner-connector/internal/domain/trade"
	"github.com/erp/planner-connector/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open opens the production Postgres connection with the configured pool
// limits.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	return db, nil
}

// AutoMigrate creates or updates the connector-owned tables. The master data
// tables are normally owned by the host ERP; migrating them here supports
// standalone and test deployments.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.UnitOfMeasure{},
		&catalog.Category{},
		&catalog.Product{},
		&catalog.SupplierOffer{},
		&partner.Partner{},
		&resource.Location{},
		&resource.Warehouse{},
		&resource.Attendance{},
		&resource.Holiday{},
		&resource.Workcenter{},
		&manufacturing.BOM{},
		&manufacturing.BOMLine{},
		&manufacturing.Byproduct{},
		&manufacturing.Routing{},
		&manufacturing.RoutingStep{},
		&manufacturing.ManufacturingOrder{},
		&trade.SaleOrder{},
		&trade.SaleOrderLine{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderLine{},
		&inventory.StockQuant{},
		&inventory.StockMove{},
		&inventory.Shipment{},
		&inventory.Orderpoint{},
		&inventory.StockRule{},
	)
}
