package persistence

import (
	"context"
	"errors"

	"github.com/erp/planner-connector/internal/domain/resource"
	"github.com/erp/planner-connector/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements resource.WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindAll returns every warehouse
func (r *GormWarehouseRepository) FindAll(ctx context.Context) ([]resource.Warehouse, error) {
	var warehouses []resource.Warehouse
	if err := r.db.WithContext(ctx).Order("id").Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Warehouse, error) {
	var warehouse resource.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// FindByStockLocation returns the warehouse whose primary stock location is
// the given location
func (r *GormWarehouseRepository) FindByStockLocation(ctx context.Context, locationID uuid.UUID) (*resource.Warehouse, error) {
	var warehouse resource.Warehouse
	if err := r.db.WithContext(ctx).
		First(&warehouse, "stock_location_id = ?", locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

// GormLocationRepository implements resource.LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Location, error) {
	var location resource.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindChildren returns the direct child locations
func (r *GormLocationRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]resource.Location, error) {
	var locations []resource.Location
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("id").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// GormCalendarRepository implements resource.CalendarRepository using GORM.
// The attendance and holiday tables belong to optional host modules; a
// missing table surfaces as shared.ErrSubsystemUnavailable rather than a
// database error.
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewGormCalendarRepository creates a new GormCalendarRepository
func NewGormCalendarRepository(db *gorm.DB) *GormCalendarRepository {
	return &GormCalendarRepository{db: db}
}

// FindAttendances returns the weekly working-hours entries of a calendar
func (r *GormCalendarRepository) FindAttendances(ctx context.Context, calendarName string) ([]resource.Attendance, error) {
	if !r.db.Migrator().HasTable(&resource.Attendance{}) {
		return nil, shared.ErrSubsystemUnavailable
	}
	var attendances []resource.Attendance
	if err := r.db.WithContext(ctx).
		Where("calendar_name = ?", calendarName).
		Order("id").
		Find(&attendances).Error; err != nil {
		return nil, err
	}
	return attendances, nil
}

// FindHolidays returns all public holidays
func (r *GormCalendarRepository) FindHolidays(ctx context.Context) ([]resource.Holiday, error) {
	if !r.db.Migrator().HasTable(&resource.Holiday{}) {
		return nil, shared.ErrSubsystemUnavailable
	}
	var holidays []resource.Holiday
	if err := r.db.WithContext(ctx).Order("date").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// GormWorkcenterRepository implements resource.WorkcenterRepository using GORM
type GormWorkcenterRepository struct {
	db *gorm.DB
}

// NewGormWorkcenterRepository creates a new GormWorkcenterRepository
func NewGormWorkcenterRepository(db *gorm.DB) *GormWorkcenterRepository {
	return &GormWorkcenterRepository{db: db}
}

// FindAll returns every workcenter
func (r *GormWorkcenterRepository) FindAll(ctx context.Context) ([]resource.Workcenter, error) {
	var workcenters []resource.Workcenter
	if err := r.db.WithContext(ctx).Order("id").Find(&workcenters).Error; err != nil {
		return nil, err
	}
	return workcenters, nil
}

var (
	_ resource.WarehouseRepository  = (*GormWarehouseRepository)(nil)
	_ resource.LocationRepository   = (*GormLocationRepository)(nil)
	_ resource.CalendarRepository   = (*GormCalendarRepository)(nil)
	_ resource.WorkcenterRepository = (*GormWorkcenterRepository)(nil)
)
