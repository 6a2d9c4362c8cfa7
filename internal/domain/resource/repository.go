package resource

import (
	"context"

	"github.com/google/uuid"
)

// WarehouseRepository provides access to warehouses
type WarehouseRepository interface {
	// FindAll returns every warehouse ordered by id.
	FindAll(ctx context.Context) ([]Warehouse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	// FindByStockLocation returns the warehouse whose primary stock location
	// is the given location.
	FindByStockLocation(ctx context.Context, locationID uuid.UUID) (*Warehouse, error)
}

// LocationRepository provides access to stock locations
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	// FindChildren returns the direct child locations ordered by id.
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Location, error)
}

// CalendarRepository provides access to working-hours calendars. Either
// finder may return shared.ErrSubsystemUnavailable when the backing module
// is not installed; callers fall back to a documented default.
type CalendarRepository interface {
	FindAttendances(ctx context.Context, calendarName string) ([]Attendance, error)
	FindHolidays(ctx context.Context) ([]Holiday, error)
}

// WorkcenterRepository provides access to production resources
type WorkcenterRepository interface {
	FindAll(ctx context.Context) ([]Workcenter, error)
}
