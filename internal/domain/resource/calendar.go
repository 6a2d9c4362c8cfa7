package resource

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attendance is one weekly working-hours entry of a calendar: a weekday with
// a time-of-day window, optionally starting from a given date. Weekday 0 is
// Monday, following the host system's convention.
type Attendance struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CalendarName string          `gorm:"type:varchar(255);not null;index"`
	Weekday      int             `gorm:"not null"`
	DateFrom     *time.Time      ``
	HourFrom     decimal.Decimal `gorm:"type:decimal(6,2);not null"` // hours since midnight
	HourTo       decimal.Decimal `gorm:"type:decimal(6,2);not null"`
}

// TableName returns the table name for GORM
func (Attendance) TableName() string {
	return "calendar_attendances"
}

// Holiday is a public holiday: one full non-working day.
type Holiday struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Holiday) TableName() string {
	return "public_holidays"
}

// Workcenter is a production resource with finite capacity.
type Workcenter struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"type:varchar(255);not null"`
	CostHour decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Workcenter) TableName() string {
	return "workcenters"
}
