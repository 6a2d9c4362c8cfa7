package export

import (
	"context"

	"github.com/erp/planner-connector/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type uomEntry struct {
	factor     decimal.Decimal
	categoryID uuid.UUID
	name       string
}

// UOMTable converts quantities expressed in an arbitrary unit into the
// reference unit of the unit's dimension category. It is built once per
// export session and includes inactive units, because historical records may
// still reference them.
type UOMTable struct {
	units          map[uuid.UUID]uomEntry
	referenceByCat map[uuid.UUID]uuid.UUID
	log            *zap.Logger
}

// BuildUOMTable scans all units of measure and precomputes the conversion
// factor of each one.
func BuildUOMTable(ctx context.Context, repo catalog.UnitOfMeasureRepository, log *zap.Logger) (*UOMTable, error) {
	units, err := repo.FindAllIncludingInactive(ctx)
	if err != nil {
		return nil, err
	}
	t := &UOMTable{
		units:          make(map[uuid.UUID]uomEntry, len(units)),
		referenceByCat: make(map[uuid.UUID]uuid.UUID),
		log:            log,
	}
	for i := range units {
		u := &units[i]
		if u.Type == catalog.UOMReference {
			t.referenceByCat[u.CategoryID] = u.ID
		}
		t.units[u.ID] = uomEntry{
			factor:     u.ReferenceFactor(),
			categoryID: u.CategoryID,
			name:       u.Name,
		}
	}
	return t, nil
}

// Convert expresses a quantity in the reference unit of the unit's category.
// An unknown unit returns the quantity unchanged with a warning; a missing
// conversion must never block the interchange.
func (t *UOMTable) Convert(qty decimal.Decimal, uomID uuid.UUID) decimal.Decimal {
	entry, ok := t.units[uomID]
	if !ok {
		t.log.Warn("unknown unit of measure, quantity passed through unconverted",
			zap.String("uom_id", uomID.String()))
		return qty
	}
	return qty.Mul(entry.factor)
}

// Factor returns the conversion factor of a unit, 1 when unknown.
func (t *UOMTable) Factor(uomID uuid.UUID) decimal.Decimal {
	if entry, ok := t.units[uomID]; ok {
		return entry.factor
	}
	return decimal.NewFromInt(1)
}

// ReferenceUnit returns the reference unit of a category.
func (t *UOMTable) ReferenceUnit(categoryID uuid.UUID) (uuid.UUID, bool) {
	id, ok := t.referenceByCat[categoryID]
	return id, ok
}

// ReferenceForUnit returns the reference unit of the given unit's category.
// Items embed it in their subcategory correlation hint so the import side
// can recover the unit without a name lookup.
func (t *UOMTable) ReferenceForUnit(uomID uuid.UUID) (uuid.UUID, bool) {
	entry, ok := t.units[uomID]
	if !ok {
		return uuid.Nil, false
	}
	return t.ReferenceUnit(entry.categoryID)
}
