package importer

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const timeLayout = "2006-01-02T15:04:05"

// Order type discriminants of incoming operation plans.
const (
	OrderTypePurchase      = "PO"
	OrderTypeDistribution  = "DO"
	OrderTypeManufacturing = "MO"
)

// OperationPlan is the flat attribute record of one incoming operationplan
// element. Only attributes are read; the element's subtree is discarded by
// the parser to keep memory bounded.
type OperationPlan struct {
	Reference     string
	LegacyID      string
	OrderType     string
	Start         string
	End           string
	Quantity      string
	Status        string
	ItemID        string // composite "unitID,productID"
	Item          string
	Supplier      string
	LocationID    string
	Location      string
	OriginID      string
	DestinationID string
	Operation     string
	Criticality   string
}

func recordFromElement(el xml.StartElement) OperationPlan {
	var rec OperationPlan
	for _, attr := range el.Attr {
		switch attr.Name.Local {
		case "reference":
			rec.Reference = attr.Value
		case "id":
			rec.LegacyID = attr.Value
		case "ordertype":
			rec.OrderType = attr.Value
		case "start":
			rec.Start = attr.Value
		case "end":
			rec.End = attr.Value
		case "quantity":
			rec.Quantity = attr.Value
		case "status":
			rec.Status = attr.Value
		case "item_id":
			rec.ItemID = attr.Value
		case "item":
			rec.Item = attr.Value
		case "supplier":
			rec.Supplier = attr.Value
		case "location_id":
			rec.LocationID = attr.Value
		case "location":
			rec.Location = attr.Value
		case "origin_id":
			rec.OriginID = attr.Value
		case "destination_id":
			rec.DestinationID = attr.Value
		case "operation":
			rec.Operation = attr.Value
		case "criticality":
			rec.Criticality = attr.Value
		}
	}
	return rec
}

// Ref returns the record's reference, accepting the legacy id attribute
// when reference is absent.
func (r OperationPlan) Ref() string {
	if r.Reference != "" {
		return r.Reference
	}
	return r.LegacyID
}

// ItemIDs splits the composite item correlation hint into the unit and
// product identifiers.
func (r OperationPlan) ItemIDs() (uomID, productID uuid.UUID, err error) {
	unitPart, productPart, found := strings.Cut(r.ItemID, ",")
	if !found {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed item_id %q", r.ItemID)
	}
	uomID, err = uuid.Parse(strings.TrimSpace(unitPart))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed unit id in item_id %q", r.ItemID)
	}
	productID, err = uuid.Parse(strings.TrimSpace(productPart))
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("malformed product id in item_id %q", r.ItemID)
	}
	return uomID, productID, nil
}

// SupplierID extracts the supplier identifier from the exported supplier
// name, which leads with the id followed by the display name.
func (r OperationPlan) SupplierID() (uuid.UUID, error) {
	idPart, _, _ := strings.Cut(r.Supplier, " ")
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed supplier %q", r.Supplier)
	}
	return id, nil
}

// OperationBOMID extracts the recipe identifier from the operation name,
// which leads with the recipe id.
func (r OperationPlan) OperationBOMID() (uuid.UUID, error) {
	idPart, _, _ := strings.Cut(r.Operation, " ")
	id, err := uuid.Parse(idPart)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed operation %q", r.Operation)
	}
	return id, nil
}

// Qty parses the quantity attribute.
func (r OperationPlan) Qty() (decimal.Decimal, error) {
	qty, err := decimal.NewFromString(r.Quantity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed quantity %q", r.Quantity)
	}
	return qty, nil
}

// StartTime parses the start timestamp, falling back to the end timestamp.
func (r OperationPlan) StartTime() (time.Time, error) {
	return parseEither(r.Start, r.End)
}

// EndTime parses the end timestamp, falling back to the start timestamp.
func (r OperationPlan) EndTime() (time.Time, error) {
	return parseEither(r.End, r.Start)
}

func parseEither(primary, fallback string) (time.Time, error) {
	value := primary
	if value == "" {
		value = fallback
	}
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp %q", value)
	}
	return t, nil
}

func parseID(value, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed %s %q", what, value)
	}
	return id, nil
}
