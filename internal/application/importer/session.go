package importer

import (
	"fmt"

	"github.com/erp/planner-connector/internal/domain/inventory"
	"github.com/erp/planner-connector/internal/domain/trade"
	"github.com/google/uuid"
)

// OriginMarker tags every record the import creates, so a later full
// refresh can purge exactly its own previous proposals.
const OriginMarker = "frePPLe"

type poKey struct {
	supplierID uuid.UUID
	locationID uuid.UUID
}

type poLineKey struct {
	productID uuid.UUID
	order     poKey
}

type routeKey struct {
	srcID  uuid.UUID
	destID uuid.UUID
}

// Session holds the correlation maps and counters of one import run. The
// maps let repeated records find their aggregation target without
// re-querying; they are run-scoped by contract and must never be shared
// across runs.
type Session struct {
	orders    map[poKey]*trade.PurchaseOrder
	lines     map[poLineKey]*trade.PurchaseOrderLine
	shipments map[routeKey]*inventory.Shipment

	countPO int
	countDO int
	countMO int

	messages []string
}

func newSession() *Session {
	return &Session{
		orders:    make(map[poKey]*trade.PurchaseOrder),
		lines:     make(map[poLineKey]*trade.PurchaseOrderLine),
		shipments: make(map[routeKey]*inventory.Shipment),
	}
}

func (s *Session) addMessage(format string, args ...any) {
	s.messages = append(s.messages, fmt.Sprintf(format, args...))
}

// Summary is the audit report of one import run: per-type counts with the
// per-record error messages interleaved, so an operator can judge partial
// success.
type Summary struct {
	Purchases     int
	Moves         int
	Manufacturing int
	Messages      []string
}

func (s *Session) summary() *Summary {
	messages := append(s.messages,
		fmt.Sprintf("Processed %d uploaded procurement orders", s.countPO),
		fmt.Sprintf("Processed %d uploaded stock moves", s.countDO),
		fmt.Sprintf("Processed %d uploaded manufacturing orders", s.countMO),
	)
	return &Summary{
		Purchases:     s.countPO,
		Moves:         s.countDO,
		Manufacturing: s.countMO,
		Messages:      messages,
	}
}
