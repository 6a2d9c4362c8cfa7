package export

import (
	"context"
	"fmt"
	"io"

	"github.com/erp/planner-connector/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Run modes of the connector.
const (
	// ModeFull transfers every object loaded with a planning run.
	ModeFull = 1
	// ModeIncremental transfers only slow-changing data, suitable for
	// scheduled runs at a quiet moment.
	ModeIncremental = 2
)

// stage is one step of the export pipeline. Stages declare the stages whose
// session state they read, and the orchestrator derives the emission order
// from those declarations instead of a hand-maintained call sequence.
type stage struct {
	name  string
	needs []string
	modes []int
	run   func(ctx context.Context, s *Session, pw *planWriter) error
}

// Exporter generates the planning model document. It is safe to reuse
// across runs; all per-run state lives in the Session created by Run.
type Exporter struct {
	repos Repositories
	cfg   config.ConnectorConfig
	log   *zap.Logger
}

// NewExporter creates a new Exporter
func NewExporter(repos Repositories, cfg config.ConnectorConfig, log *zap.Logger) *Exporter {
	return &Exporter{repos: repos, cfg: cfg, log: log.Named("export")}
}

func (e *Exporter) stages() []stage {
	full := []int{ModeFull}
	both := []int{ModeFull, ModeIncremental}
	return []stage{
		{name: "calendar", modes: full, run: e.writeCalendar},
		{name: "locations", needs: []string{"calendar"}, modes: both, run: e.writeLocations},
		{name: "customers", modes: both, run: e.writeCustomers},
		{name: "suppliers", modes: full, run: e.writeSuppliers},
		{name: "workcenters", needs: []string{"locations"}, modes: full, run: e.writeWorkcenters},
		{name: "items", needs: []string{"suppliers", "locations"}, modes: both, run: e.writeItems},
		{name: "operations", needs: []string{"items", "locations", "workcenters"}, modes: full, run: e.writeOperations},
		{name: "demands", needs: []string{"items", "customers", "locations"}, modes: both, run: e.writeDemands},
		{name: "purchaseorders", needs: []string{"items", "locations", "suppliers"}, modes: full, run: e.writePurchaseOrders},
		{name: "manufacturingorders", needs: []string{"operations"}, modes: full, run: e.writeManufacturingOrders},
		{name: "orderpoints", needs: []string{"items", "locations"}, modes: full, run: e.writeOrderpoints},
		{name: "onhand", needs: []string{"items", "locations"}, modes: full, run: e.writeOnhand},
		{name: "movelines", needs: []string{"items", "locations"}, modes: full, run: e.writeMoveLines},
		{name: "stockrules", needs: []string{"locations"}, modes: full, run: e.writeStockRules},
	}
}

// sortStages orders the stages topologically, keeping declaration order
// among stages whose dependencies are already satisfied. A dependency cycle
// is a programming error and fails the run.
func sortStages(stages []stage) ([]stage, error) {
	done := make(map[string]bool, len(stages))
	var order []stage
	remaining := append([]stage(nil), stages...)
	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]
		for _, st := range remaining {
			ready := true
			for _, dep := range st.needs {
				if !done[dep] {
					ready = false
					break
				}
			}
			if ready {
				done[st.name] = true
				order = append(order, st)
				progressed = true
			} else {
				next = append(next, st)
			}
		}
		if !progressed {
			return nil, fmt.Errorf("dependency cycle among export stages: %v", stageNames(remaining))
		}
		remaining = next
	}
	return order, nil
}

func stageNames(stages []stage) []string {
	names := make([]string, len(stages))
	for i, st := range stages {
		names[i] = st.name
	}
	return names
}

// Run streams the complete planning model for the given mode to w. The
// source marker on the root element tags every object the planner creates
// from this document, so a later import can recognize its own proposals.
func (e *Exporter) Run(ctx context.Context, w io.Writer, mode int) error {
	order, err := sortStages(e.stages())
	if err != nil {
		return err
	}

	s := newSession(mode, e.cfg, e.log)
	uom, err := BuildUOMTable(ctx, e.repos.Units, e.log)
	if err != nil {
		return fmt.Errorf("building unit conversion table: %w", err)
	}
	s.uom = uom

	pw := newPlanWriter(w)
	pw.raw("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	pw.printf("<plan xmlns:xsi=\"http://www.w3.org/2001/XMLSchema-instance\" source=\"erp_%d\">\n", mode)

	for _, st := range order {
		if !stageRunsInMode(st, mode) {
			// Skipped stages still count as satisfied dependencies; their
			// session state is simply absent in this mode.
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := st.run(ctx, s, pw); err != nil {
			return fmt.Errorf("export stage %s: %w", st.name, err)
		}
	}

	pw.raw("</plan>\n")
	return pw.Err()
}

func stageRunsInMode(st stage, mode int) bool {
	for _, m := range st.modes {
		if m == mode {
			return true
		}
	}
	return false
}
