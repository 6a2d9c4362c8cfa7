package export

import (
	"context"
	"fmt"

	"github.com/erp/planner-connector/internal/domain/partner"
)

// partnerExportName is the wire name of a partner: the id followed by the
// display name. The import side splits on the first space to recover the id.
func partnerExportName(p partner.Partner) string {
	return fmt.Sprintf("%s %s", p.ID, p.Name)
}

// writeCustomers emits root customers only. Child customers are reachable
// through their root and emitting them separately would duplicate demand
// attribution.
func (e *Exporter) writeCustomers(ctx context.Context, s *Session, pw *planWriter) error {
	customers, err := e.repos.Partners.FindRootCustomers(ctx)
	if err != nil {
		return err
	}

	pw.raw("<!-- customers -->\n<customers>\n")
	for _, c := range customers {
		name := partnerExportName(c)
		if props := commonFieldsOf(&c); len(props) > 0 {
			pw.printf("<customer name=%s>\n", quoteAttr(name))
			writeProperties(pw, props)
			pw.raw("</customer>\n")
		} else {
			pw.printf("<customer name=%s/>\n", quoteAttr(name))
		}
	}
	pw.raw("</customers>\n")
	return pw.Err()
}

func (e *Exporter) writeSuppliers(ctx context.Context, s *Session, pw *planWriter) error {
	suppliers, err := e.repos.Partners.FindSuppliers(ctx)
	if err != nil {
		return err
	}
	if len(suppliers) == 0 {
		return nil
	}

	pw.raw("<!-- suppliers -->\n<suppliers>\n")
	for _, sup := range suppliers {
		pw.printf("<supplier name=%s/>\n", quoteAttr(partnerExportName(sup)))
	}
	pw.raw("</suppliers>\n")
	return pw.Err()
}
