package export

import "context"

// writeWorkcenters emits the production resources. All workcenters live at
// the configured manufacturing location; capacity is modeled as a single
// unit per resource.
func (e *Exporter) writeWorkcenters(ctx context.Context, s *Session, pw *planWriter) error {
	workcenters, err := e.repos.Workcenters.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(workcenters) == 0 {
		return nil
	}

	pw.raw("<!-- workcenters -->\n<resources>\n")
	for _, wc := range workcenters {
		s.workcenterNames[wc.ID] = wc.Name
		pw.printf("<resource name=%s maximum=\"1\" cost=\"%s\"><location name=%s/></resource>\n",
			quoteAttr(wc.Name), wc.CostHour.StringFixed(4), quoteAttr(s.mfgLocation))
	}
	pw.raw("</resources>\n")
	return pw.Err()
}
