package export

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/erp/planner-connector/internal/domain/shared"
)

// patternEpoch is the start date assumed for weekly attendance entries that
// carry no explicit one.
var patternEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type calendarBucket struct {
	start    time.Time
	fragment string // with a %d placeholder for the priority
}

// writeCalendar emits the working-hours calendar: one value-1 bucket per
// weekly attendance entry plus one value-0 priority-1 bucket per holiday.
// Attendance buckets get descending priorities from 1000 in ascending
// pattern-start order, so earlier-starting patterns win ties. An absent
// calendar subsystem degrades to a 24x7 default calendar.
func (e *Exporter) writeCalendar(ctx context.Context, s *Session, pw *planWriter) error {
	pw.raw("<!-- calendar -->\n<calendars>\n")

	attendances, err := e.repos.Calendars.FindAttendances(ctx, s.calendarName)
	switch {
	case errors.Is(err, shared.ErrSubsystemUnavailable):
		pw.raw("<!-- Working hours are assumed to be 24*7. -->\n")
		attendances = nil
	case err != nil:
		return err
	}

	buckets := make([]calendarBucket, 0, len(attendances))
	for _, a := range attendances {
		start := patternEpoch
		if a.DateFrom != nil {
			start = *a.DateFrom
		}
		// The source counts weekdays from Monday, the planner from Sunday.
		days := 1 << uint((a.Weekday+1)%7)
		buckets = append(buckets, calendarBucket{
			start: start,
			fragment: fmt.Sprintf(
				`<bucket start="%sT00:00:00" value="1" days="%d" priority="%%d" starttime="%s" endtime="%s"/>`+"\n",
				start.Format("2006-01-02"), days, isoMinutes(a.HourFrom), isoMinutes(a.HourTo)),
		})
	}

	if len(buckets) > 0 {
		sort.SliceStable(buckets, func(i, j int) bool {
			return buckets[i].start.Before(buckets[j].start)
		})
		pw.printf("<calendar name=%s default=\"0\"><buckets>\n", quoteAttr(s.calendarName))
		priority := 1000
		for _, b := range buckets {
			pw.printf(b.fragment, priority)
			priority--
		}
	} else {
		pw.printf("<calendar name=%s default=\"1\"><buckets>\n", quoteAttr(s.calendarName))
	}

	holidays, err := e.repos.Calendars.FindHolidays(ctx)
	switch {
	case errors.Is(err, shared.ErrSubsystemUnavailable):
		pw.raw("<!-- No public holiday source is available. -->\n")
	case err != nil:
		return err
	default:
		for _, h := range holidays {
			day := h.Date.Format("2006-01-02")
			next := h.Date.AddDate(0, 0, 1).Format("2006-01-02")
			pw.printf("<bucket start=\"%sT00:00:00\" end=\"%sT00:00:00\" value=\"0\" priority=\"1\"/>\n", day, next)
		}
	}

	pw.raw("</buckets></calendar></calendars>\n")
	return pw.Err()
}
