package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// planWriter wraps the output stream with sticky error handling so that
// stages can emit fragments without checking every write. Stream failures
// are the only fatal errors of an export run.
type planWriter struct {
	w   io.Writer
	err error
}

func newPlanWriter(w io.Writer) *planWriter {
	return &planWriter{w: w}
}

func (pw *planWriter) raw(s string) {
	if pw.err != nil {
		return
	}
	_, pw.err = io.WriteString(pw.w, s)
}

func (pw *planWriter) printf(format string, args ...any) {
	if pw.err != nil {
		return
	}
	_, pw.err = fmt.Fprintf(pw.w, format, args...)
}

func (pw *planWriter) Err() error {
	return pw.err
}

// quoteAttr escapes a string for use as an XML attribute value and wraps it
// in double quotes.
func quoteAttr(s string) string {
	var buf bytes.Buffer
	buf.WriteByte('"')
	// EscapeText also escapes the double quote, so wrapping is safe.
	_ = xml.EscapeText(&buf, []byte(s))
	buf.WriteByte('"')
	return buf.String()
}

// isoDays renders a day count as an ISO 8601 duration.
func isoDays(days int) string {
	return fmt.Sprintf("P%dD", days)
}

// isoMinutes renders a fractional hour count as an ISO 8601 duration in
// whole minutes, the granularity calendar buckets use for time of day.
func isoMinutes(hours decimal.Decimal) string {
	return fmt.Sprintf("PT%dM", hours.Mul(decimal.NewFromInt(60)).Round(0).IntPart())
}

// isoFloatTime renders a fractional hour count as a full ISO 8601 duration
// with hour, minute and second parts.
func isoFloatTime(hours decimal.Decimal) string {
	totalSeconds := hours.Mul(decimal.NewFromInt(3600)).Round(0).IntPart()
	return fmt.Sprintf("PT%dH%dM%dS", totalSeconds/3600, (totalSeconds%3600)/60, totalSeconds%60)
}

const timeLayout = "2006-01-02T15:04:05"
