// Package exposition renders metric records in the plain text exposition
// format scraped by pull-based collectors. Only sample lines are written:
// `name{label="value",...} value`. No HELP or TYPE comments are emitted.
package exposition

import (
	"io"
	"strings"

	"github.com/Guliveer/vitalis/exporter/internal/models"
)

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// AppendRecord appends one exposition line for r, including the newline.
func AppendRecord(b []byte, r models.MetricRecord) []byte {
	b = append(b, r.Name...)
	if len(r.Labels) > 0 {
		b = append(b, '{')
		for i, l := range r.Labels {
			if i > 0 {
				b = append(b, ',')
			}
			b = append(b, l.Name...)
			b = append(b, '=', '"')
			b = append(b, labelEscaper.Replace(l.Value)...)
			b = append(b, '"')
		}
		b = append(b, '}')
	}
	b = append(b, ' ')
	b = r.Value.AppendText(b)
	return append(b, '\n')
}

// Render writes every record to w in the given order with a single write.
func Render(w io.Writer, records []models.MetricRecord) error {
	var b []byte
	for _, r := range records {
		b = AppendRecord(b, r)
	}
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	return err
}
