// Package transport frames the rendered metrics for the connection the
// exporter was started on. Under inetd the connection is stdout; under
// systemd socket activation it is the first passed file descriptor.
// An optional HTTP status line and header make the output a valid response
// for scrapers that speak HTTP.
package transport

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/coreos/go-systemd/v22/activation"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/exporter/internal/exposition"
	"github.com/Guliveer/vitalis/exporter/internal/models"
)

// HTTPHeader is written ahead of the body unless suppressed.
const HTTPHeader = "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\n\r\n"

// Responder writes one complete response.
type Responder struct {
	w              io.Writer
	suppressHeader bool
	logger         *zap.Logger
}

// New creates a Responder writing to w.
func New(w io.Writer, suppressHeader bool, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{w: w, suppressHeader: suppressHeader, logger: logger}
}

// Send writes the header (if enabled) and the records, then flushes.
// A write error is returned as is; nothing is retried.
func (r *Responder) Send(records []models.MetricRecord) error {
	bw := bufio.NewWriter(r.w)
	if !r.suppressHeader {
		if _, err := bw.WriteString(HTTPHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := exposition.Render(bw, records); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush response: %w", err)
	}
	r.logger.Debug("Response written",
		zap.Int("records", len(records)),
		zap.Bool("http_header", !r.suppressHeader))
	return nil
}

// Output returns the connection to answer on. When the process was socket
// activated the first passed descriptor is used and any others are closed;
// otherwise stdout is returned. The bool reports socket activation.
func Output(logger *zap.Logger) (*os.File, bool) {
	files := activation.Files(true)
	if len(files) == 0 {
		return os.Stdout, false
	}
	for _, extra := range files[1:] {
		extra.Close()
	}
	if logger != nil && len(files) > 1 {
		logger.Warn("Ignoring extra activation sockets", zap.Int("count", len(files)-1))
	}
	return files[0], true
}
