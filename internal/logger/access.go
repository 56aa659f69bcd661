package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ISOMillis matches the ISO-8601 form used for access log timestamps.
const ISOMillis = "2006-01-02T15:04:05.000Z07:00"

// AccessLog records one line per inbound request:
//
//	[2024-01-01T10:00:00.000Z] POST /api/tasks - {"title":"Buy milk"}
//
// Every configured output receives each line through a single serialised
// write, so concurrent requests never interleave within a line.
type AccessLog struct {
	logger zerolog.Logger
	file   *os.File
	now    func() time.Time
}

// OpenAccessLog appends to the file at path (creating it if needed) and
// mirrors every line to console.
func OpenAccessLog(path string, console io.Writer) (*AccessLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open access log %s: %w", path, err)
	}
	a := NewAccessLog(console, f)
	a.file = f
	return a, nil
}

// NewAccessLog writes plain access lines to each of outs.
func NewAccessLog(outs ...io.Writer) *AccessLog {
	writers := make([]io.Writer, 0, len(outs))
	for _, out := range outs {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:           out,
			NoColor:       true,
			PartsOrder:    []string{zerolog.MessageFieldName},
			FormatMessage: func(i interface{}) string { return fmt.Sprint(i) },
		})
	}
	return &AccessLog{
		logger: zerolog.New(zerolog.SyncWriter(zerolog.MultiLevelWriter(writers...))),
		now:    time.Now,
	}
}

// Record writes the access line for a single request.
func (a *AccessLog) Record(method, url string, body []byte) {
	line := fmt.Sprintf("[%s] %s %s - %s", a.now().UTC().Format(ISOMillis), method, url, formatBody(body))
	a.logger.Log().Msg(line)
}

// Handler is middleware that records every request before passing it on.
// The body is buffered and restored so downstream handlers can read it.
func (a *AccessLog) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			var err error
			body, err = io.ReadAll(r.Body)
			if err != nil {
				log.Warn().Err(err).Str("url", r.URL.RequestURI()).Msg("Failed to read request body for access log")
			}
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		a.Record(r.Method, r.URL.RequestURI(), body)
		next.ServeHTTP(w, r)
	})
}

// Close releases the underlying file, if any.
func (a *AccessLog) Close() error {
	if a.file == nil {
		return nil
	}
	return a.file.Close()
}

// formatBody renders a request body as compact JSON. Empty bodies become {}
// and anything that is not JSON is quoted as a JSON string.
func formatBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err == nil {
		return buf.String()
	}
	quoted, _ := json.Marshal(string(trimmed))
	return string(quoted)
}
