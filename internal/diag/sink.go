// Package diag collects and logs the non-fatal diagnostics the core can
// surface (spec §6 "Diagnostics", §9 "Global warning state ... replaced by
// an explicit sink").
//
// Grounded on cmd/hiveexplorer/logger/logger.go: a package-level logger
// that discards output until Init is called, plus Debug/Info/Warn/Error
// wrappers. Unlike the teacher's global logger, diagnostic collection
// itself is instance-scoped on Sink, not a package var, so callers can run
// several files through the core concurrently (spec §5) without one file's
// warnings clobbering another's.
package diag

import (
	"io"
	"log/slog"
	"os"

	"github.com/dvp2015/numjuggler/pkg/types"
)

// L is the default logger, discarding all output until Init enables it.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Enabled bool
	Level   slog.Level
	Writer  io.Writer // defaults to os.Stderr when Enabled and Writer is nil
}

// Init reconfigures the package-level default logger L.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	L = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: opts.Level}))
}

// Sink accumulates Diagnostic values for one parse/rewrite run and mirrors
// each to a *slog.Logger as it arrives. The zero Sink is usable: it logs
// through the package-level default L.
type Sink struct {
	Logger      *slog.Logger
	Diagnostics []types.Diagnostic
}

// NewSink returns a Sink logging through L.
func NewSink() *Sink {
	return &Sink{Logger: L}
}

func (s *Sink) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return L
}

// Report records a diagnostic and logs it at Warn level.
func (s *Sink) Report(kind types.DiagnosticKind, line int, message string) {
	d := types.Diagnostic{Kind: kind, Line: line, Message: message}
	s.Diagnostics = append(s.Diagnostics, d)
	s.logger().Warn(message, "kind", kind.String(), "line", line)
}

// Has reports whether any recorded diagnostic has the given kind.
func (s *Sink) Has(kind types.DiagnosticKind) bool {
	for _, d := range s.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}
