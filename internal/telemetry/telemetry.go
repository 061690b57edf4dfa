// Package telemetry wires the package-level structured logger used across
// the bcp engine. It wraps github.com/joeycumines/go-utilpkg/logiface with
// the stumpy backend so the rest of the module can log without knowing
// which backend is configured.
package telemetry

import (
	"io"
	"os"
	"sync"

	"github.com/joeycumines/go-utilpkg/logiface"
	"github.com/joeycumines/go-utilpkg/logiface/stumpy"
)

var (
	mu  sync.RWMutex
	log = newLogger(os.Stderr, logiface.LevelInformational)
)

func newLogger(w io.Writer, level logiface.Level) *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.L.WithLevel(level),
		stumpy.WithStumpy(stumpy.WithWriter(w)),
	)
}

// L returns the current package-level logger. Safe for concurrent use.
func L() *logiface.Logger[*stumpy.Event] {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Configure replaces the package-level logger, redirecting output to w at
// the given level. Nothing in the module calls it: the OutputLevel and
// LogLevel parameter-table keys do not reach it, and the logger stays at
// the Informational level on stderr unless a caller configures it.
func Configure(w io.Writer, level logiface.Level) {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger(w, level)
}

// LevelFromName maps the parameter table's LogLevel enumeration
// (Silent, Statistics, Subproblem, LinearProgram, Full) onto a
// logiface.Level, ordering verbosity to match its meaning in spec.md §6.
func LevelFromName(name string) (logiface.Level, bool) {
	switch name {
	case "Silent":
		return logiface.LevelEmergency, true
	case "Statistics":
		return logiface.LevelNotice, true
	case "Subproblem":
		return logiface.LevelInformational, true
	case "LinearProgram":
		return logiface.LevelDebug, true
	case "Full":
		return logiface.LevelTrace, true
	default:
		return 0, false
	}
}
