package bcp

import (
	"fmt"
	"io"
)

// TreeLogWriter emits the line-oriented tree-visualization event stream
// of spec.md §6 ("Tree-visualization log (optional)"): `N parent child
// color` for a new node, `P id color` for a repaint, `L value` / `U
// value` for the global lower/upper bound, `I id "..."` for per-node
// info. It is an optional library capability (spec.md §1 excludes a
// viewer application, not the event stream itself). When configured via
// WithTreeLog, Master calls NewNode for each child created in Optimize,
// and UpperBound (Min) or LowerBound (Max) when the primal bound improves.
type TreeLogWriter interface {
	NewNode(parent, child Id, color string) error
	Repaint(id Id, color string) error
	LowerBound(value float64) error
	UpperBound(value float64) error
	Info(id Id, message string) error
}

// lineTreeLog is the default TreeLogWriter, writing the exact grammar of
// spec.md §6 to w with each line prefixed by the elapsed CPU time of
// timer, matching the "written to a file with a CPU-time prefix per
// line" variant; with a nil timer lines carry no prefix. The "$"-prefixed
// variant is not produced.
type lineTreeLog struct {
	w     io.Writer
	timer *Timer
}

// NewLineTreeLog returns a TreeLogWriter that writes to w, prefixing
// every line with the elapsed CPU time reported by timer.
func NewLineTreeLog(w io.Writer, timer *Timer) TreeLogWriter {
	return &lineTreeLog{w: w, timer: timer}
}

func (l *lineTreeLog) prefix() string {
	if l.timer == nil {
		return ""
	}
	return fmt.Sprintf("%.3f ", l.timer.Cpu().Seconds())
}

func (l *lineTreeLog) NewNode(parent, child Id, color string) error {
	_, err := fmt.Fprintf(l.w, "%sN %s %s %s\n", l.prefix(), parent, child, color)
	return err
}

func (l *lineTreeLog) Repaint(id Id, color string) error {
	_, err := fmt.Fprintf(l.w, "%sP %s %s\n", l.prefix(), id, color)
	return err
}

func (l *lineTreeLog) LowerBound(value float64) error {
	_, err := fmt.Fprintf(l.w, "%sL %g\n", l.prefix(), value)
	return err
}

func (l *lineTreeLog) UpperBound(value float64) error {
	_, err := fmt.Fprintf(l.w, "%sU %g\n", l.prefix(), value)
	return err
}

func (l *lineTreeLog) Info(id Id, message string) error {
	_, err := fmt.Fprintf(l.w, "%sI %s %q\n", l.prefix(), id, message)
	return err
}
