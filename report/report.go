package report

import (
	"fmt"
	"strings"

	"github.com/npillmayer/csstree/syntax"
)

// Severity of a problem.
type Severity uint8

// Problems with severity Error are fatal for a run.
const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// SeverityFromString parses a severity name. Unknown names map to Error.
func SeverityFromString(s string) Severity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return Info
	case "warning", "warn":
		return Warning
	}
	return Error
}

// Problem is a single validation finding.
type Problem struct {
	Severity     Severity
	Message      string
	Line, Column int
	Unit         syntax.Node // unit the problem refers to, may be nil
}

func (p Problem) String() string {
	return fmt.Sprintf("%s at %d:%d: %s", p.Severity, p.Line, p.Column, p.Message)
}

// Manager is the sink validators report problems to.
// The zero value is ready to use and records an unlimited number of problems.
type Manager struct {
	problems []Problem
	limit    int
	dropped  int
	errors   int
}

// NewManager creates a manager recording at most limit problems.
// A limit of 0 means no limit.
func NewManager(limit int) *Manager {
	return &Manager{limit: limit}
}

// Report records a problem about unit with severity sev.
func (m *Manager) Report(unit syntax.Node, sev Severity, msg string) {
	p := Problem{Severity: sev, Message: msg, Line: -1, Column: -1, Unit: unit}
	if !syntax.IsNil(unit) {
		p.Line, p.Column = unit.Pos()
	}
	m.add(p)
}

// Errorf records a fatal problem about unit.
func (m *Manager) Errorf(unit syntax.Node, format string, args ...interface{}) {
	m.Report(unit, Error, fmt.Sprintf(format, args...))
}

// Warnf records a warning about unit.
func (m *Manager) Warnf(unit syntax.Node, format string, args ...interface{}) {
	m.Report(unit, Warning, fmt.Sprintf(format, args...))
}

// Infof records an informational message about unit.
func (m *Manager) Infof(unit syntax.Node, format string, args ...interface{}) {
	m.Report(unit, Info, fmt.Sprintf(format, args...))
}

func (m *Manager) add(p Problem) {
	if p.Severity == Error {
		m.errors++
	}
	if m.limit > 0 && len(m.problems) >= m.limit {
		m.dropped++
		return
	}
	tracer().Debugf("%s", p)
	m.problems = append(m.problems, p)
}

// Problems returns the recorded problems, in order of reporting.
func (m *Manager) Problems() []Problem {
	return m.problems
}

// HasErrors is true if any fatal problem has been reported, including problems
// dropped because of the limit.
func (m *Manager) HasErrors() bool {
	return m.errors > 0
}

// Dropped returns the number of problems not recorded because of the limit.
func (m *Manager) Dropped() int {
	return m.dropped
}

// Summarize returns a SummaryError if any fatal problem has been reported,
// nil otherwise.
func (m *Manager) Summarize() error {
	if !m.HasErrors() {
		return nil
	}
	return &SummaryError{Problems: m.problems, Errors: m.errors, Dropped: m.dropped}
}

// SummaryError is raised at the end of a run with fatal problems.
type SummaryError struct {
	Problems []Problem
	Errors   int // number of fatal problems
	Dropped  int // number of problems not recorded
}

func (e *SummaryError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d fatal problem(s) found", e.Errors)
	for _, p := range e.Problems {
		b.WriteString("\n  ")
		b.WriteString(p.String())
	}
	if e.Dropped > 0 {
		fmt.Fprintf(&b, "\n  … and %d more", e.Dropped)
	}
	return b.String()
}
