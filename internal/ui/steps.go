package ui

import (
	"fmt"
	"io"
)

// Steps prints "[n/total] ..." progress for a sequential multi-stage
// operation. Stages that turn out to be no-ops can be skipped; the counter
// still advances so the numbering stays stable.
type Steps struct {
	out   io.Writer
	total int
	n     int
}

// NewSteps creates a step printer for an operation with total stages.
func NewSteps(out io.Writer, total int) *Steps {
	return &Steps{out: out, total: total}
}

// Start advances to the next stage and announces it.
func (s *Steps) Start(format string, args ...any) {
	s.n++
	_, _ = fmt.Fprintf(s.out, "[%d/%d] %s\n", s.n, s.total, fmt.Sprintf(format, args...))
}

// Skip advances past a stage without output.
func (s *Steps) Skip() {
	s.n++
}

// Log prints an indented detail line under the current stage.
func (s *Steps) Log(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, "    %s\n", fmt.Sprintf(format, args...))
}
