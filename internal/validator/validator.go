package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/matrix"
)

// Report lists the findings of a matrix crawl.
type Report struct {
	// Reachable holds every token reachable from a start-eligible token.
	Reachable []string
	// Unreachable holds tokens no walk can ever emit.
	Unreachable []string
	// DeadEnds holds tokens that have no successor and may not end an expression.
	// A valid-mode walk that reaches one always aborts.
	DeadEnds []string
}

// Warnings renders the non-fatal findings.
func (r Report) Warnings() []string {
	var out []string
	for _, g := range r.Unreachable {
		out = append(out, fmt.Sprintf("Unreachable token: '%s'", g))
	}
	for _, g := range r.DeadEnds {
		out = append(out, fmt.Sprintf("Dead end: '%s' has no successor and cannot end an expression", g))
	}
	return out
}

// ValidateMatrix crawls the table from every start-eligible token.
// It fails when no token may start an expression or no end-eligible token is reachable.
func ValidateMatrix(m *matrix.Matrix) (Report, error) {
	var report Report
	var errors []string

	visited := make(map[int]bool)
	var queue []int
	for _, idx := range m.Candidates() {
		if m.CanStart(idx) {
			queue = append(queue, idx)
		}
	}
	if len(queue) == 0 {
		errors = append(errors, "No start-eligible token")
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, next := range m.Candidates() {
			if m.CanFollow(current, next) && !visited[next] {
				queue = append(queue, next)
			}
		}
	}

	endReachable := false
	for _, tok := range m.Tokens() {
		label := tok.Render()

		if visited[tok.Index] {
			report.Reachable = append(report.Reachable, label)
			if m.CanEnd(tok.Index) {
				endReachable = true
			}
		} else {
			report.Unreachable = append(report.Unreachable, label)
		}

		if !m.CanEnd(tok.Index) && !hasSuccessor(m, tok) {
			report.DeadEnds = append(report.DeadEnds, label)
		}
	}

	if !endReachable && len(report.Reachable) > 0 {
		errors = append(errors, "No end-eligible token is reachable from a start token")
	}

	if len(errors) > 0 {
		return report, fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrInvalidMatrix, len(errors), strings.Join(errors, "\n- "))
	}

	return report, nil
}

func hasSuccessor(m *matrix.Matrix, tok domain.Token) bool {
	for _, next := range m.Candidates() {
		if m.CanFollow(tok.Index, next) {
			return true
		}
	}
	return false
}
