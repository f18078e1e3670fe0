package generator

import "github.com/aretw0/exprgen/pkg/domain"

// NumericPhase tracks the position of the cursor relative to a numeric literal.
type NumericPhase int

const (
	PhaseNone NumericPhase = iota
	PhaseInteger
	PhaseDecimal
)

func (p NumericPhase) String() string {
	switch p {
	case PhaseInteger:
		return "integer"
	case PhaseDecimal:
		return "decimal"
	default:
		return "none"
	}
}

// Context is the mutable state of a single expression under construction.
// A Context must not be shared between expressions.
type Context struct {
	Phase    NumericPhase
	brackets []string
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{}
}

// Push records an open bracket.
func (c *Context) Push(open string) {
	c.brackets = append(c.brackets, open)
}

// Pop removes and returns the innermost open bracket.
func (c *Context) Pop() (string, bool) {
	if len(c.brackets) == 0 {
		return "", false
	}
	top := c.brackets[len(c.brackets)-1]
	c.brackets = c.brackets[:len(c.brackets)-1]
	return top, true
}

// Top returns the innermost open bracket without removing it.
func (c *Context) Top() (string, bool) {
	if len(c.brackets) == 0 {
		return "", false
	}
	return c.brackets[len(c.brackets)-1], true
}

// Depth returns the number of unclosed brackets.
func (c *Context) Depth() int {
	return len(c.brackets)
}

// Advance moves the numeric phase past an accepted token.
func (c *Context) Advance(t domain.Token) {
	switch t.Category {
	case domain.CategoryDigit:
		if c.Phase == PhaseNone {
			c.Phase = PhaseInteger
		}
	case domain.CategoryDecimalPoint:
		if c.Phase == PhaseInteger {
			c.Phase = PhaseDecimal
		}
	case domain.CategoryFunction,
		domain.CategoryOpenRound, domain.CategoryOpenCurly,
		domain.CategoryCloseRound, domain.CategoryCloseCurly:
		// brackets only touch the stack
	default:
		c.Phase = PhaseNone
	}
}
