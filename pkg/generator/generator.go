package generator

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/exprgen/internal/logging"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/matrix"
)

// Generator produces expressions from a transition matrix.
// A Generator is not safe for concurrent use; give each worker its own.
type Generator struct {
	matrix *matrix.Matrix
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source. Defaults to a randomly seeded PCG.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator over m.
func New(m *matrix.Matrix, opts ...Option) *Generator {
	g := &Generator{matrix: m}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	return g
}

// Matrix returns the table the generator walks.
func (g *Generator) Matrix() *matrix.Matrix {
	return g.matrix
}

// Select picks the next token index among candidates.
//
// With wantValid false the pick is uniform and unchecked. Otherwise picks are
// drawn until one is legal after prev, respects the decimal and bracket state
// of ctx and, when isFinal, may end an expression. ctx is updated for the
// accepted token only. domain.ErrSelectionExhausted is returned once
// MaxAttempts picks have been rejected.
func (g *Generator) Select(wantValid bool, prev matrix.Row, candidates []int, isFinal bool, ctx *Context) (int, error) {
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: no candidates", domain.ErrSelectionExhausted)
	}

	if !wantValid {
		return candidates[g.rng.IntN(len(candidates))], nil
	}

	choice, ok := Retry(MaxAttempts, func() (int, bool) {
		index := candidates[g.rng.IntN(len(candidates))]
		return index, g.accept(prev, index, isFinal, ctx)
	})
	if !ok {
		return 0, domain.ErrSelectionExhausted
	}
	return choice, nil
}

func (g *Generator) accept(prev matrix.Row, index int, isFinal bool, ctx *Context) bool {
	if !g.matrix.Allowed(prev, index) {
		return false
	}

	tok := g.matrix.Token(index)

	if tok.Category == domain.CategoryDecimalPoint && ctx.Phase != PhaseInteger {
		return false
	}

	if tok.Category.IsClose() {
		top, ok := ctx.Top()
		if !ok || !tok.Matches(top) {
			return false
		}
	}

	open, pushed := tok.Bracket()
	if pushed {
		ctx.Push(open)
	}

	if isFinal && !g.matrix.CanEnd(index) {
		if pushed {
			ctx.Pop()
		}
		return false
	}

	if tok.Category.IsClose() {
		ctx.Pop()
	}
	ctx.Advance(tok)
	return true
}

// Assemble builds one expression of roughly targetLength characters.
//
// The start token is drawn against the start row, middle tokens against the
// row of the previous token while the expression is shorter than
// targetLength-1, and one final token must also be end-eligible. Brackets
// still open are then closed, so the result may be longer than targetLength.
// Any selection failure aborts the whole expression.
func (g *Generator) Assemble(wantValid bool, targetLength int, candidates []int) (string, error) {
	_, expr, err := g.AssembleTokens(wantValid, targetLength, candidates)
	return expr, err
}

// AssembleTokens is Assemble that also returns the selected token indices,
// in order. Closing brackets added by patching have no index.
func (g *Generator) AssembleTokens(wantValid bool, targetLength int, candidates []int) ([]int, string, error) {
	ctx := NewContext()

	var (
		b       strings.Builder
		indices []int
	)
	length := 0
	appendToken := func(index int) {
		s := g.matrix.Token(index).Render()
		b.WriteString(s)
		length += utf8.RuneCountInString(s)
		indices = append(indices, index)
	}

	index, err := g.Select(wantValid, matrix.RowStart, candidates, false, ctx)
	if err != nil {
		return nil, "", err
	}
	appendToken(index)

	for length < targetLength-1 {
		index, err = g.Select(wantValid, matrix.TokenRow(index), candidates, false, ctx)
		if err != nil {
			g.logger.Debug("expression abandoned", "partial", b.String(), "err", err)
			return nil, "", err
		}
		appendToken(index)
	}

	index, err = g.Select(wantValid, matrix.TokenRow(index), candidates, true, ctx)
	if err != nil {
		g.logger.Debug("expression abandoned at final token", "partial", b.String(), "err", err)
		return nil, "", err
	}
	appendToken(index)

	for open, ok := ctx.Pop(); ok; open, ok = ctx.Pop() {
		b.WriteString(domain.Closing(open))
	}

	return indices, b.String(), nil
}

// Random returns a string of n characters drawn uniformly from charset.
func (g *Generator) Random(n int, charset string) string {
	runes := []rune(charset)
	if len(runes) == 0 || n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = runes[g.rng.IntN(len(runes))]
	}
	return string(out)
}
