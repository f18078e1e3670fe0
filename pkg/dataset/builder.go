package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/aretw0/exprgen/internal/logging"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/aretw0/exprgen/pkg/generator"
	"github.com/aretw0/exprgen/pkg/matrix"
	"github.com/aretw0/exprgen/pkg/observability"
	"github.com/aretw0/exprgen/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PrintableCharset is the alphabet of random invalid strings: letters,
// digits and ASCII punctuation.
const PrintableCharset = "0123456789" +
	"abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// DefaultRandomShare is the fraction of the invalid set drawn as random strings.
const DefaultRandomShare = 0.1

// Builder produces labelled datasets.
// Builder is safe for concurrent use; each build draws fresh worker seeds.
type Builder struct {
	matrix      *matrix.Matrix
	evaluator   ports.Evaluator
	logger      *slog.Logger
	metrics     *observability.Metrics
	workers     int
	maxAttempts int64
	randomShare float64
	charset     string

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Builder.
type Option func(*Builder)

// WithSeed makes builds reproducible when a single worker is used.
func WithSeed(seed uint64) Option {
	return func(b *Builder) {
		b.rng = rand.New(rand.NewPCG(seed, seed))
	}
}

// WithWorkers sets the number of goroutines producing candidates.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithMaxAttempts caps the candidates tried per set. Zero means unbounded.
func WithMaxAttempts(n int) Option {
	return func(b *Builder) {
		b.maxAttempts = int64(n)
	}
}

// WithRandomShare sets the fraction of the invalid set made of random strings.
func WithRandomShare(share float64) Option {
	return func(b *Builder) {
		b.randomShare = share
	}
}

// WithCharset overrides the alphabet of random invalid strings.
func WithCharset(charset string) Option {
	return func(b *Builder) {
		b.charset = charset
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithMetrics records candidate outcomes and set sizes.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Builder) {
		b.metrics = m
	}
}

// NewBuilder creates a Builder over a matrix and an evaluator.
func NewBuilder(m *matrix.Matrix, eval ports.Evaluator, opts ...Option) *Builder {
	b := &Builder{
		matrix:      m,
		evaluator:   eval,
		workers:     1,
		randomShare: DefaultRandomShare,
		charset:     PrintableCharset,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.workers < 1 {
		b.workers = 1
	}
	if b.randomShare < 0 || b.randomShare > 1 || math.IsNaN(b.randomShare) {
		b.randomShare = DefaultRandomShare
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	return b
}

// Build produces both sets of a request.
// On error the rows gathered so far are returned alongside it.
func (b *Builder) Build(ctx context.Context, req Request) (*domain.Dataset, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ds := &domain.Dataset{RunID: uuid.NewString()}
	logger := b.logger.With("run_id", ds.RunID)

	valid, longest, err := b.BuildValid(ctx, req.Valid, req.MaxLength)
	ds.Valid, ds.Longest = valid, longest
	if err != nil {
		return ds, fmt.Errorf("valid set: %w", err)
	}
	logger.Info("valid set complete", "rows", len(valid), "longest", longest)

	invalid, err := b.BuildInvalid(ctx, req.Invalid, req.MaxLength)
	ds.Invalid = invalid
	if err != nil {
		return ds, fmt.Errorf("invalid set: %w", err)
	}
	logger.Info("invalid set complete", "rows", len(invalid))

	return ds, nil
}

// BuildValid generates n expressions that evaluate to finite values.
// It also returns the largest expression-plus-label length among them.
func (b *Builder) BuildValid(ctx context.Context, n, maxLength int) ([]domain.Row, int, error) {
	candidates := b.matrix.Candidates()

	rows, err := b.fill(ctx, domain.SetValid, n, func(ctx context.Context, g *generator.Generator) (domain.Row, bool) {
		expr, err := g.Assemble(true, maxLength, candidates)
		if err != nil {
			b.metrics.ObserveCandidate(string(domain.SetValid), observability.CandidateExhausted)
			return domain.Row{}, false
		}
		result := b.evaluator.Evaluate(ctx, expr)
		if !result.OK {
			b.logger.Debug("valid-shaped expression did not evaluate", "expression", expr)
			b.metrics.ObserveCandidate(string(domain.SetValid), observability.CandidateRejected)
			return domain.Row{}, false
		}
		return domain.NewRow(expr, result), true
	})

	longest := 0
	for _, row := range rows {
		longest = max(longest, len(row.Expression)+len(row.Label))
	}
	b.metrics.SetRows(string(domain.SetValid), len(rows))
	return rows, longest, err
}

// BuildInvalid generates n strings that fail to evaluate. Most come from
// invalid-mode generation; a share (10% by default) are random strings.
func (b *Builder) BuildInvalid(ctx context.Context, n, maxLength int) ([]domain.Row, error) {
	random := int(math.Floor(float64(n) * b.randomShare))
	adjacency := n - random
	candidates := b.matrix.Candidates()

	rows, err := b.fill(ctx, domain.SetInvalid, adjacency, func(ctx context.Context, g *generator.Generator) (domain.Row, bool) {
		expr, err := g.Assemble(false, maxLength, candidates)
		if err != nil {
			b.metrics.ObserveCandidate(string(domain.SetInvalid), observability.CandidateExhausted)
			return domain.Row{}, false
		}
		return b.acceptInvalid(ctx, expr)
	})
	if err != nil {
		b.metrics.SetRows(string(domain.SetInvalid), len(rows))
		return rows, err
	}

	randomRows, err := b.fill(ctx, domain.SetInvalid, random, func(ctx context.Context, g *generator.Generator) (domain.Row, bool) {
		return b.acceptInvalid(ctx, g.Random(maxLength, b.charset))
	})
	rows = append(rows, randomRows...)
	b.metrics.SetRows(string(domain.SetInvalid), len(rows))
	return rows, err
}

// acceptInvalid keeps a candidate only when it fails to evaluate.
func (b *Builder) acceptInvalid(ctx context.Context, expr string) (domain.Row, bool) {
	result := b.evaluator.Evaluate(ctx, expr)
	if result.OK {
		b.logger.Debug("invalid candidate evaluated", "expression", expr, "value", result.Value)
		b.metrics.ObserveCandidate(string(domain.SetInvalid), observability.CandidateRejected)
		return domain.Row{}, false
	}
	return domain.NewRow(expr, result), true
}

type produceFunc func(ctx context.Context, g *generator.Generator) (domain.Row, bool)

// fill runs produce on the configured workers until want rows are accepted.
func (b *Builder) fill(ctx context.Context, set domain.Set, want int, produce produceFunc) ([]domain.Row, error) {
	if want <= 0 {
		return []domain.Row{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	accepted := make(chan domain.Row)
	var attempts atomic.Int64
	exhausted := make(chan struct{})
	var once sync.Once

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < b.workers; w++ {
		gen := generator.New(b.matrix,
			generator.WithRand(b.workerRand()),
			generator.WithLogger(b.logger),
		)
		g.Go(func() error {
			for gctx.Err() == nil {
				if b.maxAttempts > 0 && attempts.Add(1) > b.maxAttempts {
					once.Do(func() { close(exhausted) })
					return nil
				}
				row, ok := produce(gctx, gen)
				if !ok {
					continue
				}
				select {
				case accepted <- row:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	rows := make([]domain.Row, 0, want)
	var err error
collect:
	for len(rows) < want {
		select {
		case row := <-accepted:
			rows = append(rows, row)
			b.metrics.ObserveCandidate(string(set), observability.CandidateAccepted)
		case <-exhausted:
			err = fmt.Errorf("%w after %d candidates (%d/%d accepted)", domain.ErrAttemptsExhausted, b.maxAttempts, len(rows), want)
			break collect
		case <-ctx.Done():
			err = ctx.Err()
			break collect
		}
	}

	cancel()
	if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
		err = errors.Join(err, werr)
	}
	return rows, err
}

func (b *Builder) workerRand() *rand.Rand {
	b.mu.Lock()
	defer b.mu.Unlock()
	return rand.New(rand.NewPCG(b.rng.Uint64(), b.rng.Uint64()))
}
