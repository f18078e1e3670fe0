package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/exprgen/internal/config"
	"github.com/aretw0/exprgen/internal/testutils"
	"github.com/aretw0/exprgen/pkg/adapters/redis"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCounts(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    dataset.Request
		wantErr string
	}{
		{name: "Valid", args: []string{"10", "5", "8"}, want: dataset.Request{Valid: 10, Invalid: 5, MaxLength: 8}},
		{name: "Wrong count", args: []string{"10", "5"}, wantErr: "must be run with 3 command line arguments"},
		{name: "Not an integer", args: []string{"10", "x", "8"}, wantErr: "All command line arguments must be integers."},
		{name: "Zero valid", args: []string{"0", "5", "8"}, wantErr: "Number of Valid expressions must be a positive integer."},
		{name: "Negative invalid", args: []string{"1", "-5", "8"}, wantErr: "Number of Invalid expressions must be a positive integer."},
		{name: "Zero length", args: []string{"1", "5", "0"}, wantErr: "Maximum expression length must be a positive integer."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCounts(tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsUsageError(err))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrintUsageError(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "Wrong count", args: []string{"1", "2"}, want: Usage + "\n"},
		{name: "Not an integer", args: []string{"a", "1", "1"}, want: "All command line arguments must be integers.\n"},
		{name: "Zero valid", args: []string{"0", "1", "1"}, want: "Number of Valid expressions must be a positive integer.\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCounts(tt.args)
			require.Error(t, err)

			var out bytes.Buffer
			PrintUsageError(&out, err)
			assert.Equal(t, tt.want, out.String())
			assert.NotContains(t, out.String(), domain.ErrInvalidArgument.Error())
		})
	}
}

func TestResolveConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exprgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: 2\noutput_dir: data\ndeadline: 2s\n"), 0644))

	seed := uint64(9)
	cfg, err := ResolveConfig(Options{ConfigPath: path, Workers: 4, Seed: &seed, Debug: true})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "data", cfg.OutputDir)
	assert.Equal(t, 2*time.Second, cfg.Deadline)
	assert.Equal(t, uint64(9), *cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)

	_, err = ResolveConfig(Options{ConfigPath: path, Workers: 1000})
	assert.ErrorContains(t, err, "'workers' must be at most 256")
}

func TestResolveMatrixPath(t *testing.T) {
	assert.Equal(t, "custom.csv", resolveMatrixPath(config.Config{Matrix: "custom.csv"}))

	dir := t.TempDir()
	t.Chdir(dir)
	assert.Equal(t, "", resolveMatrixPath(config.Config{}))

	require.NoError(t, os.WriteFile(config.DefaultMatrixPath, []byte("1,1\nstart,1\nend,1\n1,1\n"), 0644))
	assert.Equal(t, config.DefaultMatrixPath, resolveMatrixPath(config.Config{}))
}

func TestSetup_BadMatrix(t *testing.T) {
	path := testutils.WriteMatrix(t, "3,1", "start,1")

	_, err := Setup(Options{ConfigPath: filepath.Join(t.TempDir(), "none.yaml"), Matrix: path})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidMatrix)
}

func TestSetup_CustomMatrix(t *testing.T) {
	app := newApp(t, Options{Matrix: testutils.WriteMatrix(t, testutils.TinyMatrix...)})
	assert.Equal(t, 3, app.Engine.Matrix().Size())

	var buf bytes.Buffer
	Evaluate(context.Background(), app, []string{"(1)"}, &buf)
	assert.Equal(t, "(1)\t1\n", buf.String())
}

func newApp(t *testing.T, opts Options) *App {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "none.yaml")
	}
	seed := uint64(5)
	opts.Seed = &seed
	app, err := Setup(opts)
	require.NoError(t, err)
	return app
}

func TestRun_WritesFiles(t *testing.T) {
	out := t.TempDir()
	app := newApp(t, Options{OutputDir: out})

	var buf bytes.Buffer
	ds, err := Run(context.Background(), app, dataset.Request{Valid: 4, Invalid: 2, MaxLength: 5}, &buf, true)
	require.NoError(t, err)
	assert.Len(t, ds.Valid, 4)

	data, err := os.ReadFile(filepath.Join(out, "valid_expressions.csv"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
	assert.FileExists(t, filepath.Join(out, "invalid_expressions.csv"))
}

func TestRun_RedisSink(t *testing.T) {
	mr := miniredis.RunT(t)
	app := newApp(t, Options{OutputDir: t.TempDir(), RedisAddr: mr.Addr()})

	ds, err := Run(context.Background(), app, dataset.Request{Valid: 2, Invalid: 2, MaxLength: 4}, &bytes.Buffer{}, true)
	require.NoError(t, err)

	store := redis.New(mr.Addr(), "", 0)
	defer store.Close()
	rows, err := store.Load(context.Background(), ds.RunID, domain.SetInvalid)
	require.NoError(t, err)
	assert.Equal(t, ds.Invalid, rows)
}

func TestRun_RedisUnavailable(t *testing.T) {
	app := newApp(t, Options{OutputDir: t.TempDir(), RedisAddr: "127.0.0.1:1"})

	_, err := Run(context.Background(), app, dataset.Request{Valid: 1, Invalid: 1, MaxLength: 3}, &bytes.Buffer{}, true)
	assert.ErrorContains(t, err, "failed to connect to redis")
}

func TestEvaluate(t *testing.T) {
	app := newApp(t, Options{})

	var buf bytes.Buffer
	Evaluate(context.Background(), app, []string{"2^10", "log(0)", "{1+2}*3"}, &buf)
	assert.Equal(t, "2^10\t1024\nlog(0)\tNaN\n{1+2}*3\t9\n", buf.String())
}

func TestSample(t *testing.T) {
	app := newApp(t, Options{})

	var buf bytes.Buffer
	require.NoError(t, Sample(context.Background(), app, 3, 5, &buf))
	out := buf.String()
	assert.Contains(t, out, "valid")
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, domain.SentinelLabel)
}

func TestValidate(t *testing.T) {
	app := newApp(t, Options{})

	var buf bytes.Buffer
	require.NoError(t, Validate(app, &buf))
	assert.Contains(t, buf.String(), "Matrix is valid! 26 tokens")
}

func TestWithInterrupt(t *testing.T) {
	t.Run("Plain cancel records no signal", func(t *testing.T) {
		ctx, cancel := WithInterrupt(context.Background())
		cancel()
		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		assert.Nil(t, InterruptSignal(ctx))
	})

	t.Run("Signal cause is reported", func(t *testing.T) {
		ctx, cancel := context.WithCancelCause(context.Background())
		cancel(&Interrupted{Signal: os.Interrupt})
		assert.Equal(t, os.Interrupt, InterruptSignal(ctx))
		assert.EqualError(t, context.Cause(ctx), "interrupted by interrupt")
	})

	t.Run("Live context has no signal", func(t *testing.T) {
		ctx, cancel := WithInterrupt(context.Background())
		defer cancel()
		assert.Nil(t, InterruptSignal(ctx))
	})
}
