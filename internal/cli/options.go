package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/exprgen/internal/config"
	"github.com/aretw0/exprgen/pkg/dataset"
	"github.com/aretw0/exprgen/pkg/domain"
)

// Options carries command line overrides on top of the configuration file.
// Zero values leave the file (or default) value in place.
type Options struct {
	ConfigPath  string
	Matrix      string
	OutputDir   string
	Deadline    time.Duration
	Seed        *uint64
	Workers     int
	MaxAttempts int
	RedisAddr   string
	MetricsFile string
	Debug       bool
	Headless    bool
}

// ResolveConfig loads the configuration file and applies the overrides.
func ResolveConfig(opts Options) (config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	if opts.Matrix != "" {
		cfg.Matrix = opts.Matrix
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if opts.Deadline > 0 {
		cfg.Deadline = opts.Deadline
	}
	if opts.Seed != nil {
		cfg.Seed = opts.Seed
	}
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}
	if opts.MaxAttempts > 0 {
		cfg.MaxAttempts = opts.MaxAttempts
	}
	if opts.RedisAddr != "" {
		cfg.Redis.Addr = opts.RedisAddr
	}
	if opts.MetricsFile != "" {
		cfg.MetricsFile = opts.MetricsFile
	}
	if opts.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

// Usage is printed when the positional arguments are missing.
const Usage = `Error: exprgen must be run with 3 command line arguments:
1. # valid expressions,
2. # invalid expressions
3. maximum length of a single expression.`

// ParseCounts validates the three positional arguments of a build.
func ParseCounts(args []string) (dataset.Request, error) {
	var req dataset.Request
	if len(args) != 3 {
		return req, fmt.Errorf("%w: %s", domain.ErrInvalidArgument, Usage)
	}

	nums := make([]int, 3)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return req, fmt.Errorf("%w: All command line arguments must be integers.", domain.ErrInvalidArgument)
		}
		nums[i] = n
	}

	names := []string{"Number of Valid expressions", "Number of Invalid expressions", "Maximum expression length"}
	for i, n := range nums {
		if n <= 0 {
			return req, fmt.Errorf("%w: %s must be a positive integer.", domain.ErrInvalidArgument, names[i])
		}
	}

	req = dataset.Request{Valid: nums[0], Invalid: nums[1], MaxLength: nums[2]}
	return req, req.Validate()
}

// IsUsageError reports whether err stems from bad user input.
func IsUsageError(err error) bool {
	return errors.Is(err, domain.ErrInvalidArgument)
}

// UsageMessage returns the user-facing text of a usage error, without the
// sentinel prefix. Other errors are returned as is.
func UsageMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if IsUsageError(err) {
		msg = strings.TrimPrefix(msg, domain.ErrInvalidArgument.Error()+": ")
	}
	return msg
}

// PrintUsageError writes the message of a usage error on its own line.
func PrintUsageError(w io.Writer, err error) {
	fmt.Fprintln(w, UsageMessage(err))
}
