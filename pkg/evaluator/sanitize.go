package evaluator

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/exprgen/pkg/domain"
)

var (
	// DefaultMaxInputSize bounds expressions received from remote callers.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "EXPRGEN_MAX_INPUT_SIZE"
)

// SanitizeExpression rejects oversized or non UTF-8 input and strips
// control characters, which no expression glyph uses.
// Errors wrap domain.ErrInvalidArgument.
func SanitizeExpression(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: expression exceeds maximum allowed size: size=%d limit=%d", domain.ErrInvalidArgument, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", fmt.Errorf("%w: expression contains invalid UTF-8 sequences", domain.ErrInvalidArgument)
	}

	if strings.IndexFunc(input, unicode.IsControl) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func maxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
