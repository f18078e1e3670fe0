package matrix

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/exprgen/pkg/domain"
)

//go:embed char_matrix.csv
var defaultTable []byte

const bom = "\ufeff"

// Row addresses a flag row of the table.
type Row int

const (
	// RowStart holds the start-eligibility flags.
	RowStart Row = 1
	// RowEnd holds the end-eligibility flags.
	RowEnd Row = 2
)

// TokenRow returns the row holding the successors of the token at index.
func TokenRow(index int) Row {
	return Row(index + 2)
}

// Matrix is an immutable transition table.
type Matrix struct {
	tokens []domain.Token // 1-based; tokens[0] is unused
	flags  [][]bool       // flags[row][column]
}

// Default returns the built-in 26-token table.
func Default() *Matrix {
	m, err := Read(bytes.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("matrix: embedded table is invalid: %v", err))
	}
	return m
}

// Load reads a table from a CSV file.
func Load(path string) (*Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMatrix, err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CSV table.
func Read(r io.Reader) (*Matrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row widths are validated by Parse
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMatrix, err)
	}
	return Parse(records)
}

// Parse validates raw table records and builds a Matrix.
func Parse(records [][]string) (*Matrix, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: table is empty", domain.ErrInvalidMatrix)
	}

	header := strings.TrimSpace(strings.TrimPrefix(records[0][0], bom))
	size, err := strconv.Atoi(header)
	if err != nil {
		return nil, fmt.Errorf("%w: alphabet size %q is not an integer", domain.ErrInvalidMatrix, header)
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: alphabet size must be positive, got %d", domain.ErrInvalidMatrix, size)
	}

	if got := len(records) - 3; got != size {
		return nil, fmt.Errorf("%w: alphabet size is %d but table has %d token rows", domain.ErrInvalidMatrix, size, got)
	}

	for i, record := range records {
		if len(record) < size+1 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want at least %d", domain.ErrInvalidMatrix, i, len(record), size+1)
		}
	}

	m := &Matrix{
		tokens: make([]domain.Token, size+1),
		flags:  make([][]bool, len(records)),
	}

	for i := 1; i <= size; i++ {
		glyph := strings.TrimSpace(records[0][i])
		if glyph == "" {
			return nil, fmt.Errorf("%w: token %d has an empty glyph", domain.ErrInvalidMatrix, i)
		}
		m.tokens[i] = domain.NewToken(i, glyph)
	}

	for r := 1; r < len(records); r++ {
		row := make([]bool, size+1)
		for c := 1; c <= size; c++ {
			row[c] = strings.TrimSpace(records[r][c]) == "1"
		}
		m.flags[r] = row
	}

	return m, nil
}

// Size returns the number of tokens in the alphabet.
func (m *Matrix) Size() int {
	return len(m.tokens) - 1
}

// Candidates returns every token index, 1..Size.
func (m *Matrix) Candidates() []int {
	out := make([]int, m.Size())
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// Token returns the token at a 1-based index.
func (m *Matrix) Token(index int) domain.Token {
	return m.tokens[index]
}

// Tokens returns the alphabet in index order.
func (m *Matrix) Tokens() []domain.Token {
	out := make([]domain.Token, m.Size())
	copy(out, m.tokens[1:])
	return out
}

// Allowed reports whether the token at index is flagged in the given row.
func (m *Matrix) Allowed(row Row, index int) bool {
	if int(row) < 1 || int(row) >= len(m.flags) || index < 1 || index > m.Size() {
		return false
	}
	return m.flags[row][index]
}

// CanStart reports whether the token may open an expression.
func (m *Matrix) CanStart(index int) bool {
	return m.Allowed(RowStart, index)
}

// CanEnd reports whether the token may close an expression.
func (m *Matrix) CanEnd(index int) bool {
	return m.Allowed(RowEnd, index)
}

// CanFollow reports whether next may directly follow prev.
func (m *Matrix) CanFollow(prev, next int) bool {
	return m.Allowed(TokenRow(prev), next)
}
