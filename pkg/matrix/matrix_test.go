package matrix

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/exprgen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tinyTable is the three-token alphabet {'(', ')', '1'} where "(1)" is the
// only valid expression of length 3.
func tinyTable() [][]string {
	return [][]string{
		{"\ufeff3", "(", ")", "1"},
		{"start", "1", "0", "1"},
		{"end", "0", "1", "1"},
		{"(", "0", "0", "1"},
		{")", "0", "0", "0"},
		{"1", "0", "1", "0"},
	}
}

func TestParse_Tiny(t *testing.T) {
	m, err := Parse(tinyTable())
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, []int{1, 2, 3}, m.Candidates())

	assert.Equal(t, domain.CategoryOpenRound, m.Token(1).Category)
	assert.Equal(t, domain.CategoryCloseRound, m.Token(2).Category)
	assert.Equal(t, domain.CategoryDigit, m.Token(3).Category)

	assert.True(t, m.CanStart(1))
	assert.False(t, m.CanStart(2))
	assert.True(t, m.CanEnd(2))
	assert.False(t, m.CanEnd(1))

	assert.True(t, m.CanFollow(1, 3))
	assert.True(t, m.CanFollow(3, 2))
	assert.False(t, m.CanFollow(2, 3))
	assert.False(t, m.Allowed(TokenRow(9), 1))
	assert.False(t, m.Allowed(RowStart, 0))
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]func([][]string) [][]string{
		"empty": func([][]string) [][]string { return nil },
		"non-integer size": func(r [][]string) [][]string {
			r[0][0] = "three"
			return r
		},
		"zero size": func(r [][]string) [][]string {
			r[0][0] = "0"
			return r
		},
		"size mismatch": func(r [][]string) [][]string {
			r[0][0] = "4"
			return r
		},
		"missing token row": func(r [][]string) [][]string {
			return r[:len(r)-1]
		},
		"short row": func(r [][]string) [][]string {
			r[4] = r[4][:2]
			return r
		},
		"empty glyph": func(r [][]string) [][]string {
			r[0][2] = " "
			return r
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(mutate(tinyTable()))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidMatrix))
		})
	}
}

func TestRead_StripsBOM(t *testing.T) {
	src := "\ufeff2,1,+\nstart,1,0\nend,1,0\n1,1,1\n+,1,0\n"
	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
	assert.Equal(t, domain.CategoryOperator, m.Token(2).Category)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "char_matrix.csv")
	require.NoError(t, os.WriteFile(path, defaultTable, 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 26, m.Size())

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.ErrorIs(t, err, domain.ErrInvalidMatrix)
}

func TestDefault(t *testing.T) {
	m := Default()
	require.Equal(t, 26, m.Size())

	var functions []string
	for _, tok := range m.Tokens() {
		if tok.Category == domain.CategoryFunction {
			functions = append(functions, tok.Render())
		}
	}
	assert.Equal(t, []string{"sin(", "cos(", "tan(", "cot(", "log(", "ln("}, functions)

	for _, tok := range m.Tokens() {
		if tok.Category == domain.CategoryFunction || tok.Category.IsOpen() {
			assert.False(t, m.CanEnd(tok.Index), "%s must not end an expression", tok.Glyph)
		}
	}
}
