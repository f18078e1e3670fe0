package domain

import "unicode/utf8"

// Category classifies a token by the role it plays in an expression.
type Category int

const (
	CategoryOther Category = iota
	CategoryDigit
	CategoryDecimalPoint
	CategoryOperator
	CategoryOpenRound
	CategoryOpenCurly
	CategoryCloseRound
	CategoryCloseCurly
	CategoryFunction
)

var categoryNames = map[Category]string{
	CategoryOther:        "other",
	CategoryDigit:        "digit",
	CategoryDecimalPoint: "decimal-point",
	CategoryOperator:     "operator",
	CategoryOpenRound:    "open-round",
	CategoryOpenCurly:    "open-curly",
	CategoryCloseRound:   "close-round",
	CategoryCloseCurly:   "close-curly",
	CategoryFunction:     "function",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsOpen reports whether the category opens a bracket.
func (c Category) IsOpen() bool {
	return c == CategoryOpenRound || c == CategoryOpenCurly
}

// IsClose reports whether the category closes a bracket.
func (c Category) IsClose() bool {
	return c == CategoryCloseRound || c == CategoryCloseCurly
}

// functionNames maps the single-letter glyphs used in character tables
// to the function they stand for.
var functionNames = map[string]string{
	"s": "sin",
	"c": "cos",
	"t": "tan",
	"o": "cot",
	"l": "log",
	"n": "ln",
}

// Token is a symbol of the generator alphabet.
type Token struct {
	// Index is the 1-based position of the token in the alphabet.
	Index    int
	Glyph    string
	Category Category
	// Name is the function name for CategoryFunction tokens, empty otherwise.
	Name string
}

// NewToken classifies a glyph read from a character table.
func NewToken(index int, glyph string) Token {
	t := Token{Index: index, Glyph: glyph, Category: CategoryOther}

	if name, ok := functionNames[glyph]; ok {
		t.Category = CategoryFunction
		t.Name = name
		return t
	}
	for _, name := range functionNames {
		if glyph == name {
			t.Category = CategoryFunction
			t.Name = name
			return t
		}
	}

	if utf8.RuneCountInString(glyph) != 1 {
		return t
	}

	switch r := glyph[0]; {
	case r >= '0' && r <= '9':
		t.Category = CategoryDigit
	case r == '.':
		t.Category = CategoryDecimalPoint
	case r == '+' || r == '-' || r == '*' || r == '/' || r == '^' || r == '%':
		t.Category = CategoryOperator
	case r == '(':
		t.Category = CategoryOpenRound
	case r == '{':
		t.Category = CategoryOpenCurly
	case r == ')':
		t.Category = CategoryCloseRound
	case r == '}':
		t.Category = CategoryCloseCurly
	}
	return t
}

// Render returns the text appended to an expression when the token is chosen.
// Functions render with their opening bracket, e.g. "sin(".
func (t Token) Render() string {
	if t.Category == CategoryFunction {
		return t.Name + "("
	}
	return t.Glyph
}

// Bracket returns the open-bracket glyph the token pushes, if any.
// Functions push an implicit round bracket.
func (t Token) Bracket() (string, bool) {
	switch t.Category {
	case CategoryOpenRound, CategoryFunction:
		return "(", true
	case CategoryOpenCurly:
		return "{", true
	}
	return "", false
}

// Matches reports whether the token closes the given open-bracket glyph.
func (t Token) Matches(open string) bool {
	switch t.Category {
	case CategoryCloseRound:
		return open == "("
	case CategoryCloseCurly:
		return open == "{"
	}
	return false
}

// Closing returns the closing glyph for an open-bracket glyph.
func Closing(open string) string {
	if open == "{" {
		return "}"
	}
	return ")"
}
