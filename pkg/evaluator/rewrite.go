package evaluator

import "strings"

// rule replaces every occurrence of from with to.
type rule struct {
	from, to string
}

// rules are applied in order. Lua spells exponentiation "^", so the first
// rule keeps the operator; "-" gains a trailing space so that "--" is never
// read as a Lua comment. "cot" is left alone and resolves to the cot global
// installed by run.
var rules = []rule{
	{"^", "^"},
	{"{", "("},
	{"}", ")"},
	{"log", "math.log10"},
	{"ln", "math.log"},
	{"sin", "math.sin"},
	{"cos", "math.cos"},
	{"tan", "math.tan"},
	{"-", "- "},
}

// Rewrite turns a generated expression into Lua source.
func Rewrite(expression string) string {
	out := expression
	for _, r := range rules {
		out = strings.ReplaceAll(out, r.from, r.to)
	}
	return out
}
