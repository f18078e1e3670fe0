package domain

// Set identifies which collection a row belongs to.
type Set string

const (
	SetValid   Set = "valid"
	SetInvalid Set = "invalid"
)

// Row is a labelled expression.
type Row struct {
	Expression string `json:"expression" yaml:"expression"`
	Label      string `json:"label" yaml:"label"`
}

// NewRow labels an expression with its evaluation result.
func NewRow(expression string, result Result) Row {
	return Row{Expression: expression, Label: result.Label()}
}

// Dataset holds the rows produced by one build.
type Dataset struct {
	RunID   string `json:"run_id"`
	Valid   []Row  `json:"valid"`
	Invalid []Row  `json:"invalid"`
	// Longest is the largest expression length plus label length among valid rows.
	Longest int `json:"longest"`
}
