package generator

// MaxAttempts is the sampling budget of a single valid-mode selection.
const MaxAttempts = 20

// Retry calls try until it reports success or the budget is spent.
// It returns the last value produced and whether it was accepted.
func Retry[T any](budget int, try func() (T, bool)) (T, bool) {
	var v T
	for i := 0; i < budget; i++ {
		var ok bool
		if v, ok = try(); ok {
			return v, true
		}
	}
	return v, false
}
