// Package rules provides a small ordered rule table: a list of named
// (predicate, outcome) pairs evaluated first-match-wins. Threshold chains
// that used to live in nested if/else blocks become inspectable data, and
// each rule stays independently testable.
package rules

// Rule pairs a named predicate with its outcome.
type Rule[T, R any] struct {
	Name string
	When func(T) bool
	Then R
}

// Table is an ordered list of rules plus a fallback outcome. Order is
// semantically load-bearing; rules are evaluated exactly in the order given.
type Table[T, R any] struct {
	rules    []Rule[T, R]
	fallback R
	fallName string
}

// NewTable builds a table. fallbackName labels the default outcome in
// evaluation traces.
func NewTable[T, R any](fallbackName string, fallback R, rules ...Rule[T, R]) Table[T, R] {
	return Table[T, R]{rules: rules, fallback: fallback, fallName: fallbackName}
}

// Evaluate returns the outcome of the first matching rule and its name,
// or the fallback when nothing matches. Total: never fails.
func (t Table[T, R]) Evaluate(v T) (R, string) {
	for _, r := range t.rules {
		if r.When(v) {
			return r.Then, r.Name
		}
	}
	return t.fallback, t.fallName
}

// Names returns rule names in evaluation order, fallback last.
func (t Table[T, R]) Names() []string {
	out := make([]string, 0, len(t.rules)+1)
	for _, r := range t.rules {
		out = append(out, r.Name)
	}
	return append(out, t.fallName)
}
