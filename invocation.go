// File: optkit/invocation.go
package optkit

import "fmt"

// Invocation records one occurrence of an option on the command line:
// the name the user actually typed and the raw values captured for it,
// in order. The external parser produces these; optkit consumes them.
type Invocation struct {
	Name   string
	Values []string
}

// Arity is the permitted range of raw value counts per invocation.
// Max < 0 means unbounded.
type Arity struct {
	Min int
	Max int
}

// NValues builds an Arity. NValues(1, 1) is the default for value
// options; NValues(0, 0) suits flags and counters.
func NValues(min, max int) Arity {
	return Arity{Min: min, Max: max}
}

// Contains reports whether n values satisfy the range.
func (a Arity) Contains(n int) bool {
	if n < a.Min {
		return false
	}
	return a.Max < 0 || n <= a.Max
}

func (a Arity) String() string {
	if a.Max < 0 {
		return fmt.Sprintf("%d or more", a.Min)
	}
	if a.Min == a.Max {
		return fmt.Sprintf("%d", a.Min)
	}
	return fmt.Sprintf("%d to %d", a.Min, a.Max)
}

// checkArity validates one invocation's captured value count against
// the option's arity, producing the usage error the end user sees.
func checkArity(o Option, inv Invocation) error {
	arity := o.Arity()
	if arity.Contains(len(inv.Values)) {
		return nil
	}
	return &BadValueError{
		Name:    DisplayName(o),
		Message: fmt.Sprintf("expected %s value(s) per occurrence, got %d", arity, len(inv.Values)),
	}
}
