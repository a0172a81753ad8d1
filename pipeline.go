// File: optkit/pipeline.go
package optkit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueTransform converts one raw string captured for an invocation
// into the per-value type V.
type ValueTransform[V any] func(ctx ValueContext, raw string) (V, error)

// EachTransform reduces one invocation's converted values (count is
// guaranteed to satisfy the option's arity) into the per-invocation
// type E.
type EachTransform[V, E any] func(ctx ValueContext, values []V) (E, error)

// AllTransform reduces the per-invocation results, one entry per
// occurrence in order, into the option's final type A.
type AllTransform[E, A any] func(ctx OptionContext, results []E) (A, error)

// Validator checks the final value after every option on the command
// has resolved. It must not mutate the value.
type Validator[A any] func(ctx OptionContext, value A) error

// Pipeline is the staged conversion for one option: raw string to V,
// []V to E per invocation, []E to A per option, then validation.
// Default is stored when the option is absent; the All stage does not
// run in that case.
//
// Stages are only ever replaced as a unit (see Retype), which keeps
// adjacent input/output types composable by construction.
type Pipeline[V, E, A any] struct {
	Value    ValueTransform[V]
	Each     EachTransform[V, E]
	All      AllTransform[E, A]
	Validate Validator[A] // optional
	Default  A            // resolved value when the option is absent
}

// run executes stages 1-3 over materialized invocations.
func (p Pipeline[V, E, A]) run(pass *Pass, o Option, invs []Invocation) (A, error) {
	var zero A
	cmd := pass.cmd

	results := make([]E, 0, len(invs))
	for _, inv := range invs {
		if err := checkArity(o, inv); err != nil {
			return zero, err
		}
		vctx := ValueContext{Name: inv.Name, Option: o, Command: cmd}

		values := make([]V, 0, len(inv.Values))
		for _, raw := range inv.Values {
			v, err := p.Value(vctx, raw)
			if err != nil {
				return zero, err
			}
			values = append(values, v)
		}

		each, err := p.Each(vctx, values)
		if err != nil {
			return zero, err
		}
		results = append(results, each)
	}

	return p.All(OptionContext{Option: o, Command: cmd, Pass: pass}, results)
}

// Identity is the value transform that keeps the raw string.
func Identity(_ ValueContext, raw string) (string, error) {
	return raw, nil
}

// Single is the default each transform: exactly one converted value
// per invocation, matching the implicit 1..1 arity.
func Single[V any]() EachTransform[V, V] {
	return func(ctx ValueContext, values []V) (V, error) {
		if len(values) != 1 {
			var zero V
			return zero, Fail(ctx.Option, "expected a single value, got %d", len(values))
		}
		return values[0], nil
	}
}

// Last is the default all transform: the most recent occurrence wins.
// With no occurrences it yields the zero value, though resolution only
// reaches it with at least one invocation.
func Last[E any]() AllTransform[E, E] {
	return func(_ OptionContext, results []E) (E, error) {
		if len(results) == 0 {
			var zero E
			return zero, nil
		}
		return results[len(results)-1], nil
	}
}

// Raw is the default pipeline: untyped strings, one value per
// invocation, last occurrence wins, empty string when absent.
func Raw() Pipeline[string, string, string] {
	return Pipeline[string, string, string]{
		Value: Identity,
		Each:  Single[string](),
		All:   Last[string](),
	}
}

// Convert builds a single-value pipeline around a parse function.
// Parse failures surface as BadValueError carrying the option's
// display name.
func Convert[V any](parse func(raw string) (V, error)) Pipeline[V, V, V] {
	return Pipeline[V, V, V]{
		Value: func(ctx ValueContext, raw string) (V, error) {
			v, err := parse(raw)
			if err != nil {
				var zero V
				return zero, &BadValueError{
					Name:    DisplayName(ctx.Option),
					Message: fmt.Sprintf("cannot convert %q", raw),
					Err:     err,
				}
			}
			return v, nil
		},
		Each: Single[V](),
		All:  Last[V](),
	}
}

// Int64 is a pipeline for integer options. Base 0 allows hex and
// octal forms like 0xFF.
func Int64() Pipeline[int64, int64, int64] {
	return Convert(func(raw string) (int64, error) {
		return strconv.ParseInt(raw, 0, 64)
	})
}

// Float64 is a pipeline for floating-point options.
func Float64() Pipeline[float64, float64, float64] {
	return Convert(func(raw string) (float64, error) {
		return strconv.ParseFloat(raw, 64)
	})
}

// Bool is a pipeline for boolean options taking an explicit value.
// For presence-style flags use Flag instead.
func Bool() Pipeline[bool, bool, bool] {
	return Convert(strconv.ParseBool)
}

// Duration is a pipeline for time.Duration options ("2h45m").
func Duration() Pipeline[time.Duration, time.Duration, time.Duration] {
	return Convert(time.ParseDuration)
}

// Choice is a string pipeline restricted to the given values.
func Choice(choices ...string) Pipeline[string, string, string] {
	p := Raw()
	p.Value = func(ctx ValueContext, raw string) (string, error) {
		for _, c := range choices {
			if raw == c {
				return raw, nil
			}
		}
		return "", Fail(ctx.Option, "%q is not one of %s", raw, strings.Join(choices, ", "))
	}
	return p
}

// Flag is a pipeline for 0-arity boolean options: present means true,
// absent means false, repeated occurrences stay true. Pair it with
// NValues(0, 0).
func Flag() Pipeline[string, bool, bool] {
	return Pipeline[string, bool, bool]{
		Value: Identity,
		Each: func(_ ValueContext, _ []string) (bool, error) {
			return true, nil
		},
		All: Last[bool](),
	}
}

// Counted is a pipeline counting occurrences (-vvv style). Pair it
// with NValues(0, 0).
func Counted() Pipeline[string, int, int] {
	return Pipeline[string, int, int]{
		Value: Identity,
		Each: func(_ ValueContext, _ []string) (int, error) {
			return 1, nil
		},
		All: func(_ OptionContext, results []int) (int, error) {
			total := 0
			for _, n := range results {
				total += n
			}
			return total, nil
		},
	}
}

// Multiple rebuilds a pipeline so the final value collects every
// occurrence's result in order instead of keeping the last one. The
// validator does not carry over (its type changes); reattach one with
// WithValidator.
func Multiple[V, E, A any](p Pipeline[V, E, A]) Pipeline[V, E, []E] {
	return Pipeline[V, E, []E]{
		Value: p.Value,
		Each:  p.Each,
		All: func(_ OptionContext, results []E) ([]E, error) {
			out := make([]E, len(results))
			copy(out, results)
			return out, nil
		},
	}
}

// WithDefault returns p with def as the resolved value when the option
// is absent.
func WithDefault[V, E, A any](p Pipeline[V, E, A], def A) Pipeline[V, E, A] {
	p.Default = def
	return p
}

// WithValidator returns p with the given post-resolution validator.
func WithValidator[V, E, A any](p Pipeline[V, E, A], fn Validator[A]) Pipeline[V, E, A] {
	p.Validate = fn
	return p
}
