// File: optkit/deprecate.go
package optkit

import "fmt"

// Deprecate decorates a pipeline's all transform: when the option was
// invoked at least once it first emits message as a warning, or fails
// with a hard error when asError is set, then delegates to the wrapped
// transform. It never changes the produced value and never fires for
// an option that was not invoked.
//
// An empty message gets a standard "option X is deprecated" text.
func Deprecate[V, E, A any](p Pipeline[V, E, A], message string, asError bool) Pipeline[V, E, A] {
	inner := p.All
	p.All = func(ctx OptionContext, results []E) (A, error) {
		if len(results) > 0 {
			msg := message
			if msg == "" {
				msg = fmt.Sprintf("option %s is deprecated", DisplayName(ctx.Option))
			}
			if asError {
				var zero A
				return zero, &DeprecationError{Name: DisplayName(ctx.Option), Message: msg}
			}
			ctx.Command.Warn("%s", msg)
		}
		return inner(ctx, results)
	}
	return p
}
