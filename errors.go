// File: optkit/errors.go
package optkit

import (
	"errors"
	"fmt"
)

// ErrDeprecated is the sentinel a DeprecationError unwraps to. Detect
// deprecation failures with errors.Is(err, ErrDeprecated).
var ErrDeprecated = errors.New("deprecated option")

// ErrSourceNotFound is returned by NewFileSource when the backing file
// does not exist. Callers typically treat it as non-fatal and fall
// back to environment variables and defaults.
var ErrSourceNotFound = errors.New("value source file not found")

// BadValueError reports a user-facing usage error: a raw value that a
// pipeline stage or validator rejected. It carries the option's
// display name so the command layer can render it; it is not a defect.
type BadValueError struct {
	Name    string // option display name, e.g. "--port"
	Message string
	Err     error // optional underlying cause
}

func (e *BadValueError) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid value for %s: %s", e.Name, e.Message)
}

func (e *BadValueError) Unwrap() error {
	return e.Err
}

// DeprecationError is the hard-error form of a deprecation notice:
// raised when a deprecated option configured as an error is invoked.
// Like BadValueError it is a usage error, not a defect. It unwraps to
// ErrDeprecated for errors.Is checks.
type DeprecationError struct {
	Name    string // option display name
	Message string
}

func (e *DeprecationError) Error() string {
	return e.Message
}

func (e *DeprecationError) Unwrap() error {
	return ErrDeprecated
}

// GuardViolationError reports a read of an option's value slot before
// the owning Pass resolved it. This is an integration error in the
// calling program, so it surfaces as a panic rather than an error
// return; it must never be absorbed into a silent default.
type GuardViolationError struct {
	Name string
}

func (e *GuardViolationError) Error() string {
	return fmt.Sprintf("option %s: value read before resolution", e.Name)
}

// Fail builds a BadValueError for the given option with a formatted
// message. Pipeline stages and validators use it to reject values:
//
//	return 0, optkit.Fail(ctx.Option, "expected an integer, got %q", raw)
func Fail(o Option, format string, args ...any) error {
	return &BadValueError{Name: DisplayName(o), Message: fmt.Sprintf(format, args...)}
}

// DisplayName returns the name an option should be reported under in
// user-facing messages: its first primary name.
func DisplayName(o Option) string {
	names := o.Names()
	if len(names) == 0 {
		return ""
	}
	return names[0]
}
