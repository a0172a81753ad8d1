// File: optkit/context.go
package optkit

import (
	"fmt"
	"io"
	"os"

	"github.com/gookit/color"
)

// CommandContext is the per-command environment that resolution runs
// in: the fallback value source, environment lookup, the output sink
// for user-visible messages, and the set of registered options.
//
// The zero value is not usable; construct one with NewCommandContext.
type CommandContext struct {
	// Source is consulted when an option has a source key and no
	// direct invocations. Nil disables the sourced origin.
	Source ValueSource

	// LookupEnv resolves environment fallbacks. Defaults to
	// os.LookupEnv; tests inject their own.
	LookupEnv func(name string) (string, bool)

	// Out receives user-visible messages such as deprecation
	// warnings. Defaults to os.Stderr.
	Out io.Writer

	// Translate localizes user-visible strings. Defaults to identity.
	Translate func(s string) string

	options []Option
}

// NewCommandContext returns a CommandContext with stderr output, real
// environment lookup and no value source.
func NewCommandContext() *CommandContext {
	return &CommandContext{
		LookupEnv: os.LookupEnv,
		Out:       os.Stderr,
		Translate: func(s string) string { return s },
	}
}

// AddOption registers an option descriptor with this command. Every
// primary and secondary name must be unused by previously registered
// options.
func (c *CommandContext) AddOption(o Option) error {
	seen := make(map[string]bool)
	for _, existing := range c.options {
		for _, n := range existing.Names() {
			seen[n] = true
		}
		for _, n := range existing.SecondaryNames() {
			seen[n] = true
		}
	}
	for _, n := range append(o.Names(), o.SecondaryNames()...) {
		if seen[n] {
			return fmt.Errorf("option name %s is already registered", n)
		}
	}
	c.options = append(c.options, o)
	return nil
}

// Options returns the registered options in registration order.
func (c *CommandContext) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Warn emits a user-visible warning to the command's output.
func (c *CommandContext) Warn(format string, args ...any) {
	msg := fmt.Sprintf(c.translate(format), args...)
	fmt.Fprintln(c.out(), color.Yellow.Sprint("warning: ")+msg)
}

func (c *CommandContext) translate(s string) string {
	if c.Translate == nil {
		return s
	}
	return c.Translate(s)
}

func (c *CommandContext) out() io.Writer {
	if c.Out == nil {
		return os.Stderr
	}
	return c.Out
}

func (c *CommandContext) lookupEnv(name string) (string, bool) {
	if c.LookupEnv == nil {
		return os.LookupEnv(name)
	}
	return c.LookupEnv(name)
}

// ValueContext is passed to the per-value and per-invocation pipeline
// stages. Name is the name this occurrence was invoked under: the
// typed option name for direct invocations, the environment variable's
// name for env fallbacks, the option's display name for sourced
// values.
type ValueContext struct {
	Name    string
	Option  Option
	Command *CommandContext
}

// OptionContext is the coarser context passed to the per-option stage
// and the validator; no single invocation applies there. Pass is the
// resolution pass in progress: validators run after every option
// resolved, so they may read sibling values through it.
type OptionContext struct {
	Option  Option
	Command *CommandContext
	Pass    *Pass
}
