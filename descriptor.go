// File: optkit/descriptor.go
package optkit

import (
	"maps"
	"regexp"
	"slices"
)

// Option is the non-generic view of a descriptor, used wherever the
// final value type does not matter: command registration, help
// rendering, and driving a parse pass.
type Option interface {
	// Names returns the option's primary names (non-empty).
	Names() []string
	// SecondaryNames returns names that flip the option's meaning
	// (e.g. "--no-color" against "--color").
	SecondaryNames() []string
	// Arity returns the permitted raw value count per invocation.
	Arity() Arity
	// EnvVar returns the environment fallback variable, or "".
	EnvVar() string
	// SourceKey returns the value-source lookup key, or "".
	SourceKey() string
	// Hidden reports whether help rendering should skip the option.
	Hidden() bool
	// Help returns the option's help text.
	Help() string
	// HelpTags returns renderer hints ("default", "required", ...).
	HelpTags() map[string]string
	// Metavar returns the placeholder for help rendering, if any.
	Metavar(cmd *CommandContext) (string, bool)
	// CompletionCandidates returns the shell completion candidates.
	CompletionCandidates() []string
	// AcceptsUnattachedValue reports whether the external parser may
	// feed this option a value from the following token.
	AcceptsUnattachedValue() bool

	resolve(p *Pass, invs []Invocation) error
	validate(p *Pass) error
}

// settings holds every non-pipeline descriptor field. It is the unit
// the same-type copy operates on, shared across all instantiations of
// Descriptor.
type settings struct {
	names       []string
	secondary   []string
	arity       Arity
	envVar      string
	sourceKey   string
	split       *regexp.Regexp
	hidden      bool
	help        string
	helpTags    map[string]string
	metavar     func(cmd *CommandContext) (string, bool)
	completions []string
	unattached  bool
}

// clone deep-copies the mutable members so descriptors never share
// slices or maps.
func (s settings) clone() settings {
	s.names = slices.Clone(s.names)
	s.secondary = slices.Clone(s.secondary)
	s.helpTags = maps.Clone(s.helpTags)
	s.completions = slices.Clone(s.completions)
	return s
}

// Descriptor is the immutable configuration of one typed option. V, E
// and A are the pipeline's per-value, per-invocation and final types.
//
// Descriptors are never mutated after construction: Copy derives a
// same-typed variant, Retype a differently-typed one, and per-parse
// state lives in a Pass. A single descriptor is therefore safe to
// attach to commands that parse repeatedly.
type Descriptor[V, E, A any] struct {
	settings settings
	pipeline Pipeline[V, E, A]
}

// CopyOption overrides one non-pipeline field during Copy.
type CopyOption func(*settings)

// WithNames replaces the primary names.
func WithNames(names ...string) CopyOption {
	return func(s *settings) { s.names = names }
}

// WithSecondaryNames replaces the secondary names.
func WithSecondaryNames(names ...string) CopyOption {
	return func(s *settings) { s.secondary = names }
}

// WithArity replaces the permitted value count per invocation.
func WithArity(a Arity) CopyOption {
	return func(s *settings) { s.arity = a }
}

// WithEnvVar sets the environment fallback variable ("" disables it).
func WithEnvVar(name string) CopyOption {
	return func(s *settings) { s.envVar = name }
}

// WithSourceKey sets the value-source lookup key ("" disables it).
func WithSourceKey(key string) CopyOption {
	return func(s *settings) { s.sourceKey = key }
}

// WithSplit sets the separator pattern for direct and environment
// values (nil disables splitting).
func WithSplit(pattern *regexp.Regexp) CopyOption {
	return func(s *settings) { s.split = pattern }
}

// WithHidden sets the hidden flag.
func WithHidden(hidden bool) CopyOption {
	return func(s *settings) { s.hidden = hidden }
}

// WithHelp replaces the help text.
func WithHelp(text string) CopyOption {
	return func(s *settings) { s.help = text }
}

// WithHelpTags replaces the help renderer hints.
func WithHelpTags(tags map[string]string) CopyOption {
	return func(s *settings) { s.helpTags = tags }
}

// WithMetavar sets the metavar resolver.
func WithMetavar(fn func(cmd *CommandContext) (string, bool)) CopyOption {
	return func(s *settings) { s.metavar = fn }
}

// WithCompletionCandidates replaces the shell completion candidates.
func WithCompletionCandidates(candidates ...string) CopyOption {
	return func(s *settings) { s.completions = candidates }
}

// WithUnattachedValue sets whether the parser may feed the option a
// value from the following token.
func WithUnattachedValue(accepts bool) CopyOption {
	return func(s *settings) { s.unattached = accepts }
}

// Copy returns a new, independent descriptor with any subset of
// non-pipeline fields overridden. The pipeline (all three stages plus
// validator and default) carries over unchanged, and the receiver is
// untouched. With zero options the copy is observably identical.
func (d *Descriptor[V, E, A]) Copy(opts ...CopyOption) *Descriptor[V, E, A] {
	s := d.settings.clone()
	for _, opt := range opts {
		opt(&s)
	}
	return &Descriptor[V, E, A]{settings: s, pipeline: d.pipeline}
}

// WithValidate returns a same-typed copy whose post-resolution
// validator is fn. It lives outside CopyOption because the validator
// is typed by A.
func (d *Descriptor[V, E, A]) WithValidate(fn Validator[A]) *Descriptor[V, E, A] {
	out := d.Copy()
	out.pipeline.Validate = fn
	return out
}

// Retype returns a new descriptor with the same non-pipeline
// configuration and the given pipeline. All three stages, the
// validator and the default are replaced as one unit; there is
// deliberately no way to swap a single stage, since adjacent stage
// types must stay composable. This is how a raw string option is
// refined into a typed, validated or multi-valued one:
//
//	verbose := optkit.Retype(base, optkit.Counted()).Copy(optkit.WithArity(optkit.NValues(0, 0)))
func Retype[V, E, A, V2, E2, A2 any](d *Descriptor[V, E, A], p Pipeline[V2, E2, A2]) *Descriptor[V2, E2, A2] {
	return &Descriptor[V2, E2, A2]{settings: d.settings.clone(), pipeline: p}
}

// Names implements Option.
func (d *Descriptor[V, E, A]) Names() []string {
	return slices.Clone(d.settings.names)
}

// SecondaryNames implements Option.
func (d *Descriptor[V, E, A]) SecondaryNames() []string {
	return slices.Clone(d.settings.secondary)
}

// Arity implements Option.
func (d *Descriptor[V, E, A]) Arity() Arity {
	return d.settings.arity
}

// EnvVar implements Option.
func (d *Descriptor[V, E, A]) EnvVar() string {
	return d.settings.envVar
}

// SourceKey implements Option.
func (d *Descriptor[V, E, A]) SourceKey() string {
	return d.settings.sourceKey
}

// SplitPattern returns the configured separator pattern, or nil.
func (d *Descriptor[V, E, A]) SplitPattern() *regexp.Regexp {
	return d.settings.split
}

// Hidden implements Option.
func (d *Descriptor[V, E, A]) Hidden() bool {
	return d.settings.hidden
}

// Help implements Option.
func (d *Descriptor[V, E, A]) Help() string {
	return d.settings.help
}

// HelpTags implements Option.
func (d *Descriptor[V, E, A]) HelpTags() map[string]string {
	return maps.Clone(d.settings.helpTags)
}

// Metavar implements Option. Without a configured resolver there is no
// metavar; inference belongs to the external naming layer.
func (d *Descriptor[V, E, A]) Metavar(cmd *CommandContext) (string, bool) {
	if d.settings.metavar == nil {
		return "", false
	}
	return d.settings.metavar(cmd)
}

// CompletionCandidates implements Option.
func (d *Descriptor[V, E, A]) CompletionCandidates() []string {
	return slices.Clone(d.settings.completions)
}

// AcceptsUnattachedValue implements Option.
func (d *Descriptor[V, E, A]) AcceptsUnattachedValue() bool {
	return d.settings.unattached
}

// Value returns the option's resolved value in the given pass. Calling
// it before the pass resolved this option panics with
// *GuardViolationError: that read order is a programming error, and a
// quiet zero value would mask it.
func (d *Descriptor[V, E, A]) Value(p *Pass) A {
	raw, ok := p.lookup(d)
	if !ok {
		panic(&GuardViolationError{Name: DisplayName(d)})
	}
	return raw.(A)
}

// resolve implements the resolution side of Option: pick an origin,
// materialize invocations, run the pipeline, store the result.
func (d *Descriptor[V, E, A]) resolve(p *Pass, invs []Invocation) error {
	origin := resolveOrigin(p.cmd, invs, d.settings.sourceKey, d.settings.envVar)

	if origin.Kind == OriginAbsent {
		// The all transform does not run for an absent option; the
		// pipeline default is stored directly.
		p.store(d, d.pipeline.Default)
		return nil
	}

	materialized := materialize(origin, d.settings.split, DisplayName(d))
	value, err := d.pipeline.run(p, d, materialized)
	if err != nil {
		return err
	}
	p.store(d, value)
	return nil
}

// validate implements the validation side of Option. It runs only
// after the pass resolved every option, so validators may read sibling
// values.
func (d *Descriptor[V, E, A]) validate(p *Pass) error {
	if d.pipeline.Validate == nil {
		return nil
	}
	return d.pipeline.Validate(OptionContext{Option: d, Command: p.cmd, Pass: p}, d.Value(p))
}
