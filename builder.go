// File: optkit/builder.go
package optkit

import (
	"fmt"
	"regexp"
)

// Builder is the mutable composition phase of an option: accumulate
// configuration with the With* methods, then Build an immutable
// Descriptor. Builders are single-use scaffolding; after Build the
// descriptor is refined through Copy and Retype only.
type Builder struct {
	settings settings
	err      error
}

// NewBuilder starts an option with the given primary names. At least
// one name is required by Build; name inference is the caller's job
// and never happens here.
func NewBuilder(names ...string) *Builder {
	return &Builder{
		settings: settings{
			names: names,
			arity: NValues(1, 1),
		},
	}
}

// WithSecondaryNames sets names that flip the option's meaning.
func (b *Builder) WithSecondaryNames(names ...string) *Builder {
	b.settings.secondary = names
	return b
}

// WithArity sets the permitted raw value count per invocation.
func (b *Builder) WithArity(a Arity) *Builder {
	b.settings.arity = a
	return b
}

// WithEnvVar sets the environment variable consulted when the option
// is neither invoked nor found in the value source.
func (b *Builder) WithEnvVar(name string) *Builder {
	b.settings.envVar = name
	return b
}

// WithSourceKey sets the key looked up in the command's ValueSource
// when the option is not invoked.
func (b *Builder) WithSourceKey(key string) *Builder {
	b.settings.sourceKey = key
	return b
}

// WithSplit sets the separator pattern applied to direct and
// environment values.
func (b *Builder) WithSplit(pattern *regexp.Regexp) *Builder {
	b.settings.split = pattern
	return b
}

// WithSplitOn compiles sep as the separator pattern. An invalid
// expression fails the Build.
func (b *Builder) WithSplitOn(sep string) *Builder {
	pattern, err := regexp.Compile(sep)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("invalid split pattern %q: %w", sep, err)
		}
		return b
	}
	b.settings.split = pattern
	return b
}

// WithHidden excludes the option from help rendering.
func (b *Builder) WithHidden(hidden bool) *Builder {
	b.settings.hidden = hidden
	return b
}

// WithHelp sets the help text.
func (b *Builder) WithHelp(text string) *Builder {
	b.settings.help = text
	return b
}

// WithHelpTags sets renderer hints such as "default" or "required".
func (b *Builder) WithHelpTags(tags map[string]string) *Builder {
	b.settings.helpTags = tags
	return b
}

// WithMetavar sets the metavar resolver used by help rendering.
func (b *Builder) WithMetavar(fn func(cmd *CommandContext) (string, bool)) *Builder {
	b.settings.metavar = fn
	return b
}

// WithCompletionCandidates sets the shell completion candidates.
func (b *Builder) WithCompletionCandidates(candidates ...string) *Builder {
	b.settings.completions = candidates
	return b
}

// WithUnattachedValue lets the external parser feed the option a value
// from the following token.
func (b *Builder) WithUnattachedValue(accepts bool) *Builder {
	b.settings.unattached = accepts
	return b
}

// Build validates the accumulated configuration and returns an
// immutable raw-string descriptor (the default pipeline: one value per
// occurrence, last occurrence wins). Use Retype to install a typed
// pipeline.
func (b *Builder) Build() (*Descriptor[string, string, string], error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.settings.names) == 0 {
		return nil, fmt.Errorf("an option requires at least one name")
	}
	seen := make(map[string]bool)
	for _, n := range append(b.settings.names, b.settings.secondary...) {
		if n == "" {
			return nil, fmt.Errorf("option names cannot be empty")
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate option name %s", n)
		}
		seen[n] = true
	}
	if b.settings.arity.Min < 0 {
		return nil, fmt.Errorf("arity minimum cannot be negative")
	}
	if b.settings.arity.Max >= 0 && b.settings.arity.Max < b.settings.arity.Min {
		return nil, fmt.Errorf("arity maximum %d is below minimum %d",
			b.settings.arity.Max, b.settings.arity.Min)
	}

	return &Descriptor[string, string, string]{
		settings: b.settings.clone(),
		pipeline: Raw(),
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Descriptor[string, string, string] {
	d, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("option build failed: %v", err))
	}
	return d
}

// BuildInto builds the descriptor and registers it with cmd in one
// step.
func (b *Builder) BuildInto(cmd *CommandContext) (*Descriptor[string, string, string], error) {
	d, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := cmd.AddOption(d); err != nil {
		return nil, err
	}
	return d, nil
}
