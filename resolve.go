// File: optkit/resolve.go
package optkit

import "errors"

// Pass is the per-parse resolution state for a set of options. It owns
// the side table of resolved values, keeping descriptors themselves
// immutable and reusable; a later pass over the same descriptors
// simply builds its own table (overwrite semantics, never a merge).
//
// A pass is strictly two-phase: resolve every option (ResolveOption or
// the Resolve driver), then Validate. Validators may therefore read
// sibling option values. A pass is single-threaded and not reusable
// across concurrent resolutions.
type Pass struct {
	cmd   *CommandContext
	slots map[Option]any
	order []Option
}

// NewPass starts a resolution pass against the given command context.
func NewPass(cmd *CommandContext) *Pass {
	return &Pass{
		cmd:   cmd,
		slots: make(map[Option]any),
	}
}

// ResolveOption runs stages 1-3 for one option against the
// invocations the external parser collected for it (nil when the
// option did not appear). On failure the option's slot stays unset and
// sibling options are unaffected; any stop-at-first-error policy is
// the caller's.
func (p *Pass) ResolveOption(o Option, invs []Invocation) error {
	return o.resolve(p, invs)
}

// Resolve drives a full pass over every option registered on the
// command: each option resolves against groups[option] (missing
// entries resolve as never-invoked, falling back to source, env, or
// default), then validators run for every option that resolved.
// Failures are collected per option and joined, not short-circuited.
func (p *Pass) Resolve(groups map[Option][]Invocation) error {
	var errs []error
	for _, o := range p.cmd.Options() {
		if err := p.ResolveOption(o, groups[o]); err != nil {
			errs = append(errs, err)
		}
	}
	if err := p.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate runs post-resolution validators for every option this pass
// resolved, in resolution order. Call it only after all options have
// been through ResolveOption; options whose resolution failed are
// skipped.
func (p *Pass) Validate() error {
	var errs []error
	for _, o := range p.order {
		if err := o.validate(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// store records an option's resolved value, overwriting any earlier
// resolution of the same option within this pass.
func (p *Pass) store(o Option, value any) {
	if _, exists := p.slots[o]; !exists {
		p.order = append(p.order, o)
	}
	p.slots[o] = value
}

// lookup reads an option's slot; ok is false when the option has not
// resolved in this pass.
func (p *Pass) lookup(o Option) (any, bool) {
	value, ok := p.slots[o]
	return value, ok
}
