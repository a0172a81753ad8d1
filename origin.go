// File: optkit/origin.go
package optkit

import "regexp"

// OriginKind identifies where an option's raw values came from.
type OriginKind int

const (
	// OriginAbsent means no invocations, no source entry, and no
	// environment variable were found; the option takes its default.
	OriginAbsent OriginKind = iota
	// OriginDirect means the option appeared on the command line.
	OriginDirect
	// OriginSourced means values came from the command's ValueSource.
	OriginSourced
	// OriginEnv means a single raw value came from an environment
	// variable fallback.
	OriginEnv
)

func (k OriginKind) String() string {
	switch k {
	case OriginDirect:
		return "direct"
	case OriginSourced:
		return "sourced"
	case OriginEnv:
		return "env"
	default:
		return "absent"
	}
}

// Origin is the selected value source for one resolution. Exactly one
// kind is ever selected; the fields beyond Kind are populated only for
// the matching kind.
type Origin struct {
	Kind        OriginKind
	Invocations []Invocation // OriginDirect
	Values      []string     // OriginSourced, ordered source entries
	EnvName     string       // OriginEnv
	EnvValue    string       // OriginEnv, may be empty
}

// resolveOrigin selects the origin for one option. Priority is strict:
// direct invocations, then source entries under sourceKey, then a
// defined environment variable (presence, not truthiness — an empty
// string counts), then absent. Later branches never run once an
// earlier one matches.
func resolveOrigin(cmd *CommandContext, invs []Invocation, sourceKey, envVar string) Origin {
	if len(invs) > 0 {
		return Origin{Kind: OriginDirect, Invocations: invs}
	}
	if sourceKey != "" && cmd.Source != nil {
		if values, ok := cmd.Source.Entries(sourceKey); ok {
			return Origin{Kind: OriginSourced, Values: values}
		}
	}
	if envVar != "" {
		if raw, ok := cmd.lookupEnv(envVar); ok {
			return Origin{Kind: OriginEnv, EnvName: envVar, EnvValue: raw}
		}
	}
	return Origin{Kind: OriginAbsent}
}

// materialize turns an origin into the invocation list the pipeline
// consumes, applying the split pattern where the contract allows it.
//
// Splitting applies to direct and environment origins only. Sourced
// values arrive pre-structured from the source and are never split;
// that asymmetry is an intended part of the contract.
func materialize(origin Origin, split *regexp.Regexp, preferredName string) []Invocation {
	switch origin.Kind {
	case OriginDirect:
		if split == nil {
			return origin.Invocations
		}
		out := make([]Invocation, 0, len(origin.Invocations))
		for _, inv := range origin.Invocations {
			var values []string
			for _, raw := range inv.Values {
				values = append(values, split.Split(raw, -1)...)
			}
			out = append(out, Invocation{Name: inv.Name, Values: values})
		}
		return out

	case OriginSourced:
		out := make([]Invocation, 0, len(origin.Values))
		for _, raw := range origin.Values {
			out = append(out, Invocation{Name: preferredName, Values: []string{raw}})
		}
		return out

	case OriginEnv:
		values := []string{origin.EnvValue}
		if split != nil {
			values = split.Split(origin.EnvValue, -1)
		}
		// One synthetic invocation named after the variable itself.
		return []Invocation{{Name: origin.EnvName, Values: values}}

	default:
		return nil
	}
}
