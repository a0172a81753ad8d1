// FILE: optkit/builder_test.go
package optkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilderValidation tests Build-time configuration checks
func TestBuilderValidation(t *testing.T) {
	tests := []struct {
		name        string
		builder     *Builder
		expectError bool
		errorMsg    string
	}{
		{"ValidSingleName", NewBuilder("--opt"), false, ""},
		{"ValidManyNames", NewBuilder("--opt", "-o"), false, ""},
		{"NoNames", NewBuilder(), true, "at least one name"},
		{"EmptyName", NewBuilder("--opt", ""), true, "cannot be empty"},
		{"DuplicateName", NewBuilder("--opt", "--opt"), true, "duplicate option name"},
		{"DuplicateAcrossSecondary", NewBuilder("--opt").WithSecondaryNames("--opt"), true, "duplicate option name"},
		{"NegativeArityMin", NewBuilder("--opt").WithArity(NValues(-1, 1)), true, "cannot be negative"},
		{"ArityMaxBelowMin", NewBuilder("--opt").WithArity(NValues(2, 1)), true, "below minimum"},
		{"UnboundedArity", NewBuilder("--opt").WithArity(NValues(1, -1)), false, ""},
		{"ZeroArity", NewBuilder("--opt").WithArity(NValues(0, 0)), false, ""},
		{"BadSplitPattern", NewBuilder("--opt").WithSplitOn("["), true, "invalid split pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.builder.Build()
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, d)
			} else {
				require.NoError(t, err)
				require.NotNil(t, d)
			}
		})
	}
}

func TestBuilderDefaults(t *testing.T) {
	d := NewBuilder("--opt").MustBuild()

	assert.Equal(t, []string{"--opt"}, d.Names())
	assert.Equal(t, NValues(1, 1), d.Arity(), "implicit arity is one value per occurrence")
	assert.Empty(t, d.EnvVar())
	assert.Empty(t, d.SourceKey())
	assert.Nil(t, d.SplitPattern())
	assert.False(t, d.Hidden())
	assert.False(t, d.AcceptsUnattachedValue())
}

func TestBuilderCarriesAllFields(t *testing.T) {
	d := NewBuilder("--level").
		WithSecondaryNames("--no-level").
		WithHelp("verbosity level").
		WithHelpTags(map[string]string{"default": "info"}).
		WithEnvVar("APP_LEVEL").
		WithSourceKey("log.level").
		WithSplitOn(",").
		WithHidden(true).
		WithCompletionCandidates("debug", "info", "warn").
		WithUnattachedValue(true).
		MustBuild()

	assert.Equal(t, []string{"--no-level"}, d.SecondaryNames())
	assert.Equal(t, "verbosity level", d.Help())
	assert.Equal(t, map[string]string{"default": "info"}, d.HelpTags())
	assert.Equal(t, "APP_LEVEL", d.EnvVar())
	assert.Equal(t, "log.level", d.SourceKey())
	require.NotNil(t, d.SplitPattern())
	assert.Equal(t, ",", d.SplitPattern().String())
	assert.True(t, d.Hidden())
	assert.Equal(t, []string{"debug", "info", "warn"}, d.CompletionCandidates())
	assert.True(t, d.AcceptsUnattachedValue())
}

func TestMustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder().MustBuild()
	})
}

func TestBuildInto(t *testing.T) {
	cmd := testContext()

	first, err := NewBuilder("--opt").BuildInto(cmd)
	require.NoError(t, err)
	require.Len(t, cmd.Options(), 1)

	// Name collisions are rejected at registration.
	_, err = NewBuilder("--opt").BuildInto(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Len(t, cmd.Options(), 1)

	assert.Equal(t, first.Names(), cmd.Options()[0].Names())
}

// TestBuilderIsScaffolding: descriptors built earlier are unaffected
// by later builder mutation.
func TestBuilderIsScaffolding(t *testing.T) {
	b := NewBuilder("--opt").WithHelp("first")
	first := b.MustBuild()

	b.WithHelp("second")
	second := b.MustBuild()

	assert.Equal(t, "first", first.Help())
	assert.Equal(t, "second", second.Help())
}
