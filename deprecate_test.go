// File: optkit/deprecate_test.go
package optkit

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeprecationWarns(t *testing.T) {
	var out bytes.Buffer
	cmd := testContext()
	cmd.Out = &out

	d := Retype(NewBuilder("--old").MustBuild(), Deprecate(Raw(), "", false))
	pass := NewPass(cmd)

	require.NoError(t, pass.ResolveOption(d, []Invocation{{Name: "--old", Values: []string{"v"}}}))
	assert.Equal(t, "v", d.Value(pass), "the wrapper never alters the value")
	assert.Contains(t, out.String(), "option --old is deprecated")
}

func TestDeprecationCustomMessage(t *testing.T) {
	var out bytes.Buffer
	cmd := testContext()
	cmd.Out = &out

	d := Retype(NewBuilder("--old").MustBuild(),
		Deprecate(Raw(), "use --new instead", false))
	pass := NewPass(cmd)

	require.NoError(t, pass.ResolveOption(d, []Invocation{{Name: "--old", Values: []string{"v"}}}))
	assert.Contains(t, out.String(), "use --new instead")
}

// TestHardErrorDeprecation: invoked once, it fails before any value is
// assigned; never invoked, it resolves to its default without failing.
func TestHardErrorDeprecation(t *testing.T) {
	build := func() *Descriptor[int64, int64, int64] {
		return Retype(NewBuilder("--old").MustBuild(),
			Deprecate(WithDefault(Int64(), 3), "", true))
	}

	t.Run("InvokedFails", func(t *testing.T) {
		d := build()
		pass := NewPass(testContext())

		err := pass.ResolveOption(d, []Invocation{{Name: "--old", Values: []string{"1"}}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDeprecated)

		var dep *DeprecationError
		require.ErrorAs(t, err, &dep)
		assert.Equal(t, "--old", dep.Name)

		assert.Panics(t, func() { d.Value(pass) }, "no value may be assigned on failure")
	})

	t.Run("NeverInvokedResolvesDefault", func(t *testing.T) {
		d := build()
		pass := NewPass(testContext())

		require.NoError(t, pass.ResolveOption(d, nil))
		assert.Equal(t, int64(3), d.Value(pass))
	})
}

func TestDeprecationTriggersOnEnvFallback(t *testing.T) {
	var out bytes.Buffer
	cmd := NewCommandContext()
	cmd.Out = &out
	cmd.LookupEnv = func(string) (string, bool) { return "v", true }

	d := Retype(NewBuilder("--old").WithEnvVar("APP_OLD").MustBuild(),
		Deprecate(Raw(), "", false))
	pass := NewPass(cmd)

	// An env fallback still counts as an occurrence.
	require.NoError(t, pass.ResolveOption(d, nil))
	assert.Contains(t, out.String(), "deprecated")
}

func TestDeprecationErrorTaxonomy(t *testing.T) {
	err := error(&DeprecationError{Name: "--old", Message: "option --old is deprecated"})

	assert.True(t, errors.Is(err, ErrDeprecated))
	assert.Equal(t, "option --old is deprecated", err.Error())
}
