// FILE: optkit/source_test.go
package optkit_test

import (
	"os"
	"path/filepath"
	"testing"

	"optkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMapSource(t *testing.T) {
	src := optkit.MapSource{"server.host": {"localhost"}}

	values, ok := src.Entries("server.host")
	require.True(t, ok)
	assert.Equal(t, []string{"localhost"}, values)

	_, ok = src.Entries("missing")
	assert.False(t, ok)
}

func TestFileSourceTOML(t *testing.T) {
	path := writeTemp(t, "app.toml", `
debug = true

[server]
host = "localhost"
port = 8080
tags = ["a", "b", "c"]
`)

	src, err := optkit.NewFileSource(path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Path())

	tests := []struct {
		key    string
		want   []string
		wantOK bool
	}{
		{"server.host", []string{"localhost"}, true},
		{"server.port", []string{"8080"}, true},
		{"server.tags", []string{"a", "b", "c"}, true},
		{"debug", []string{"true"}, true},
		{"server", nil, false},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			values, ok := src.Entries(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, values)
			}
		})
	}
}

func TestFileSourceJSON(t *testing.T) {
	path := writeTemp(t, "app.json", `{
  "server": {"port": 9090, "ratio": 0.5},
  "names": ["x", "y"]
}`)

	src, err := optkit.NewFileSource(path)
	require.NoError(t, err)

	port, ok := src.Entries("server.port")
	require.True(t, ok)
	assert.Equal(t, []string{"9090"}, port, "number precision survives via json.Number")

	ratio, ok := src.Entries("server.ratio")
	require.True(t, ok)
	assert.Equal(t, []string{"0.5"}, ratio)

	names, ok := src.Entries("names")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, names)
}

func TestFileSourceYAML(t *testing.T) {
	path := writeTemp(t, "app.yaml", `
server:
  host: localhost
  workers: 4
features:
  - alpha
  - beta
`)

	src, err := optkit.NewFileSource(path)
	require.NoError(t, err)

	host, ok := src.Entries("server.host")
	require.True(t, ok)
	assert.Equal(t, []string{"localhost"}, host)

	workers, ok := src.Entries("server.workers")
	require.True(t, ok)
	assert.Equal(t, []string{"4"}, workers)

	features, ok := src.Entries("features")
	require.True(t, ok)
	assert.Equal(t, []string{"alpha", "beta"}, features)
}

func TestFileSourceContentDetection(t *testing.T) {
	// No recognized extension: the format comes from sniffing.
	path := writeTemp(t, "app.conf", `{"port": 1234}`)

	src, err := optkit.NewFileSource(path)
	require.NoError(t, err)

	port, ok := src.Entries("port")
	require.True(t, ok)
	assert.Equal(t, []string{"1234"}, port)
}

func TestFileSourceMissingFile(t *testing.T) {
	_, err := optkit.NewFileSource(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, optkit.ErrSourceNotFound)
}

func TestFileSourceMalformed(t *testing.T) {
	path := writeTemp(t, "bad.toml", "= not toml at all [")
	_, err := optkit.NewFileSource(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, optkit.ErrSourceNotFound)
}

// TestFileSourceFeedsResolution wires a file source into a full
// resolution pass.
func TestFileSourceFeedsResolution(t *testing.T) {
	path := writeTemp(t, "app.toml", `
[server]
port = 9090
`)
	src, err := optkit.NewFileSource(path)
	require.NoError(t, err)

	cmd := optkit.NewCommandContext()
	cmd.Source = src
	cmd.LookupEnv = func(string) (string, bool) { return "", false }

	port := optkit.Retype(
		optkit.NewBuilder("--port").WithSourceKey("server.port").MustBuild(),
		optkit.WithDefault(optkit.Int64(), 80))

	pass := optkit.NewPass(cmd)
	require.NoError(t, pass.ResolveOption(port, nil))
	assert.Equal(t, int64(9090), port.Value(pass))
}
