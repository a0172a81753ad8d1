// FILE: optkit/example/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"optkit"
)

const sourceFilePath = "app.toml"

// This example walks the full lifecycle of typed options: compose with
// the builder, refine with Retype, resolve one parse pass against
// direct invocations / a config file / the environment, then read the
// typed values.
func main() {
	log.Println("➡️  Writing a config file to act as the value source...")

	sourceData := []byte(`
[server]
port = 8080
tags = ["blue", "canary"]
`)
	if err := os.WriteFile(sourceFilePath, sourceData, 0644); err != nil {
		log.Fatalf("❌ Failed to write %s: %v", sourceFilePath, err)
	}
	defer func() {
		os.Remove(sourceFilePath)
		os.Unsetenv("APP_WORKERS")
	}()

	src, err := optkit.NewFileSource(sourceFilePath)
	if err != nil {
		log.Fatalf("❌ Failed to load source file: %v", err)
	}

	cmd := optkit.NewCommandContext()
	cmd.Source = src
	cmd.Out = os.Stdout

	// An int option: not on the command line below, so it falls back
	// to the config file entry.
	port := optkit.Retype(
		optkit.NewBuilder("--port", "-p").
			WithHelp("listen port").
			WithSourceKey("server.port").
			WithEnvVar("APP_PORT").
			MustBuild(),
		optkit.WithDefault(optkit.Int64(), 80)).
		WithValidate(func(ctx optkit.OptionContext, v int64) error {
			if v <= 0 || v > 65535 {
				return optkit.Fail(ctx.Option, "%d is outside the port range", v)
			}
			return nil
		})

	// A repeatable option collecting every occurrence, with comma
	// splitting for direct and environment values.
	tags := optkit.Retype(
		optkit.NewBuilder("--tag").
			WithHelp("deployment tags").
			WithSourceKey("server.tags").
			WithSplitOn(",").
			WithArity(optkit.NValues(1, -1)).
			MustBuild(),
		optkit.Pipeline[string, []string, []string]{
			Value: optkit.Identity,
			Each: func(_ optkit.ValueContext, values []string) ([]string, error) {
				return values, nil
			},
			All: func(_ optkit.OptionContext, results [][]string) ([]string, error) {
				var out []string
				for _, r := range results {
					out = append(out, r...)
				}
				return out, nil
			},
		})

	// Worker count, resolved from the environment when absent on the
	// command line.
	workers := optkit.Retype(
		optkit.NewBuilder("--workers").
			WithEnvVar("APP_WORKERS").
			MustBuild(),
		optkit.WithDefault(optkit.Int64(), 1))

	// A deprecated alias that still works but warns on use.
	legacy := optkit.Retype(
		optkit.NewBuilder("--colour").MustBuild(),
		optkit.Deprecate(optkit.Raw(), "option --colour is deprecated, use --color", false))

	for _, o := range []optkit.Option{port, tags, workers, legacy} {
		if err := cmd.AddOption(o); err != nil {
			log.Fatalf("❌ Failed to register option: %v", err)
		}
	}

	log.Println("➡️  Resolving a parse pass (env beats default, file beats env's absence)...")
	os.Setenv("APP_WORKERS", "4")

	// In a real CLI these groups come from the argument parser.
	groups := map[optkit.Option][]optkit.Invocation{
		tags:   {{Name: "--tag", Values: []string{"red,green"}}},
		legacy: {{Name: "--colour", Values: []string{"auto"}}},
	}

	pass := optkit.NewPass(cmd)
	if err := pass.Resolve(groups); err != nil {
		log.Fatalf("❌ Resolution failed: %v", err)
	}

	fmt.Printf("port    = %d  (from %s)\n", port.Value(pass), sourceFilePath)
	fmt.Printf("tags    = %v  (direct invocation, split on comma)\n", tags.Value(pass))
	fmt.Printf("workers = %d  (from APP_WORKERS)\n", workers.Value(pass))
	fmt.Printf("colour  = %s  (deprecated alias, see warning above)\n", legacy.Value(pass))
}
