package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/qmk-notifier/qmk-notifier-go/internal/cmd"
	"github.com/qmk-notifier/qmk-notifier-go/internal/config"
	"github.com/qmk-notifier/qmk-notifier-go/internal/configpaths"
	"github.com/qmk-notifier/qmk-notifier-go/internal/log"
	"github.com/qmk-notifier/qmk-notifier-go/internal/util"
)

func main() {
	os.Exit(run())
}

// run carries the real main body so deferred cleanups execute before the
// process exit code is set.
func run() int {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("qmk-notifier"),
		kong.Description("Sends raw HID reports to QMK keyboards"),
		kong.UsageOnError(),
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(lenient(kong.JSON), jsonPaths...),
		kong.Configuration(lenient(kongyaml.Loader), yamlPaths...),
		kong.Configuration(lenient(kongtoml.Loader), tomlPaths...),
	)

	fileCfg := config.Load(userCfg)

	level := cli.Log.Level
	if (cli.Send.Verbose || fileCfg.Verbose) && log.ParseLevel(level) > slog.LevelDebug {
		level = "debug"
	}
	logger, closeFiles, err := log.SetupLogger(level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		return 2
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	ctx.Bind(fileCfg)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "qmk-notifier: error: %v\n", err)
		if util.IsRunFromGUI() {
			fmt.Println("Press any key to exit...")
			b := make([]byte, 1)
			_, _ = os.Stdin.Read(b)
		}
		return 1
	}
	return 0
}

// lenient wraps a kong configuration loader so a malformed config file
// degrades to defaults with a warning instead of aborting the invocation.
func lenient(load kong.ConfigurationLoader) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		res, err := load(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "qmk-notifier: warning: skipping malformed config file: %v\n", err)
			return kong.ResolverFunc(func(*kong.Context, *kong.Path, *kong.Flag) (any, error) {
				return nil, nil
			}), nil
		}
		return res, nil
	}
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("QMK_NOTIFIER_CONFIG"); v != "" {
		return v
	}
	return ""
}
