// Command pluginloaderd is a thin binary wiring configuration, logging,
// integrity checking, and metrics into a loader.Loader and exposing it
// through the pluginctl CLI.
package main

import (
	"fmt"
	"os"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"

	"github.com/alerm-sml/strongswan/cli/pluginctl"
	"github.com/alerm-sml/strongswan/integrity"
	"github.com/alerm-sml/strongswan/internal/config"
	internallog "github.com/alerm-sml/strongswan/internal/log"
	"github.com/alerm-sml/strongswan/loader"
	"github.com/alerm-sml/strongswan/metrics"
)

func main() {
	app := kingpin.New("pluginloaderd", "strongSwan-style plugin loader")
	app.Flag("config", "Path to a YAML configuration file").Short('c').String()

	// The loader has to exist before AddTo registers subcommands that
	// close over it, so the config flag is scanned ahead of kingpin's own
	// parse pass rather than read back from it.
	cfg, err := config.Load(configPathFromArgs(os.Args[1:]))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	l, err := buildLoader(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pluginctl.AddTo(app, pluginctl.NewController(l))

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// No subcommand selected: fall back to loading cfg.Plugins directly,
	// the same "just run it" default the teacher's own gateway binary
	// provides alongside its CLI subcommands.
	if cmd == "" {
		if err := runDefault(l, cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// configPathFromArgs scans argv for -c/--config.
func configPathFromArgs(argv []string) string {
	for i, a := range argv {
		if a == "-c" || a == "--config" {
			if i+1 < len(argv) {
				return argv[i+1]
			}
		}
	}
	return ""
}

func buildLoader(cfg *config.Config) (*loader.Loader, error) {
	fs := afero.NewOsFs()

	var checker integrity.Checker = integrity.Noop
	if cfg.PublicKeyPath != "" {
		c, err := integrity.NewSignatureChecker(fs, cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("pluginloaderd: loading public key: %w", err)
		}
		checker = c
	}

	observer := metrics.NewPluginLoaderMetrics("pluginloaderd")

	l := loader.New(
		loader.WithDefaultPath(cfg.DefaultPath),
		loader.WithFilesystem(fs),
		loader.WithIntegrityChecker(checker),
		loader.WithLogger(internallog.Get()),
		loader.WithStatsObserver(observer),
		loader.WithLeakDetective(cfg.LeakDetective),
	)
	for _, p := range cfg.SearchPaths {
		l.AddPath(p)
	}
	if cfg.PluginDir != "" {
		l.AddPluginDirs(cfg.PluginDir, cfg.PluginDirPlugins)
	}
	return l, nil
}

// runDefault loads cfg.Plugins when pluginloaderd is invoked with no
// subcommand, the same "just run it" default the teacher's own gateway
// binary provides alongside its CLI subcommands.
func runDefault(l *loader.Loader, cfg *config.Config) error {
	if !l.Load(cfg.Plugins) {
		return fmt.Errorf("pluginloaderd: %s", l.Status())
	}
	fmt.Println(l.Status())
	return nil
}
