// Package config loads the plugin loader's configuration surface: the
// plugin list, search paths, the default plugin directory, and the
// optional public key path that enables integrity checking. Grounded on
// the teacher's config/config.go Load (read file, then overlay with
// envconfig.Process).
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is the environment variable prefix envconfig.Process uses to
// overlay file-based configuration, e.g. PLUGINLOADER_PLUGINS.
const envPrefix = "PLUGINLOADER"

// Config is the plugin loader's configuration surface, spec.md §6.
type Config struct {
	// Plugins is the whitespace-delimited plugin list; a trailing "!" on
	// a name marks it critical.
	Plugins string `yaml:"plugins" envconfig:"PLUGINS"`

	// SearchPaths are tried, in order, before DefaultPath when resolving
	// a plugin name to a file.
	SearchPaths []string `yaml:"search_paths" envconfig:"SEARCH_PATHS"`

	// DefaultPath is the compile-time fallback search path.
	DefaultPath string `yaml:"default_path" envconfig:"DEFAULT_PATH"`

	// PluginDir and PluginDirPlugins feed AddPluginDirs: for each name in
	// PluginDirPlugins, "<PluginDir>/<name with - replaced by _>/.libs" is
	// appended to the loader's search paths, after the SearchPaths entries.
	// SearchPaths itself is left unchanged.
	PluginDir        string `yaml:"plugin_dir" envconfig:"PLUGIN_DIR"`
	PluginDirPlugins string `yaml:"plugin_dir_plugins" envconfig:"PLUGIN_DIR_PLUGINS"`

	// PublicKeyPath, if set, enables signature-based integrity checking.
	PublicKeyPath string `yaml:"public_key_path" envconfig:"PUBLIC_KEY_PATH"`

	// LeakDetective retains shared-object handles at teardown instead of
	// releasing them, for accurate leak symbolication (spec.md §4.5).
	LeakDetective bool `yaml:"leak_detective" envconfig:"LEAK_DETECTIVE"`
}

// Load reads path (if non-empty and present) as YAML, then overlays any
// PLUGINLOADER_* environment variables on top, matching the teacher's
// "file first, env wins" precedence.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parsing %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: processing environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate collects every independent configuration problem rather than
// stopping at the first, grounded on the teacher's use of
// hashicorp/go-multierror in apidef/oas/validator.go.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.PublicKeyPath != "" {
		if _, err := os.Stat(c.PublicKeyPath); err != nil {
			result = multierror.Append(result, fmt.Errorf("public_key_path %q: %w", c.PublicKeyPath, err))
		}
	}
	for _, p := range c.SearchPaths {
		if p == "" {
			result = multierror.Append(result, fmt.Errorf("search_paths: empty entry not allowed"))
		}
	}

	return result.ErrorOrNil()
}
