package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ClientConfig is what trekctl needs to reach the service. Empty URL or
// AnonKey is allowed: the client then runs unconfigured.
type ClientConfig struct {
	URL         string `yaml:"url"`
	AnonKey     string `yaml:"anon_key"`
	SessionFile string `yaml:"session_file"`
}

// ClientFlags holds command-line overrides for ClientConfig.
type ClientFlags struct {
	ConfigFile  string
	URL         string
	AnonKey     string
	SessionFile string
}

// AddFlags registers the connection flags on flagSet.
func (f *ClientFlags) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.ConfigFile, "config", "", "YAML config file (default: <user config dir>/trekzone/config.yaml)")
	flagSet.StringVar(&f.URL, "url", "", "service URL (overrides TREKZONE_URL)")
	flagSet.StringVar(&f.AnonKey, "anon-key", "", "public API key (overrides TREKZONE_ANON_KEY)")
	flagSet.StringVar(&f.SessionFile, "session-file", "", "where the signed-in session is kept")
}

// LoadClient builds a ClientConfig from, in increasing precedence: the
// environment (with an optional .env), the YAML config file, and flags.
// An explicitly named config file must exist; the default one is optional.
func LoadClient(flags ClientFlags) (ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return ClientConfig{}, err
	}

	cfg := ClientConfig{
		URL:     os.Getenv("TREKZONE_URL"),
		AnonKey: os.Getenv("TREKZONE_ANON_KEY"),
	}

	path, explicit := flags.ConfigFile, flags.ConfigFile != ""
	if !explicit {
		path = defaultClientConfigPath()
	}
	if path != "" {
		if err := overlayYAML(&cfg, path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return ClientConfig{}, err
			}
		}
	}

	if flags.URL != "" {
		cfg.URL = flags.URL
	}
	if flags.AnonKey != "" {
		cfg.AnonKey = flags.AnonKey
	}
	if flags.SessionFile != "" {
		cfg.SessionFile = flags.SessionFile
	}
	return cfg, nil
}

// overlayYAML copies the non-empty fields of the file at path onto cfg.
func overlayYAML(cfg *ClientConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var file ClientConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	if file.URL != "" {
		cfg.URL = file.URL
	}
	if file.AnonKey != "" {
		cfg.AnonKey = file.AnonKey
	}
	if file.SessionFile != "" {
		cfg.SessionFile = file.SessionFile
	}
	return nil
}

func defaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trekzone", "config.yaml")
}
