package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds persistent CLI preferences loaded from
// ~/.config/causeway/config.toml. Every field is optional; flags
// always win over the file.
type Config struct {
	// CacheDir overrides the default cache location.
	CacheDir string `toml:"cache_dir"`

	// Algorithm is the default layout algorithm.
	Algorithm string `toml:"algorithm"`

	// Theme is the default render theme.
	Theme string `toml:"theme"`

	// DataDir is where the file store keeps diagrams.
	DataDir string `toml:"data_dir"`

	// Addr is the default serve address.
	Addr string `toml:"addr"`

	// MongoURI switches the store backend to MongoDB when set.
	MongoURI string `toml:"mongo_uri"`
}

// ConfigPath returns the config file location, honoring
// XDG_CONFIG_HOME.
func ConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// LoadConfig reads the config file. A missing or unreadable file is
// not an error; the zero config is returned and flags take over.
func LoadConfig() Config {
	return loadConfigFrom(ConfigPath())
}

func loadConfigFrom(path string) Config {
	var cfg Config
	if path == "" {
		return cfg
	}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	// A malformed file is ignored rather than fatal; the CLI must
	// still work with defaults.
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
