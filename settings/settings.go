package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"empathy/logger"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	NetworksFilename  = "irc-networks.xml"
	ChatroomsFilename = "chatrooms.xml"
	CacheDirname      = "cache.db"
)

// Defaults returns the configuration used when no config file exists
func Defaults() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	return &Config{
		Paths: Paths{
			ConfigDir: filepath.Join(home, ".gnome2", "Empathy"),
		},
		Logging: logger.DefaultConfig(),
	}
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(c)
}

// LoadConfig loads the configuration from the given toml file.
// A missing file is not an error, the defaults are returned instead.
func LoadConfig(configPath string) (*Config, error) {
	config := Defaults()

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Config file not found, using defaults", "path", configPath)
		return config, nil
	}

	// Get absolute path for better error messages
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		absPath = configPath // fallback to relative path
	}

	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", absPath, err)
	}

	config.Paths.ConfigDir = expandHome(config.Paths.ConfigDir)
	config.Paths.GlobalNetworks = expandHome(config.Paths.GlobalNetworks)
	config.Paths.CacheDB = expandHome(config.Paths.CacheDB)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// UserNetworksFile is the user-editable IRC networks file
func (c *Config) UserNetworksFile() string {
	return filepath.Join(c.Paths.ConfigDir, NetworksFilename)
}

// ChatroomsFile is the favorite chatrooms file
func (c *Config) ChatroomsFile() string {
	return filepath.Join(c.Paths.ConfigDir, ChatroomsFilename)
}

// CacheDB is the bitcask directory used to cache room information
func (c *Config) CacheDB() string {
	if c.Paths.CacheDB != "" {
		return c.Paths.CacheDB
	}
	return filepath.Join(c.Paths.ConfigDir, CacheDirname)
}

// EnsureConfigDir creates the config directory with owner-only permissions
func (c *Config) EnsureConfigDir() error {
	if err := os.MkdirAll(c.Paths.ConfigDir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.Paths.ConfigDir, err)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
