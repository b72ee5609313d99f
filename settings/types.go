package settings

import (
	"empathy/accounts"
	"empathy/logger"
)

type (
	Config struct {
		Paths    Paths              `toml:"paths" validate:"required"`
		Accounts []accounts.Account `toml:"accounts" validate:"dive"`
		Logging  logger.Config      `toml:"logging" validate:"required"`
	}

	Paths struct {
		// ConfigDir holds the user files, created on demand with owner-only permissions
		ConfigDir string `toml:"configDir" validate:"required"`
		// GlobalNetworks is the installed, read-only networks file. Optional.
		GlobalNetworks string `toml:"globalNetworks"`
		// CacheDB is the bitcask directory for cached room information. Defaults to <ConfigDir>/cache.db
		CacheDB string `toml:"cacheDB"`
	}
)
