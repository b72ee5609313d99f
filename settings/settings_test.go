package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ".gnome2", filepath.Base(filepath.Dir(cfg.Paths.ConfigDir)))
	assert.Equal(t, "Empathy", filepath.Base(cfg.Paths.ConfigDir))
	assert.Equal(t, filepath.Join(cfg.Paths.ConfigDir, "irc-networks.xml"), cfg.UserNetworksFile())
	assert.Equal(t, filepath.Join(cfg.Paths.ConfigDir, "chatrooms.xml"), cfg.ChatroomsFile())
	assert.Equal(t, filepath.Join(cfg.Paths.ConfigDir, "cache.db"), cfg.CacheDB())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
configDir = "` + filepath.ToSlash(dir) + `/empathy"
globalNetworks = "/usr/share/empathy/irc-networks.xml"

[logging]
level = "debug"
format = "json"

[[accounts]]
uniqueName = "irc/me0"
protocol = "irc"
nick = "me"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "empathy"), filepath.Clean(cfg.Paths.ConfigDir))
	assert.Equal(t, "/usr/share/empathy/irc-networks.xml", cfg.Paths.GlobalNetworks)
	assert.Equal(t, "json", cfg.Logging.Format)
	require.Len(t, cfg.Accounts, 1)
	assert.Equal(t, "me", cfg.Accounts[0].Nick)

	require.NoError(t, cfg.EnsureConfigDir())
	info, err := os.Stat(cfg.Paths.ConfigDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[paths\n"), 0o600))
	_, err := LoadConfig(broken)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("[logging]\nlevel = \"chatty\"\n"), 0o600))
	_, err = LoadConfig(invalid)
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".empathy"), expandHome("~/.empathy"))
	assert.Equal(t, "/etc/empathy", expandHome("/etc/empathy"))
	assert.Equal(t, "", expandHome(""))
}
