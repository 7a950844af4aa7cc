package providers

import (
	"emojicounter/internal/structures"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestNewConfigProvider_Defaults(t *testing.T) {
	path := writeConfig(t, "discord:\n  token: abc\n")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "EmojiCounter", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "abc", conf.Discord.Token)
	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, ".", conf.Persistence.Dir)
	assert.Equal(t, "emoji_counts", conf.Persistence.FilePrefix)
	assert.Equal(t, "info", conf.Logger.Level)
	assert.Equal(t, 5*time.Second, conf.Cache.TTL)
}

func TestNewConfigProvider_FileValues(t *testing.T) {
	path := writeConfig(t, `
discord:
  appId: "1000"
persistence:
  dir: /var/lib/emoji
  filePrefix: counts
  legacyFile: emoji_counts.csv
  legacyGuild: 42
cache:
  enabled: true
  ttl: 30s
`)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "1000", conf.Discord.AppID)
	assert.Equal(t, "/var/lib/emoji", conf.Persistence.Dir)
	assert.Equal(t, "counts", conf.Persistence.FilePrefix)
	assert.Equal(t, int64(42), conf.Persistence.LegacyGuild)
	assert.True(t, conf.Cache.Enabled)
	assert.Equal(t, 30*time.Second, conf.Cache.TTL)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "discord:\n  token: abc\n")
	t.Setenv("EMOJI_DISCORD_TOKEN", "from-env")
	t.Setenv("EMOJI_SNAPSHOT_DIR", "/data")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "from-env", conf.Discord.Token)
	assert.Equal(t, "/data", conf.Persistence.Dir)
}

func TestNewConfigProvider_Invalid(t *testing.T) {
	path := writeConfig(t, "logger:\n  level: verbose\n")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "none.yaml")})
	assert.Error(t, err)
}
