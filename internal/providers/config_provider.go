package providers

import (
	"emojicounter/internal/structures"
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("webServer.host", "127.0.0.1")
	v.SetDefault("webServer.port", 8090)
	v.SetDefault("persistence.dir", ".")
	v.SetDefault("persistence.filePrefix", "emoji_counts")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", ".")
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", "5s")

	v.BindEnv("discord.token", "EMOJI_DISCORD_TOKEN")
	v.BindEnv("logger.level", "EMOJI_LOG_LEVEL")
	v.BindEnv("persistence.dir", "EMOJI_SNAPSHOT_DIR")
	v.BindEnv("webServer.enabled", "EMOJI_WEB_ENABLED")
	v.BindEnv("cache.enabled", "EMOJI_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "EmojiCounter"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
