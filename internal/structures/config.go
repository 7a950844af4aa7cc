package structures

import "time"

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Server struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host" validate:"required"`
	Port    int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Dir         string `yaml:"dir" validate:"required"`
	FilePrefix  string `yaml:"filePrefix" validate:"required"`
	LegacyFile  string `yaml:"legacyFile"`
	LegacyGuild int64  `yaml:"legacyGuild"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type DiscordConfig struct {
	Token       string `yaml:"token"`
	TokenSecret string `yaml:"tokenSecret"`
	AppID       string `yaml:"appId"`
	GuildID     string `yaml:"guildId"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Discord     DiscordConfig `yaml:"discord"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
