package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lokesh185/rusty-chess/internal/chess"
	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Game        GameConfig        `mapstructure:"game"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Development DevelopmentConfig `mapstructure:"development"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type GameConfig struct {
	TimeControl string `mapstructure:"time_control"`
	StartFEN    string `mapstructure:"start_fen"`
}

type StorageConfig struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

type DevelopmentConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads config.yaml from the working directory or ./config, then
// applies CHESSD_* environment overrides on top of the defaults.
func Load() (*Config, error) {
	return load(func(v *viper.Viper) {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	})
}

// LoadFile is Load with an explicit config file.
func LoadFile(path string) (*Config, error) {
	return load(func(v *viper.Viper) {
		v.SetConfigFile(path)
	})
}

func load(locate func(*viper.Viper)) (*Config, error) {
	v := viper.New()
	locate(v)

	// Enable environment variables
	v.SetEnvPrefix("CHESSD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and environment
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("game.time_control", string(chess.Blitz))
	v.SetDefault("game.start_fen", chess.StartFEN)
	v.SetDefault("storage.path", "./data")
	v.SetDefault("storage.in_memory", false)
	v.SetDefault("development.debug", false)
	v.SetDefault("development.log_level", "info")
}

// Validate checks values that would otherwise only fail when the first
// game is created.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := chess.ParseTimeControl(c.Game.TimeControl); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	if _, err := chess.ParseFEN(c.Game.StartFEN); err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return errors.New("storage path is required unless storage.in_memory is set")
	}
	return nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Game: GameConfig{
			TimeControl: string(chess.Blitz),
			StartFEN:    chess.StartFEN,
		},
		Storage: StorageConfig{
			Path: "./data",
		},
		Development: DevelopmentConfig{
			Debug:    false,
			LogLevel: "info",
		},
	}
}
