// Package config loads the application configuration from file and
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Mode selects which backend the session runs against. It is decided once
// at startup and never changes mid-session.
type Mode string

const (
	// ModeRemote uses the shared document store; records sync across
	// sessions.
	ModeRemote Mode = "remote"
	// ModeLocal uses the on-device guest store.
	ModeLocal Mode = "local"
)

// RemoteConfig describes the shared backend connection.
type RemoteConfig struct {
	ConnStr  string `mapstructure:"conn_str"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Project  string `mapstructure:"project"`
	Owner    string `mapstructure:"owner"`
}

// ConnectionString returns the explicit conn_str when set, otherwise one
// assembled from the individual fields.
func (r RemoteConfig) ConnectionString() string {
	if r.ConnStr != "" {
		return r.ConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		r.Host, r.Port, r.User, r.Password, r.DBName, r.SSLMode)
}

// LocalConfig describes the guest-mode store.
type LocalConfig struct {
	Path string `mapstructure:"path"`
}

// VisionConfig holds the statement-scan OCR credentials.
type VisionConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Config is the full application configuration.
type Config struct {
	Backend       Mode         `mapstructure:"backend"`
	Remote        RemoteConfig `mapstructure:"remote"`
	Local         LocalConfig  `mapstructure:"local"`
	Vision        VisionConfig `mapstructure:"vision"`
	Notifications bool         `mapstructure:"notifications"`
}

// Load reads configuration from path (or ./nebula.yaml when empty) with
// NEBULA_* environment overrides. A missing config file is not an error;
// defaults and environment cover everything. When no backend mode is set
// explicitly, remote is chosen if a connection is configured, local
// otherwise.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("nebula")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("NEBULA")
	v.AutomaticEnv()

	v.SetDefault("remote.port", 5432)
	v.SetDefault("remote.sslmode", "disable")
	v.SetDefault("remote.project", "nebula")
	v.SetDefault("local.path", defaultLocalPath())
	v.SetDefault("notifications", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if c.Backend == "" {
		if c.Remote.ConnStr != "" || c.Remote.Host != "" {
			c.Backend = ModeRemote
		} else {
			c.Backend = ModeLocal
		}
	}
	switch c.Backend {
	case ModeRemote, ModeLocal:
	default:
		return nil, fmt.Errorf("unknown backend mode %q", c.Backend)
	}

	if c.Backend == ModeRemote {
		if c.Remote.Owner == "" {
			return nil, fmt.Errorf("remote backend requires remote.owner")
		}
	}
	return &c, nil
}

func defaultLocalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nebula.db"
	}
	return filepath.Join(home, ".nebula", "nebula.db")
}
