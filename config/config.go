// Package config loads recipebox settings from defaults, an optional
// recipebox.yaml and RECIPEBOX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	AppName   = "recipebox"
	EnvPrefix = "RECIPEBOX"
)

// Storage backends accepted by storage.backend.
const (
	BackendBolt      = "bolt"
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
)

type Config struct {
	LogLevel string  `mapstructure:"log_level"`
	LogDir   string  `mapstructure:"log_dir"`
	Storage  Storage `mapstructure:"storage"`
	Server   Server  `mapstructure:"server"`
}

type Storage struct {
	Backend   string    `mapstructure:"backend"`
	Path      string    `mapstructure:"path"`
	Firestore Firestore `mapstructure:"firestore"`
}

type Firestore struct {
	Project     string `mapstructure:"project"`
	Collection  string `mapstructure:"collection"`
	Credentials string `mapstructure:"credentials"`
}

type Server struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DataDir is the per-user directory holding local databases.
func DataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "." + AppName
	}
	return filepath.Join(dir, AppName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "4")
	v.SetDefault("log_dir", "")
	v.SetDefault("storage.backend", BackendBolt)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.firestore.project", "")
	v.SetDefault("storage.firestore.collection", "kv")
	v.SetDefault("storage.firestore.credentials", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// Load reads configuration. configFile may be empty, in which case
// recipebox.yaml is searched in the working directory and DataDir.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(DataDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) finish() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	switch c.Storage.Backend {
	case BackendBolt:
		if c.Storage.Path == "" {
			c.Storage.Path = filepath.Join(DataDir(), AppName+".bolt")
		}
	case BackendSQLite:
		if c.Storage.Path == "" {
			c.Storage.Path = filepath.Join(DataDir(), AppName+".sqlite")
		}
	case BackendFirestore:
		if c.Storage.Firestore.Project == "" {
			return errors.New("storage.firestore.project is required for the firestore backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	return nil
}
