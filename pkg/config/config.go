// Package config loads the database connection settings for a query run.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/TFMV/azquery/pkg/errors"
)

const (
	// DefaultPath is the config file read when no --config flag is given.
	DefaultPath = "info.json"
	// DefaultDriver selects the native SQL Server driver.
	DefaultDriver = "sqlserver"
	// EnvPrefix prefixes the environment overrides, e.g. AZQUERY_PASSWORD.
	EnvPrefix = "AZQUERY"
)

// ConnectionConfig represents the connection settings loaded from the config file.
type ConnectionConfig struct {
	Server   string `mapstructure:"server" json:"server"`
	Database string `mapstructure:"database" json:"database"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	Driver   string `mapstructure:"driver" json:"driver,omitempty"`
	Port     int    `mapstructure:"port" json:"port,omitempty"`
}

// Validate checks that every required field is present.
// All missing fields are reported together.
func (c *ConnectionConfig) Validate() error {
	required := map[string]string{
		"server":   c.Server,
		"database": c.Database,
		"username": c.Username,
		"password": c.Password,
	}

	var missing []string
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.New(errors.CodeConfiguration,
			fmt.Sprintf("missing database connection info in config file: %s", strings.Join(missing, ", "))).
			WithDetail("missing", missing)
	}

	if c.Port < 0 {
		return errors.New(errors.CodeConfiguration, fmt.Sprintf("invalid port %d", c.Port))
	}

	if c.Driver == "" {
		c.Driver = DefaultDriver
	}

	return nil
}

// String renders the config with the password masked.
func (c ConnectionConfig) String() string {
	return fmt.Sprintf("server=%s database=%s username=%s password=***** driver=%s port=%d",
		c.Server, c.Database, c.Username, c.Driver, c.Port)
}

// Load reads a JSON config file. AZQUERY_* environment variables override
// values from the file, but the file itself must exist and parse.
func Load(path string) (*ConnectionConfig, error) {
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault("driver", DefaultDriver)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, errors.CodeConfiguration, "error reading config file %s", path).
			WithDetail("path", path)
	}

	cfg := &ConnectionConfig{
		Server:   v.GetString("server"),
		Database: v.GetString("database"),
		Username: v.GetString("username"),
		Password: v.GetString("password"),
		Driver:   v.GetString("driver"),
		Port:     v.GetInt("port"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
