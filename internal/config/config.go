// Package config manages configuration for the controleopcoes CLI.
// It uses Viper for unified configuration management from files, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/controleopcoes/controleopcoes/internal/constants"
	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"
	"github.com/controleopcoes/controleopcoes/internal/infra"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the configuration of a provisioning run.
// Precedence, lowest to highest: defaults, config file, environment variables, flags.
// The key schema and billing mode are not configurable.
type Config struct {
	// Table
	Region    string   `mapstructure:"region" yaml:"region" validate:"required"`
	TableName string   `mapstructure:"table_name" yaml:"table_name" validate:"required"`
	Tags      []string `mapstructure:"tags" yaml:"tags"`

	// AWS access
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint" validate:"omitempty,url"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token" yaml:"session_token"`

	// Runtime
	LogLevel    string                `mapstructure:"log_level" yaml:"log_level"`
	Environment constants.Environment `mapstructure:"environment" yaml:"environment"`
}

// LoadOptions controls where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile overrides the default ~/.controleopcoes/config.yaml. An explicit
	// file must exist; the default one is optional.
	ConfigFile string
	// Flags are bound on top of every other source. Only flags the user
	// actually set take effect.
	Flags *pflag.FlagSet
}

var validate = validator.New()

// homeDir resolves the directory holding the default config file.
var homeDir = func() (string, error) {
	currentUser, err := user.Current()
	if err != nil {
		return "", err
	}
	return currentUser.HomeDir, nil
}

// flagKeys maps config keys to the CLI flags that override them.
var flagKeys = map[string]string{
	"region":     "region",
	"table_name": "table-name",
	"endpoint":   "endpoint",
	"tags":       "tag",
}

// Load loads the configuration using Viper.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if err := loadConfigFile(v, opts.ConfigFile); err != nil {
		return nil, apperrors.ErrInvalidConfig("error loading config file", err)
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, apperrors.ErrInvalidConfig("error binding flags", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.ErrInvalidConfig("error unmarshaling config", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, apperrors.ErrInvalidConfig("config validation failed", err)
	}

	return &cfg, nil
}

// Save writes the table and endpoint settings of cfg to the default config file,
// overwriting it. Credentials are never written.
func Save(cfg *Config) (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(filepath.Dir(configPath), constants.ConfigDirPermissions); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	v.Set("region", cfg.Region)
	v.Set("table_name", cfg.TableName)
	if len(cfg.Tags) > 0 {
		v.Set("tags", cfg.Tags)
	}
	if cfg.Endpoint != "" {
		v.Set("endpoint", cfg.Endpoint)
	}

	if err = v.WriteConfigAs(configPath); err != nil {
		return "", fmt.Errorf("error writing config file: %w", err)
	}

	if err = os.Chmod(configPath, constants.ConfigFilePermissions); err != nil {
		return "", fmt.Errorf("error setting config file permissions: %w", err)
	}

	return configPath, nil
}

// GetConfigPath returns the path to the default config file.
func GetConfigPath() (string, error) {
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf("error getting current user: %w", err)
	}
	return constants.ConfigFilePath(home), nil
}

// GetLogLevel returns the slog.Level from the string configuration.
// Defaults to INFO if the level string is invalid.
func (c *Config) GetLogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// GetEnvironment returns the configured environment, defaulting to CLI.
func (c *Config) GetEnvironment() constants.Environment {
	switch env := constants.Environment(strings.ToLower(string(c.Environment))); env {
	case constants.Development, constants.Production:
		return env
	default:
		return constants.CLI
	}
}

// HasEndpointOverride reports whether requests go to a custom endpoint such as DynamoDB Local.
func (c *Config) HasEndpointOverride() bool {
	return c.Endpoint != ""
}

// TableSpec builds the table spec described by the configuration on top of
// the fixed schema. The returned spec is not validated.
func (c *Config) TableSpec() (*infra.TableSpec, error) {
	tags, err := infra.ParseTags(c.Tags)
	if err != nil {
		return nil, apperrors.ErrInvalidConfig("invalid tags", err)
	}

	spec := infra.DefaultTableSpec()
	spec.Region = c.Region
	spec.TableName = c.TableName
	if len(tags) > 0 {
		spec.Tags = tags
	}

	return spec, nil
}

// Helper functions

func setDefaults(v *viper.Viper) {
	v.SetDefault("region", constants.DefaultRegion)
	v.SetDefault("table_name", constants.DefaultTableName)
	v.SetDefault("tags", []string{})
	v.SetDefault("endpoint", "")
	v.SetDefault("access_key_id", "")
	v.SetDefault("secret_access_key", "")
	v.SetDefault("session_token", "")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("environment", string(constants.CLI))
}

func loadConfigFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		defaultPath, err := GetConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return err
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	return v.ReadInConfig()
}

func bindEnvVars(v *viper.Viper) {
	envVars := []string{
		"REGION",
		"TABLE_NAME",
		"TAGS",
		"ENDPOINT",
		"SESSION_TOKEN",
		"LOG_LEVEL",
		"ENVIRONMENT",
	}

	for _, envVar := range envVars {
		_ = v.BindEnv(strings.ToLower(envVar), constants.EnvPrefix+"_"+envVar)
	}

	// The web application reads the same custom credential variables.
	_ = v.BindEnv("access_key_id", constants.EnvPrefix+"_ACCESS_KEY_ID", "MY_AWS_KEY")
	_ = v.BindEnv("secret_access_key", constants.EnvPrefix+"_SECRET_ACCESS_KEY", "MY_AWS_SECRET")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}
