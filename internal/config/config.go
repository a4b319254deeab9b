// Package config loads users-manager settings from defaults, a YAML file,
// USERS_MANAGER_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"users-manager/internal/accounts"
	"users-manager/internal/pager"
)

const (
	configName = "users-manager"
	envPrefix  = "users_manager"
	systemDir  = "/etc/users-manager"
)

type Config struct {
	ItemsPerPage   int           `mapstructure:"items_per_page"`
	MinUID         int           `mapstructure:"min_uid"`
	MaxUID         int           `mapstructure:"max_uid"`
	LoginDefs      string        `mapstructure:"login_defs"`
	UseSudo        bool          `mapstructure:"use_sudo"`
	CommandTimeout time.Duration `mapstructure:"command_timeout"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Defaults are applied before any file, environment or flag value.
func Defaults() map[string]any {
	return map[string]any{
		"items_per_page":  pager.DefaultPerPage,
		"min_uid":         accounts.DefaultMinUID,
		"max_uid":         accounts.DefaultMaxUID,
		"login_defs":      "",
		"use_sudo":        false,
		"command_timeout": 30 * time.Second,
		"log_file":        "",
		"log_level":       "info",
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-file":  "log_file",
	"log-level": "log_level",
	"sudo":      "use_sudo",
}

// Load resolves the configuration. An explicit path must exist; the default
// search locations may be empty.
func Load(flags *pflag.FlagSet, path string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, configName))
	}
	v.AddConfigPath(systemDir)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}

	if c.LoginDefs != "" {
		if err := c.applyLoginDefs(c.LoginDefs); err != nil {
			return c, err
		}
	}

	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.ItemsPerPage < 1 {
		return fmt.Errorf("items_per_page must be at least 1, got %d", c.ItemsPerPage)
	}
	if c.MinUID < 0 || c.MinUID >= c.MaxUID {
		return fmt.Errorf("uid range [%d, %d) is empty", c.MinUID, c.MaxUID)
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive, got %s", c.CommandTimeout)
	}
	return nil
}

// applyLoginDefs takes UID_MIN and UID_MAX from a login.defs(5) file.
// UID_MAX is inclusive there, MaxUID is not.
func (c *Config) applyLoginDefs(path string) error {
	defs, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters:  " \t",
		AllowBooleanKeys:    true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	section := defs.Section(ini.DefaultSection)
	if section.HasKey("UID_MIN") {
		v, err := section.Key("UID_MIN").Int()
		if err != nil {
			return fmt.Errorf("%s: UID_MIN: %w", path, err)
		}
		c.MinUID = v
	}
	if section.HasKey("UID_MAX") {
		v, err := section.Key("UID_MAX").Int()
		if err != nil {
			return fmt.Errorf("%s: UID_MAX: %w", path, err)
		}
		c.MaxUID = v + 1
	}
	return nil
}
