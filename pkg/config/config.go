// Package config loads diary settings from .diary.yaml and DIARY_* variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment overrides, e.g. DIARY_PATH.
	EnvPrefix = "DIARY"
	// PathEnv names an extra directory searched for .diary.yaml.
	PathEnv = "DIARY_CONFIG_PATH"

	DefaultPath       = "~/.diary.db"
	DefaultSession    = "~/.diary/session.jwt"
	DefaultKey        = "~/.diary/signing.key"
	DefaultSessionTTL = 720 * time.Hour
)

// Config is the resolved configuration. Paths are already expanded.
type Config struct {
	Path       string            `mapstructure:"path"`
	Session    string            `mapstructure:"session"`
	Key        string            `mapstructure:"key"`
	Secret     string            `mapstructure:"secret"`
	SessionTTL time.Duration     `mapstructure:"session_ttl"`
	Log        string            `mapstructure:"log"`
	Debug      bool              `mapstructure:"debug"`
	Accounts   map[string]string `mapstructure:"accounts"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// BasePath is the root directory of the entry store.
func (c *Config) BasePath() string {
	return c.Path
}

// Load reads .diary.yaml from $DIARY_CONFIG_PATH, the working directory and
// $HOME, then applies DIARY_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".diary") // .yaml is implicit
	if override := os.Getenv(PathEnv); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	return load(v)
}

// LoadFile reads the given config file instead of searching for one. The
// name must not be set afterwards, viper drops the explicit file when it is.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("path", DefaultPath)
	v.SetDefault("session", DefaultSession)
	v.SetDefault("key", DefaultKey)
	v.SetDefault("session_ttl", DefaultSessionTTL.String())
	v.SetDefault("debug", false)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{"secret", "log"} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	ttl, err := time.ParseDuration(strings.TrimSpace(v.GetString("session_ttl")))
	if err != nil {
		return nil, fmt.Errorf("config: session_ttl: %w", err)
	}

	c := &Config{
		Secret:     v.GetString("secret"),
		SessionTTL: ttl,
		Debug:      v.GetBool("debug"),
		Accounts:   make(map[string]string),
		File:       v.ConfigFileUsed(),
	}
	for email, hash := range v.GetStringMapString("accounts") {
		c.Accounts[strings.ToLower(strings.TrimSpace(email))] = hash
	}

	for _, p := range []struct {
		dst *string
		key string
	}{
		{&c.Path, "path"},
		{&c.Session, "session"},
		{&c.Key, "key"},
		{&c.Log, "log"},
	} {
		raw := strings.TrimSpace(v.GetString(p.key))
		if raw == "" {
			continue
		}
		expanded, err := homedir.Expand(raw)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", p.key, err)
		}
		*p.dst = expanded
	}
	return c, nil
}
