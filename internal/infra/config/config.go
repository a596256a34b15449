package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig is the console's full configuration tree.
type AppConfig struct {
	App AppSettings `mapstructure:"app"`
	API APISettings `mapstructure:"api"`
	UI  UISettings  `mapstructure:"ui"`
}

// AppSettings identifies the process itself.
type AppSettings struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	LogFile string `mapstructure:"log_file"`
}

// APISettings configures the platform API connection. Token is the
// operator's access token; the console never performs a login flow itself.
type APISettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UISettings configures presentation knobs.
type UISettings struct {
	PageSize int `mapstructure:"page_size"`
}

// Load reads configuration with viper: defaults, then an optional
// config.yaml, then CANOPS_* environment overrides.
func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("CANOPS")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.log_file",
		"api.base_url",
		"api.token",
		"api.timeout",
		"ui.page_size",
	}); err != nil {
		return nil, err
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if strings.TrimSpace(cfg.API.BaseURL) == "" {
		return nil, fmt.Errorf("api.base_url is required")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "canops-console")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_file", "")

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", "15s")

	v.SetDefault("ui.page_size", 15)
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "CANOPS_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
