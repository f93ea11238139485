// Package config loads Skylark runtime configuration from a TOML file
// and environment variables, exposing typed structs for all sections.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration loaded from defaults, config.toml,
// and env vars. It is constructed once at startup and passed down
// explicitly; nothing below the CLI reads the environment directly.
type Config struct {
	// HomeDir is runtime-resolved from SKYLARK_HOME and not read from config.
	HomeDir string                       `mapstructure:"-"`
	LLM     map[string]LLMProviderConfig `mapstructure:"llm"`
	Weather WeatherConfig                `mapstructure:"weather"`
	Chat    ChatConfig                   `mapstructure:"chat"`
}

// LLMProviderConfig configures one LLM provider profile.
type LLMProviderConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	Provider       string        `mapstructure:"provider"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// WeatherConfig configures the get_weather tool endpoint.
type WeatherConfig struct {
	Endpoint       string        `mapstructure:"endpoint"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// ChatConfig configures conversation behavior. An empty system_prompt
// selects the built-in default prompt.
type ChatConfig struct {
	SystemPrompt string `mapstructure:"system_prompt"`
}

var defaultConfig = Config{
	LLM: map[string]LLMProviderConfig{
		"default": {
			APIKey:         "",
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			BaseURL:        "",
			MaxTokens:      1024,
			RequestTimeout: 60 * time.Second,
		},
	},
	Weather: WeatherConfig{
		Endpoint:       "https://api.open-meteo.com/v1/forecast",
		RequestTimeout: 10 * time.Second,
	},
	Chat: ChatConfig{
		SystemPrompt: "",
	},
}

// defaultUserConfig is the minimal bootstrap config written for
// first-time users. It intentionally contains only user-editable
// essentials and not the full runtime default surface.
var defaultUserConfig = Config{
	LLM: map[string]LLMProviderConfig{
		"default": {
			APIKey:         "$OPENAI_API_KEY",
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			RequestTimeout: 60 * time.Second,
		},
	},
	Weather: WeatherConfig{
		Endpoint:       "https://api.open-meteo.com/v1/forecast",
		RequestTimeout: 10 * time.Second,
	},
}

// homeDir returns the Skylark home directory.
// Uses SKYLARK_HOME env var if set, otherwise defaults to ~/.skylark.
func homeDir() (string, error) {
	if dir := os.Getenv("SKYLARK_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return defaultHomePath(home), nil
}

// Load merges hardcoded defaults and config file values in that order.
// Config is always at $SKYLARK_HOME/config.toml; a .env file next to
// it is loaded into the process environment first so $VAR references
// in string values can resolve against it.
func Load() (*Config, error) {
	homeDir, err := homeDir()
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load(homeEnvPath(homeDir))

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(homeConfigPath(homeDir))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		expandEnvStringHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	if err := v.Unmarshal(&cfg, func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = decodeHook
	}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.HomeDir = homeDir

	return &cfg, nil
}

// Write writes the merged configuration (defaults overlaid by user
// config) to w in TOML format.
func Write(w io.Writer) error {
	if w == nil {
		return errors.New("writer is required")
	}

	homeDir, err := homeDir()
	if err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(homeConfigPath(homeDir))
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read config file: %w", err)
		}
	}

	// Keep duration fields human-readable in generated TOML.
	v.Set("llm.default.request_timeout", v.GetDuration("llm.default.request_timeout").String())
	v.Set("weather.request_timeout", v.GetDuration("weather.request_timeout").String())

	if err := v.WriteConfigTo(w); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultUserConfigTOML renders the minimal bootstrap user config as TOML.
func DefaultUserConfigTOML() (string, error) {
	v := viper.New()
	v.SetConfigType("toml")

	for profile, llm := range defaultUserConfig.LLM {
		v.Set("llm."+profile+".api_key", llm.APIKey)
		v.Set("llm."+profile+".provider", llm.Provider)
		v.Set("llm."+profile+".model", llm.Model)
		v.Set("llm."+profile+".request_timeout", llm.RequestTimeout.String())
	}
	v.Set("weather.endpoint", defaultUserConfig.Weather.Endpoint)
	v.Set("weather.request_timeout", defaultUserConfig.Weather.RequestTimeout.String())

	var out bytes.Buffer
	if err := v.WriteConfigTo(&out); err != nil {
		return "", fmt.Errorf("write default user config: %w", err)
	}
	return out.String(), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.default.api_key", defaultConfig.LLM["default"].APIKey)
	v.SetDefault("llm.default.provider", defaultConfig.LLM["default"].Provider)
	v.SetDefault("llm.default.model", defaultConfig.LLM["default"].Model)
	v.SetDefault("llm.default.base_url", defaultConfig.LLM["default"].BaseURL)
	v.SetDefault("llm.default.max_tokens", defaultConfig.LLM["default"].MaxTokens)
	v.SetDefault("llm.default.request_timeout", defaultConfig.LLM["default"].RequestTimeout)

	v.SetDefault("weather.endpoint", defaultConfig.Weather.Endpoint)
	v.SetDefault("weather.request_timeout", defaultConfig.Weather.RequestTimeout)

	v.SetDefault("chat.system_prompt", defaultConfig.Chat.SystemPrompt)
}

// DefaultLLM returns the default LLM profile with fallback defaults.
func (c *Config) DefaultLLM() LLMProviderConfig {
	if llm, ok := c.LLM["default"]; ok {
		return llm
	}
	return defaultConfig.LLM["default"]
}

func expandEnvStringHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		value, ok := data.(string)
		if !ok {
			return data, nil
		}
		return os.ExpandEnv(value), nil
	}
}
