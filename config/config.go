package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// ============================================================================
// CONFIG — File + environment configuration
// ============================================================================
// Precedence: environment variables (SURVEY_*) over config.yaml over
// defaults. The OpenAI key additionally reads the conventional
// OPENAI_API_KEY variable so existing shells keep working.
// ============================================================================

// OpenAIConfig holds the AI provider settings.
type OpenAIConfig struct {
	APIKey   string
	Model    string
	Endpoint string
}

// Config holds the application configuration.
type Config struct {
	Addr           string // server listen address
	MaxUploadBytes int64  // upload size cap
	MaxRows        int    // 0 = unlimited
	SampleSize     int    // sample values per column in the profile
	OpenAI         OpenAIConfig
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: 10 << 20,
		MaxRows:        0,
		SampleSize:     10,
		OpenAI: OpenAIConfig{
			Model:    "gpt-4.1-mini",
			Endpoint: "https://api.openai.com/v1/chat/completions",
		},
	}
}

// Load reads config.yaml from configPath (optional) and applies environment
// overrides. A missing file is not an error.
func Load(configPath string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvPrefix("SURVEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("server.addr")
	v.BindEnv("server.max_upload_bytes")
	v.BindEnv("server.max_rows")
	v.BindEnv("profile.sample_size")
	v.BindEnv("openai.model")
	v.BindEnv("openai.endpoint")
	v.BindEnv("openai.api_key", "SURVEY_OPENAI_API_KEY", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, err
		}
		log.Printf("No config.yaml found, using defaults and env vars")
	}

	if v.IsSet("server.addr") {
		cfg.Addr = v.GetString("server.addr")
	}
	if v.IsSet("server.max_upload_bytes") {
		cfg.MaxUploadBytes = v.GetInt64("server.max_upload_bytes")
	}
	if v.IsSet("server.max_rows") {
		cfg.MaxRows = v.GetInt("server.max_rows")
	}
	if v.IsSet("profile.sample_size") {
		cfg.SampleSize = v.GetInt("profile.sample_size")
	}
	if v.IsSet("openai.api_key") {
		cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	}
	if v.IsSet("openai.model") {
		cfg.OpenAI.Model = v.GetString("openai.model")
	}
	if v.IsSet("openai.endpoint") {
		cfg.OpenAI.Endpoint = v.GetString("openai.endpoint")
	}

	return cfg, nil
}
