package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the non-secret process configuration. The Gemini API key
// is not part of it; the key is read from the environment at request
// time.
type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	StatePath   string `envconfig:"MOT3A_STATE_PATH" default:"mot3a.db"`
	GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
	Production  bool   `envconfig:"PRODUCTION" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
