package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	StoragePath    string        `env:"STORAGE_PATH" envDefault:"./silabas.db"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	AudioCachePath string        `env:"AUDIO_CACHE_PATH" envDefault:"./audio"`
	SpeechLanguage string        `env:"SPEECH_LANGUAGE" envDefault:"es-ES"`
	SpeechEnabled  bool          `env:"SPEECH_ENABLED" envDefault:"false"`
	WordTimeLimit  time.Duration `env:"WORD_TIME_LIMIT" envDefault:"30s"`
	Lives          int           `env:"LIVES" envDefault:"3"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}
