package main

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// config holds settings read from the environment.
type config struct {
	TemplatesDir string     `env:"CERTGEN_TEMPLATES_DIR"`
	PresetsDir   string     `env:"CERTGEN_PRESETS_DIR"`
	ThemesDir    string     `env:"CERTGEN_THEMES_DIR"`
	Theme        string     `env:"CERTGEN_THEME"`
	ThemeVariant string     `env:"CERTGEN_THEME_VARIANT"`
	MessagesFile string     `env:"CERTGEN_MESSAGES_FILE"`
	Locale       string     `env:"CERTGEN_LOCALE"`
	DateLayout   string     `env:"CERTGEN_DATE_LAYOUT"`
	InlineStyles bool       `env:"CERTGEN_INLINE_STYLES" envDefault:"true"`
	LogLevel     slog.Level `env:"CERTGEN_LOG_LEVEL"     envDefault:"info"`
	HTTPBasePath string     `env:"CERTGEN_HTTP_BASE_PATH" envDefault:"/"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
