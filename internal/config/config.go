// Package config loads lunarshell settings from, in increasing precedence:
// built-in defaults, a YAML config file, a .env file in the working
// directory, and LUNAR_* environment variables. CLI flags are applied on top
// by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Settings holds the host-configurable knobs of the shell CLI.
type Settings struct {
	Prompt    string `yaml:"prompt"`
	StartText string `yaml:"start_text"`
	LogLevel  string `yaml:"log_level"`
	LogFile   string `yaml:"log_file"`
	AltBuffer bool   `yaml:"alt_buffer"`
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Prompt:    "lunar> ",
		AltBuffer: true,
	}
}

// Path returns the config file location: $LUNAR_CONFIG if set, otherwise
// <user config dir>/lunarshell/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("LUNAR_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "lunarshell", "config.yaml"), nil
}

// Load assembles settings from all sources. A missing config file or .env
// file is not an error; a malformed config file is.
func Load() (Settings, error) {
	// .env first so its variables participate in the env override pass.
	_ = godotenv.Load()

	s := Defaults()

	path, err := Path()
	if err == nil {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, &s); err != nil {
				return s, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	applyEnv(&s)
	return s, nil
}

func applyEnv(s *Settings) {
	if v := os.Getenv("LUNAR_PROMPT"); v != "" {
		s.Prompt = v
	}
	if v := os.Getenv("LUNAR_START_TEXT"); v != "" {
		s.StartText = v
	}
	if v := os.Getenv("LUNAR_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("LUNAR_LOG_FILE"); v != "" {
		s.LogFile = v
	}
	if v := os.Getenv("LUNAR_ALT_BUFFER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.AltBuffer = b
		}
	}
}
