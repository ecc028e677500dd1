package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "LEXFEAT_"

// Gazetteer locates the lookup lists used by the normalizer.
type Gazetteer struct {
	Dir          string `toml:"dir" env:"GAZETTEER_DIR"`
	DisableNames bool   `toml:"disable_names" env:"DISABLE_NAMES"`
}

// Output controls where and how feature tables are written.
type Output struct {
	Dir       string `toml:"dir" env:"OUTPUT_DIR"`
	Overwrite bool   `toml:"overwrite" env:"OVERWRITE"`
	PerVolume bool   `toml:"per_volume" env:"PER_VOLUME"`
	SharedCSV bool   `toml:"shared_csv" env:"SHARED_CSV"`
	SQLite    bool   `toml:"sqlite" env:"SQLITE"`
}

type Batch struct {
	Workers     int  `toml:"workers" env:"WORKERS"`
	RetainPages bool `toml:"retain_pages" env:"RETAIN_PAGES"`
}

type Tokenizer struct {
	Lexicon     string `toml:"lexicon" env:"LEXICON"`
	Punctuation string `toml:"punctuation" env:"PUNCTUATION"`
}

type Logging struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	JSON  bool   `toml:"json" env:"LOG_JSON"`
}

// Config is the full lexfeat configuration.
type Config struct {
	Gazetteer Gazetteer `toml:"gazetteer"`
	Output    Output    `toml:"output"`
	Batch     Batch     `toml:"batch"`
	Tokenizer Tokenizer `toml:"tokenizer"`
	Logging   Logging   `toml:"logging"`
}

func Default() Config {
	return Config{
		Output: Output{
			Dir:       "./features",
			PerVolume: true,
		},
		Logging: Logging{Level: "info"},
	}
}

// SampleConfig returns the commented configuration template.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath is where Load looks when no path is given.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/lexfeat/config.toml")
}

// Load reads the TOML file at path (or the default location), applies .env
// and LEXFEAT_* environment overrides, then normalizes and validates. A
// missing default file is not an error; a missing explicit one is.
func Load(path string) (*Config, string, error) {
	cfg := Default()

	resolved, explicit, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}
	baseDir := ""
	if resolved != "" {
		file, err := os.Open(resolved)
		switch {
		case err == nil:
			defer file.Close()
			if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
				return nil, "", fmt.Errorf("parse config: %w", err)
			}
			baseDir = filepath.Dir(resolved)
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			resolved = ""
		default:
			return nil, "", fmt.Errorf("open config: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, "", fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.normalize(baseDir); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(path)
		return expanded, true, err
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	return defaultPath, false, nil
}

// WriteSample writes the sample configuration, refusing to replace a file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(sampleConfig); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
