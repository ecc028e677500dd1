package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const gazetteerDirName = "gazetteers"

var validLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// normalize resolves relative paths against baseDir (the config file's
// directory) and fills derived defaults.
func (c *Config) normalize(baseDir string) error {
	var err error
	if strings.TrimSpace(c.Gazetteer.Dir) == "" {
		c.Gazetteer.Dir = defaultGazetteerDir()
	}
	if c.Gazetteer.Dir, err = resolve(baseDir, c.Gazetteer.Dir); err != nil {
		return fmt.Errorf("gazetteer.dir: %w", err)
	}
	if c.Output.Dir, err = resolve(baseDir, c.Output.Dir); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if c.Tokenizer.Lexicon, err = resolve(baseDir, c.Tokenizer.Lexicon); err != nil {
		return fmt.Errorf("tokenizer.lexicon: %w", err)
	}
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = runtime.NumCPU()
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir must be set")
	}
	if !c.Output.PerVolume && !c.Output.SharedCSV && !c.Output.SQLite {
		return errors.New("output: enable at least one of per_volume, shared_csv or sqlite")
	}
	if _, ok := validLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

func resolve(baseDir, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if baseDir != "" && !filepath.IsAbs(value) && !strings.HasPrefix(value, "~") {
		value = filepath.Join(baseDir, value)
	}
	return expandPath(value)
}

// defaultGazetteerDir sits next to the running binary.
func defaultGazetteerDir() string {
	exe, err := os.Executable()
	if err != nil {
		return gazetteerDirName
	}
	return filepath.Join(filepath.Dir(exe), gazetteerDirName)
}
