package main

import (
	"fmt"
	"strings"
	"sync"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"lexfeatures/internal/config"
	"lexfeatures/internal/extract"
	"lexfeatures/internal/gazetteer"
	"lexfeatures/internal/logging"
	"lexfeatures/internal/normalize"
	"lexfeatures/internal/volume"
	"lexfeatures/internal/workspace"
)

type globalFlags struct {
	config   string
	logLevel string
	logJSON  bool
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if level := strings.TrimSpace(c.flags.logLevel); level != "" {
			cfg.Logging.Level = level
		}
		if c.flags.logJSON {
			cfg.Logging.JSON = true
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) *charmlog.Logger {
	cfg, err := c.ensureConfig()
	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if err == nil {
		logCfg.Level = cfg.Logging.Level
		logCfg.JSON = cfg.Logging.JSON
	}
	return logging.New(logCfg)
}

func (c *commandContext) normalizer() (*normalize.Normalizer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	g, err := gazetteer.Load(cfg.Gazetteer.Dir)
	if err != nil {
		return nil, fmt.Errorf("load gazetteer: %w", err)
	}
	if cfg.Gazetteer.DisableNames {
		g = g.WithoutNames()
	}
	return normalize.New(g), nil
}

// extractor wires the configured normalizer and outputs rooted at outDir,
// falling back to output.dir when outDir is empty.
func (c *commandContext) extractor(cmd *cobra.Command, outDir string) (*extract.Extractor, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	n, err := c.normalizer()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(outDir) == "" {
		outDir = cfg.Output.Dir
	}
	layout, err := workspace.EnsureAt(outDir)
	if err != nil {
		return nil, err
	}
	return &extract.Extractor{
		Normalizer: n,
		Options:    volume.Options{RetainPages: cfg.Batch.RetainPages},
		Layout:     layout,
		Outputs: extract.Outputs{
			PerVolume: cfg.Output.PerVolume,
			Overwrite: cfg.Output.Overwrite,
			SharedCSV: cfg.Output.SharedCSV,
			SQLite:    cfg.Output.SQLite,
		},
		Logger: c.logger(cmd),
	}, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
