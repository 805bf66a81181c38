package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Training TrainingConfig `yaml:"training"`
	Plots    PlotsConfig    `yaml:"plots"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Log LogConfig `yaml:"log"`
}

type TrainingConfig struct {
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	EvalInterval int     `yaml:"eval_interval"`
	ThetasPath   string  `yaml:"thetas_path"`
}

type PlotsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Training: TrainingConfig{
			LearningRate: 0.05,
			Epochs:       10000,
			EvalInterval: 100,
			ThetasPath:   "thetas.txt",
		},
		Plots: PlotsConfig{
			Enabled: true,
			Dir:     "plots",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
	cfg.Database.Path = "data/training.db"
	return cfg
}

// Load reads path on top of the defaults. A missing file is not an error.
// The result is not validated so callers can apply overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !(c.Training.LearningRate > 0) {
		return fmt.Errorf("training.learning_rate must be positive, got %v", c.Training.LearningRate)
	}
	if c.Training.Epochs < 1 {
		return fmt.Errorf("training.epochs must be at least 1, got %d", c.Training.Epochs)
	}
	if c.Training.EvalInterval < 1 {
		return fmt.Errorf("training.eval_interval must be at least 1, got %d", c.Training.EvalInterval)
	}
	if c.Training.ThetasPath == "" {
		return errors.New("training.thetas_path is required")
	}
	if c.Plots.Enabled && c.Plots.Dir == "" {
		return errors.New("plots.dir is required when plots are enabled")
	}
	return nil
}
