package main

import (
	"testing"

	"github.com/ChristopherOoi/ft-linear-regression/config"
)

func TestFlagsOverrideInvalidConfigBeforeValidation(t *testing.T) {
	cfg := config.Default()
	cfg.Training.LearningRate = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero learning rate to be invalid")
	}

	opts, err := parseFlags([]string{"-f", "data.csv", "-lr", "0.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config should be valid after -lr override: %v", err)
	}
	if cfg.Training.LearningRate != 0.2 {
		t.Errorf("expected learning rate 0.2, got %v", cfg.Training.LearningRate)
	}
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		check   func(t *testing.T, cfg *config.Config, opts *options)
	}{
		{
			name: "unset flags keep config values",
			args: []string{"--file", "data.csv"},
			check: func(t *testing.T, cfg *config.Config, opts *options) {
				if cfg.Training.Epochs != 1234 || cfg.Plots.Dir != "custom" {
					t.Errorf("config values overwritten: %+v", cfg)
				}
				if opts.file != "data.csv" {
					t.Errorf("expected data.csv, got %q", opts.file)
				}
			},
		},
		{
			name: "explicit flags win",
			args: []string{"-f", "data.csv", "-e", "50", "-out", "t.txt", "-plots", "p", "-no-plot"},
			check: func(t *testing.T, cfg *config.Config, opts *options) {
				if cfg.Training.Epochs != 50 || cfg.Training.ThetasPath != "t.txt" || cfg.Plots.Dir != "p" {
					t.Errorf("flags not applied: %+v", cfg)
				}
				if cfg.Plots.Enabled {
					t.Error("-no-plot should disable plots")
				}
			},
		},
		{name: "missing file", args: []string{"-lr", "0.1"}, wantErr: true},
		{name: "bad learning rate", args: []string{"-f", "data.csv", "-lr", "fast"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseFlags(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			cfg := config.Default()
			cfg.Training.Epochs = 1234
			cfg.Plots.Dir = "custom"
			cfg.Plots.Enabled = true
			opts.apply(cfg)
			tt.check(t, cfg, opts)
		})
	}
}
