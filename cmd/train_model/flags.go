package main

import (
	"errors"
	"flag"

	"github.com/ChristopherOoi/ft-linear-regression/config"
)

type options struct {
	file         string
	configPath   string
	learningRate float64
	epochs       int
	out          string
	plotDir      string
	noPlot       bool
	set          map[string]bool
}

func parseFlags(args []string) (*options, error) {
	defaults := config.Default()
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("train_model", flag.ContinueOnError)
	fs.StringVar(&opts.file, "file", "", "path to the dataset CSV (required)")
	fs.StringVar(&opts.file, "f", "", "shorthand for -file")
	fs.StringVar(&opts.configPath, "config", "config.yaml", "config file")
	fs.Float64Var(&opts.learningRate, "lr", defaults.Training.LearningRate, "learning rate for the training")
	fs.IntVar(&opts.epochs, "e", defaults.Training.Epochs, "number of epochs for training")
	fs.StringVar(&opts.out, "out", defaults.Training.ThetasPath, "coefficients output path")
	fs.StringVar(&opts.plotDir, "plots", defaults.Plots.Dir, "directory for evaluation plots")
	fs.BoolVar(&opts.noPlot, "no-plot", false, "disable evaluation plots")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if opts.file == "" {
		return nil, errors.New("-file is required")
	}
	return opts, nil
}

// apply overrides cfg with the flags given on the command line only, so
// values from the config file survive unless explicitly replaced.
func (o *options) apply(cfg *config.Config) {
	if o.set["lr"] {
		cfg.Training.LearningRate = o.learningRate
	}
	if o.set["e"] {
		cfg.Training.Epochs = o.epochs
	}
	if o.set["out"] {
		cfg.Training.ThetasPath = o.out
	}
	if o.set["plots"] {
		cfg.Plots.Dir = o.plotDir
	}
	if o.noPlot {
		cfg.Plots.Enabled = false
	}
}
