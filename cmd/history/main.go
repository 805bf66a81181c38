package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/ChristopherOoi/ft-linear-regression/config"
	"github.com/ChristopherOoi/ft-linear-regression/db"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	limit := flag.Int("limit", 10, "number of runs to show")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer store.Close()

	runs, err := store.RecentTrainingRuns(*limit)
	if err != nil {
		log.Fatalf("failed to load training runs: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRAINED AT\tDATASET\tLR\tEPOCHS\tTHETA0\tTHETA1\tR2\tROWS")
	for _, run := range runs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%g\t%d\t%.4f\t%.6f\t%.4f\t%d\n",
			run.ID, run.TrainedAt.Local().Format("2006-01-02 15:04:05"), run.DatasetPath,
			run.LearningRate, run.Epochs, run.Theta0, run.Theta1, run.R2, run.DataPoints)
	}
	w.Flush()
}
