package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"fish-toolbox/internal/cli"
	"fish-toolbox/internal/config"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Parse command-line flags
	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	configPath := flag.String("config", "default_config.yaml", "Path to the game configuration")
	seed := flag.Int64("seed", 0, "Seed for a reproducible run (0 picks one from the clock)")
	flag.Parse()

	// 2. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 3. Load game configuration
	gameConfig, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 4. Create the CLI, injecting the logger
	ui := cli.NewCLI(log)

	// 5. Run the application
	// We pass the args and a random source for this run.
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Debugf("Using seed %d.", *seed)
	randSource := rand.New(rand.NewSource(*seed))
	if err := ui.Run(flag.Args(), gameConfig, randSource); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
