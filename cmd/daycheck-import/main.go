// daycheck-import loads a CSV history export into the local rating
// store.
package main

import (
	"context"
	"flag"
	"os"

	"daycheck/internal/cli"
	"daycheck/internal/csvio"
	"daycheck/internal/repository"
)

func main() {
	cli.LoadEnvFile()

	file := flag.String("file", csvio.Filename, "CSV file to import")
	flag.Parse()

	logger := cli.SetupLogger(os.Getenv("DAYCHECK_LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Error("Cannot read import file", "error", err, "file", *file)
		os.Exit(1)
	}

	store := cli.OpenStore(logger, cfg.DBPath)
	defer store.Close()

	repo := repository.New(store)
	before := len(repo.All())

	if err := repo.ImportCSV(context.Background(), string(raw)); err != nil {
		logger.Error("Import failed", "error", err, "file", *file)
		os.Exit(1)
	}

	logger.Info("Import complete",
		"file", *file,
		"imported", len(repo.All()),
		"previously_stored", before)
}
