package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/phoneharvest/internal/app"
	"github.com/hyperifyio/phoneharvest/internal/fetch"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Optional .env next to the working directory; absence is fine.
	_ = godotenv.Load()

	var (
		inputPath  string
		outputPath string
		urlColumn  string
		configPath string
		userAgent  string
		timeout    time.Duration
		verbose    bool
	)

	flag.StringVar(&inputPath, "input", os.Getenv("PHONEHARVEST_INPUT"), "Path to input CSV or XLSX file with a URL column")
	flag.StringVar(&outputPath, "output", os.Getenv("PHONEHARVEST_OUTPUT"), "Path for the augmented output file (default: phone_numbers_extracted.<ext> next to input)")
	flag.StringVar(&urlColumn, "column", os.Getenv("PHONEHARVEST_COLUMN"), "Name of the URL column (default: auto-detect)")
	flag.StringVar(&configPath, "config", os.Getenv("PHONEHARVEST_CONFIG"), "Optional YAML/JSON config file")
	flag.StringVar(&userAgent, "fetch.ua", os.Getenv("PHONEHARVEST_UA"), "User-Agent header for page fetches (default: browser-like)")
	flag.DurationVar(&timeout, "fetch.timeout", 0, "Per-request timeout (default 10s)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	cfg := app.Config{
		InputPath:    inputPath,
		OutputPath:   outputPath,
		URLColumn:    urlColumn,
		UserAgent:    userAgent,
		FetchTimeout: timeout,
		Verbose:      verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("config", configPath).Msg("read config file")
			os.Exit(2)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fetch.DefaultUserAgent
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = fetch.DefaultTimeout
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.InputPath == "" {
		log.Error().Msg("missing -input file")
		flag.Usage()
		os.Exit(2)
	}

	if err := app.New(cfg).Run(context.Background()); err != nil {
		// Only the input/output boundary is fatal; row failures are already
		// recorded in the output table.
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}
