package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pmscout-engine/internal/classify"
	"pmscout-engine/internal/config"
	"pmscout-engine/internal/logger"
	"pmscout-engine/internal/run"
	"pmscout-engine/internal/scheduler"
	"pmscout-engine/internal/scrape"
	"pmscout-engine/internal/scrape/ashby"
	"pmscout-engine/internal/scrape/board"
	"pmscout-engine/internal/store"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	watch := flag.Bool("watch", false, "keep running, rescraping on an interval")
	interval := flag.Duration("interval", time.Hour, "rescrape interval in watch mode")
	cfgFlag := flag.String("config", "", "path to config file (overrides bootstrap)")
	flag.Parse()

	log := logger.New(os.Stderr)

	envCfg, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "environment parse failed: %v\n", err)
		return 1
	}

	dataDir := envCfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "data dir: %v\n", err)
		return 1
	}

	cfgPath := *cfgFlag
	if cfgPath == "" {
		cfgPath = envCfg.ConfigPath
	}
	if cfgPath == "" {
		cfgPath, err = config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "config bootstrap failed: %v\n", err)
			return 1
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed (%s): %v\n", cfgPath, err)
		return 1
	}
	envCfg.Overlay(&cfg)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	if cfg.App.DataDir != "" && cfg.App.DataDir != dataDir {
		dataDir = cfg.App.DataDir
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "data dir: %v\n", err)
			return 1
		}
	}

	runner, err := buildRunner(cfg, dataDir, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pipeline construction failed: %v\n", err)
		return 1
	}
	defer runner.DB.Close()

	targets := cfg.CompanyTargets()

	if *watch {
		log.Info().Dur("interval", *interval).Msg("watch mode")
		scheduler.Every(context.Background(), *interval, "scrape", log, func(ctx context.Context) error {
			sum, err := runner.Run(ctx, targets)
			if err != nil {
				return err
			}
			printSummary(sum)
			return nil
		})
		return 0
	}

	sum, err := runner.Run(context.Background(), targets)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scrape failed: %v\n", err)
		return 1
	}
	printSummary(sum)
	return 0
}

func buildRunner(cfg config.Config, dataDir string, log zerolog.Logger) (*run.Runner, error) {
	cls, err := classify.New(cfg.Classifier)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(filepath.Join(dataDir, "pmscout.db"))
	if err != nil {
		return nil, err
	}

	ashbyExt := ashby.New(ashby.Config{
		UserAgent: cfg.App.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	}, cls, log)

	boardExt := board.New(board.Config{
		Name:          "greenhouse",
		Selectors:     cfg.Selectors.Board,
		FallbackWords: cfg.Selectors.FallbackWords,
		UserAgent:     cfg.App.UserAgent,
		Timeout:       cfg.FetchTimeout(),
		MaxElements:   cfg.Pacing.MaxElementsPerPage,
	}, cls, log)

	genericExt := board.New(board.Config{
		Name:          "generic",
		Selectors:     cfg.Selectors.Generic,
		FallbackWords: cfg.Selectors.FallbackWords,
		UserAgent:     cfg.App.UserAgent,
		Timeout:       cfg.FetchTimeout(),
		MaxElements:   cfg.Pacing.MaxElementsPerPage,
	}, cls, log)

	// order matters: named platforms first, catch-all last
	dispatcher := scrape.NewDispatcher(
		scrape.Route{Match: hostContains("ashbyhq.com"), Extractor: ashbyExt},
		scrape.Route{Match: hostContains("greenhouse.io"), Extractor: boardExt},
		scrape.Route{Match: func(string) bool { return true }, Extractor: genericExt},
	)

	return run.New(dispatcher, db, dataDir, cfg.FetchDelay(), cfg.FetchTimeout(), log), nil
}

func hostContains(needle string) func(string) bool {
	return func(u string) bool {
		return strings.Contains(strings.ToLower(u), needle)
	}
}

func printSummary(sum run.Summary) {
	fmt.Printf("New PM postings found: %d\n", sum.New)
	fmt.Printf("Total postings tracked: %d\n", sum.Total)
	fmt.Printf("Companies scraped: %d\n", sum.Companies)
}
