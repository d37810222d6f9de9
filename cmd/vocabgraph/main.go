package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vocabgraph/internal/config"
	"vocabgraph/internal/repository"
	"vocabgraph/internal/repository/sqlite"
	"vocabgraph/internal/service"
	"vocabgraph/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	glossaryPath := flag.String("glossary", "", "glossary document path (overrides config)")
	reportPath := flag.String("report", "", "report document path (overrides config)")
	statsPath := flag.String("stats", "", "frequency record output path (overrides config)")
	imagePath := flag.String("image", "", "graph image output path (overrides config)")
	historyPath := flag.String("history", "", "sqlite run archive path (overrides config)")
	watch := flag.Bool("watch", false, "re-run whenever an input document changes")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, cfgFile, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyOverrides(cfg, *glossaryPath, *reportPath, *statsPath, *imagePath, *historyPath)

	var history repository.Repository
	if cfg.History.Path != "" {
		repo, err := sqlite.New(cfg.History.Path)
		if err != nil {
			log.Fatalf("Failed to open run archive: %v", err)
		}
		defer repo.Close()
		history = repo
		log.Printf("Run archive: %s", cfg.History.Path)
	}

	pipeline := service.New(cfg, history)
	ctx := context.Background()

	if _, err := pipeline.Run(ctx); err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	if !*watch {
		return
	}

	// watch mode: full re-run on every input change until interrupted
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	watched := watcher.Watched{
		Glossary: cfg.Paths.Glossary,
		Report:   cfg.Paths.Report,
		Config:   config.WatchPath(cfgFile),
	}
	err = watcher.Watch(ctx, watched, watcher.Handler{
		OnInput: func(path string) {
			if _, runErr := pipeline.Run(ctx); runErr != nil {
				log.Printf("Pipeline failed after change to %s: %v", path, runErr)
			}
		},
		OnConfig: func(path string) {
			fresh, _, loadErr := config.LoadFromPath(path)
			if loadErr != nil {
				log.Printf("Ignoring config change: %v", loadErr)
				return
			}
			applyOverrides(fresh, *glossaryPath, *reportPath, *statsPath, *imagePath, *historyPath)
			cfg = fresh
			pipeline = service.New(cfg, history)
			log.Printf("Config reloaded: %s", path)
			if _, runErr := pipeline.Run(ctx); runErr != nil {
				log.Printf("Pipeline failed after config reload: %v", runErr)
			}
		},
	})
	if err != nil && err != context.Canceled {
		log.Fatalf("Watcher failed: %v", err)
	}
	log.Println("Stopped")
}

// loadConfig resolves the configuration and the path it came from, so watch
// mode can observe the same file. The path is empty when no file was found.
func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		cfg, _, err := config.LoadFromPath(path)
		return cfg, path, err
	}

	cfg, found, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	if found != "" {
		log.Printf("Config loaded: %s", found)
	}
	return cfg, found, nil
}

func applyOverrides(cfg *config.Config, glossary, report, stats, image, history string) {
	if glossary != "" {
		cfg.Paths.Glossary = glossary
	}
	if report != "" {
		cfg.Paths.Report = report
	}
	if stats != "" {
		cfg.Paths.Stats = stats
	}
	if image != "" {
		cfg.Paths.Image = image
	}
	if history != "" {
		cfg.History.Path = history
	}
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Counts glossary term occurrences in a report, writes a frequency")
		fmt.Fprintln(flag.CommandLine.Output(), "record (JSON) and a relationship graph image (PNG).")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}
}
