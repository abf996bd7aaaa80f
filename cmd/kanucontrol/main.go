package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"kanucontrol/internal/config"
	"kanucontrol/internal/hub"
	"kanucontrol/internal/repository/sqlite"
	"kanucontrol/internal/service"
)

func main() {
	// Command line flags
	reset := flag.Bool("reset", false, "delete the store and start with an empty one")
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	dbPath := flag.String("db", "", "SQLite store path (overrides config)")
	exportPath := flag.String("export", "", "write the membership roster as .xlsx to this path")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting KanuControl...")

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if *configPath != "" {
		cfg, path, err = config.LoadFromPath(*configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if path != "" {
		log.Printf("Config loaded: %s", path)
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	sqlite.SetLogLevel(cfg.Log.Level)
	log.Println(cfg.Summary())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open store: create, migrate, seed
	store, err := sqlite.Open(ctx, cfg.Database.Path, sqlite.Options{
		Reset:       *reset,
		BusyTimeout: cfg.BusyTimeout(),
	})
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()
	log.Printf("Store opened: %s", store.Path())

	// Live query hub
	liveHub := hub.New()
	go liveHub.Run(ctx)

	club := service.NewClub(store, liveHub)

	counts, err := store.Counts(ctx)
	if err != nil {
		log.Printf("Failed to count rows: %v", err)
	} else {
		tables := make([]string, 0, len(counts))
		for table := range counts {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		for _, table := range tables {
			log.Printf("  %-14s %d", table, counts[table])
		}
	}

	if *exportPath != "" {
		if err := exportRoster(ctx, club, *exportPath); err != nil {
			log.Printf("Roster export failed: %v", err)
		} else {
			log.Printf("Roster written: %s", *exportPath)
		}
	}

	log.Println("KanuControl stopped")
}

func exportRoster(ctx context.Context, club *service.Club, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := club.ExportRoster(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
