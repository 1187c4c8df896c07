// Command modelboard serves the model dashboard charts and live monitors.
// "modelboard migrate up|down|status" manages the sample store schema.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/modelboard/internal/config"
	"github.com/banshee-data/modelboard/internal/dashboard"
	"github.com/banshee-data/modelboard/internal/live"
	"github.com/banshee-data/modelboard/internal/monitoring"
	"github.com/banshee-data/modelboard/internal/store"
	"github.com/banshee-data/modelboard/internal/timeutil"
	"github.com/banshee-data/modelboard/internal/version"
)

var (
	configPath  = flag.String("config", config.DefaultConfigPath, "Path to JSON config file")
	listen      = flag.String("listen", "", "Listen address (overrides config)")
	storePath   = flag.String("store", "", "SQLite file to record live samples to (overrides config)")
	debugRoutes = flag.Bool("debug", false, "Mount /debug routes")
	trace       = flag.Bool("trace", false, "Log every live feed tick")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cfg *config.Config) {
	if *listen != "" {
		cfg.Listen = listen
	}
	if *storePath != "" {
		cfg.StorePath = storePath
	}
	if *debugRoutes {
		cfg.DebugRoutes = debugRoutes
	}
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *trace {
		monitoring.SetLogWriters(monitoring.LogWriters{Ops: os.Stderr, Diag: os.Stderr, Trace: os.Stderr})
	}

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	if flag.Arg(0) == "migrate" {
		if err := runMigrate(cfg, flag.Args()[1:], os.Stdout); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
	log.Print("modelboard stopped")
}

// runMigrate runs a schema migration action against the configured store.
func runMigrate(cfg *config.Config, args []string, w io.Writer) error {
	path := cfg.GetStorePath()
	if path == "" {
		return errors.New("no sample store configured; pass -store or set store_path")
	}
	return store.RunMigrate(w, path, args)
}

func run(ctx context.Context, cfg *config.Config) error {
	var (
		st  *store.Store
		rec live.Recorder
	)
	if path := cfg.GetStorePath(); path != "" {
		var err error
		st, err = store.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open sample store: %w", err)
		}
		defer st.Close()
		if err := dashboard.PrepareStore(ctx, st, cfg.GetStoreKeep()); err != nil {
			return fmt.Errorf("failed to prepare sample store: %w", err)
		}
		rec = st
		log.Printf("recording live samples to %s", path)
	}

	feeds, err := dashboard.NewLive(cfg, timeutil.RealClock{}, rec)
	if err != nil {
		return fmt.Errorf("failed to create live feeds: %w", err)
	}
	ws, err := dashboard.NewWebServer(dashboard.WebServerConfig{
		Config:  cfg,
		Catalog: dashboard.NewCatalog(cfg),
		Live:    feeds,
		Store:   st,
	})
	if err != nil {
		return fmt.Errorf("failed to create web server: %w", err)
	}
	log.Print(version.String())
	return ws.Start(ctx)
}
