// Command render-charts writes every dashboard chart to files, for docs and
// visual review without running the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banshee-data/modelboard/internal/chart"
	"github.com/banshee-data/modelboard/internal/config"
	"github.com/banshee-data/modelboard/internal/dashboard"
	"github.com/banshee-data/modelboard/internal/security"
	"github.com/banshee-data/modelboard/internal/timeutil"
)

var (
	outDir     = flag.String("out", "charts", "Output directory")
	format     = flag.String("format", "svg", "Output format: svg, html or png")
	configPath = flag.String("config", "", "Optional JSON config file")
	liveTicks  = flag.Int("live-ticks", 30, "Samples to generate for each live chart (svg and html only)")
)

func main() {
	flag.Parse()

	cfg := config.Empty()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	written, err := render(cfg, *outDir, *format, *liveTicks)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d %s files to %s", len(written), *format, *outDir)
}

// render writes one file per chart and returns the paths written. Charts
// without a static plot are skipped for png.
func render(cfg *config.Config, dir, format string, ticks int) ([]string, error) {
	switch format {
	case "svg", "html", "png":
	default:
		return nil, fmt.Errorf("unsupported format %q (want svg, html or png)", format)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer := chart.HTMLRenderer{AssetsHost: cfg.GetAssetsHost()}
	var written []string
	write := func(name string, body []byte) error {
		path, err := security.OutputPath(dir, name, "."+format)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
		return nil
	}

	for _, e := range dashboard.NewCatalog(cfg).Entries() {
		var body []byte
		switch format {
		case "svg":
			c, err := e.Build()
			if err != nil {
				return written, err
			}
			if body, err = c.Drawing.SVG(); err != nil {
				return written, fmt.Errorf("encode %s: %w", e.Name, err)
			}
		case "html":
			var err error
			if body, err = e.HTML(renderer); err != nil {
				return written, err
			}
		case "png":
			if !e.HasPlot() {
				log.Printf("skipping %s: no static plot", e.Name)
				continue
			}
			p, err := e.Plot()
			if err != nil {
				return written, err
			}
			path, err := security.OutputPath(dir, e.Name, ".png")
			if err != nil {
				return written, err
			}
			f, err := os.Create(path)
			if err != nil {
				return written, fmt.Errorf("failed to create %s: %w", path, err)
			}
			err = chart.WritePlot(f, p, "png")
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return written, err
			}
			written = append(written, path)
			continue
		}
		if err := write(e.Name, body); err != nil {
			return written, err
		}
	}

	if format == "png" || ticks <= 0 {
		return written, nil
	}
	if err := renderLive(cfg, renderer, format, ticks, write); err != nil {
		return written, err
	}
	return written, nil
}

// renderLive fills every live window with ticks synthetic samples one
// interval apart and writes each as live-<name>.
func renderLive(cfg *config.Config, renderer chart.HTMLRenderer, format string, ticks int,
	write func(string, []byte) error) error {
	start := time.Now().Truncate(time.Minute)
	feeds, err := dashboard.NewLive(cfg, timeutil.NewMockClock(start), nil)
	if err != nil {
		return err
	}
	for _, name := range feeds.Names() {
		_, f, _ := feeds.Stream(name)
		for i := range ticks {
			f.Tick(context.Background(), start.Add(time.Duration(i)*f.Interval()))
		}

		var body []byte
		if format == "svg" {
			c, err := feeds.Chart(name)
			if err != nil {
				return err
			}
			if body, err = c.Drawing.SVG(); err != nil {
				return fmt.Errorf("encode live %s: %w", name, err)
			}
		} else if body, err = feeds.HTML(name, renderer); err != nil {
			return err
		}
		if err := write("live-"+name, body); err != nil {
			return err
		}
	}
	return nil
}
