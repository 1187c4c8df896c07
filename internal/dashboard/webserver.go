package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tailscale.com/tsweb"

	"github.com/banshee-data/modelboard/internal/chart"
	"github.com/banshee-data/modelboard/internal/config"
	"github.com/banshee-data/modelboard/internal/httputil"
	"github.com/banshee-data/modelboard/internal/monitoring"
	"github.com/banshee-data/modelboard/internal/store"
	"github.com/banshee-data/modelboard/internal/timeutil"
	"github.com/banshee-data/modelboard/internal/version"
)

//go:embed assets/index.html
var assets embed.FS

var indexTemplate = template.Must(template.ParseFS(assets, "assets/index.html"))

// WebServerConfig contains configuration options for the web server.
type WebServerConfig struct {
	Config  *config.Config
	Catalog *Catalog
	Live    *Live
	// Store is optional. With debug routes enabled it adds a SQL console
	// over recorded samples.
	Store *store.Store
}

// WebServer serves the dashboard charts.
type WebServer struct {
	address     string
	debugRoutes bool
	interval    time.Duration
	historyMax  int
	renderer    chart.HTMLRenderer
	catalog     *Catalog
	live        *Live
	store       *store.Store
	handler     http.Handler
	server      *http.Server
}

// NewWebServer creates a web server for the given catalog and live feeds.
func NewWebServer(cfg WebServerConfig) (*WebServer, error) {
	if cfg.Config == nil {
		cfg.Config = config.Empty()
	}
	if cfg.Catalog == nil {
		return nil, errors.New("web server: catalog is required")
	}
	if cfg.Live == nil {
		return nil, errors.New("web server: live feeds are required")
	}
	ws := &WebServer{
		address:     cfg.Config.GetListen(),
		debugRoutes: cfg.Config.GetDebugRoutes(),
		interval:    cfg.Config.GetLiveInterval(),
		historyMax:  cfg.Config.GetStoreKeep(),
		renderer:    chart.HTMLRenderer{AssetsHost: cfg.Config.GetAssetsHost(), Location: cfg.Live.Location()},
		catalog:     cfg.Catalog,
		live:        cfg.Live,
		store:       cfg.Store,
	}
	mux, err := ws.setupRoutes()
	if err != nil {
		return nil, err
	}
	ws.handler = mux
	ws.server = &http.Server{
		Addr:              ws.address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return ws, nil
}

// Handler returns the server's routes.
func (ws *WebServer) Handler() http.Handler { return ws.handler }

// Start runs the live feeds and the HTTP server until ctx is cancelled, then
// shuts both down.
func (ws *WebServer) Start(ctx context.Context) error {
	if err := ws.live.Start(ctx); err != nil {
		return err
	}
	defer ws.live.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", ws.address)
		if err := ws.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}
	log.Println("shutting down HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := ws.server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		if err := ws.server.Close(); err != nil {
			log.Printf("HTTP server force close error: %v", err)
		}
	}

	log.Printf("HTTP server routine stopped")
	return nil
}

// setupRoutes configures the HTTP routes and handlers
func (ws *WebServer) setupRoutes() (*http.ServeMux, error) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", ws.handleHealth)
	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/charts/", ws.handleChart)
	mux.HandleFunc("/api/charts", ws.handleChartList)
	mux.HandleFunc("/api/charts/", ws.handleChartGeometry)
	mux.HandleFunc("/live/", ws.handleLiveChart)
	mux.HandleFunc("/api/live", ws.handleLiveList)
	mux.HandleFunc("/api/live/", ws.handleLiveSnapshot)

	if ws.debugRoutes {
		debug := tsweb.Debugger(mux)
		debug.KV("Version", version.String())
		debug.Handle("feeds", "Live feed tick counts", http.HandlerFunc(ws.handleFeedStatus))
		if ws.store != nil {
			if err := ws.store.AttachDebug(debug); err != nil {
				return nil, err
			}
		}
	}
	return mux, nil
}

// handleHealth handles the health check endpoint
func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":    "ok",
		"service":   "modelboard",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	data := struct {
		Charts        []Entry
		Live          []string
		Version       string
		Zone          string
		Debug         bool
		RefreshMillis int64
	}{
		Charts:        ws.catalog.Entries(),
		Live:          ws.live.Names(),
		Version:       version.String(),
		Zone:          timeutil.ZoneLabel(ws.live.Location(), time.Now()),
		Debug:         ws.debugRoutes,
		RefreshMillis: ws.interval.Milliseconds(),
	}
	w.Header().Set("Content-Type", httputil.ContentTypeHTML)
	if err := indexTemplate.Execute(w, data); err != nil {
		monitoring.Opsf("render index: %v", err)
	}
}

// splitAsset splits "name.ext" from the tail of path after prefix.
func splitAsset(path, prefix string) (name, ext string, ok bool) {
	file := strings.TrimPrefix(path, prefix)
	if file == "" || strings.Contains(file, "/") {
		return "", "", false
	}
	dot := strings.LastIndexByte(file, '.')
	if dot <= 0 {
		return "", "", false
	}
	return file[:dot], file[dot+1:], true
}

// handleChart serves /charts/{name}.svg and /charts/{name}.html.
func (ws *WebServer) handleChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	name, ext, ok := splitAsset(r.URL.Path, "/charts/")
	if !ok {
		httputil.BadRequest(w, "expected /charts/{name}.svg or /charts/{name}.html")
		return
	}
	entry, ok := ws.catalog.Get(name)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("unknown chart %q", name))
		return
	}
	switch ext {
	case "svg":
		c, err := entry.Build()
		if err != nil {
			httputil.UnprocessableEntity(w, err.Error())
			return
		}
		ws.writeDrawing(w, c)
	case "html":
		body, err := entry.HTML(ws.renderer)
		if err != nil {
			httputil.UnprocessableEntity(w, err.Error())
			return
		}
		httputil.WriteHTML(w, body)
	default:
		httputil.BadRequest(w, fmt.Sprintf("unsupported format %q", ext))
	}
}

func (ws *WebServer) handleChartList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.catalog.Entries())
}

// handleChartGeometry returns the chart's metadata and laid out geometry.
func (ws *WebServer) handleChartGeometry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/charts/")
	entry, ok := ws.catalog.Get(name)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("unknown chart %q", name))
		return
	}
	c, err := entry.Build()
	if err != nil {
		httputil.UnprocessableEntity(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, c)
}

// handleLiveChart serves /live/{name}.svg and /live/{name}.html.
func (ws *WebServer) handleLiveChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	name, ext, ok := splitAsset(r.URL.Path, "/live/")
	if !ok {
		httputil.BadRequest(w, "expected /live/{name}.svg or /live/{name}.html")
		return
	}
	if _, _, ok := ws.live.Stream(name); !ok {
		httputil.NotFound(w, fmt.Sprintf("unknown live series %q", name))
		return
	}
	switch ext {
	case "svg":
		c, err := ws.live.Chart(name)
		if err != nil {
			httputil.UnprocessableEntity(w, err.Error())
			return
		}
		ws.writeDrawing(w, c)
	case "html":
		body, err := ws.live.HTML(name, ws.renderer)
		if err != nil {
			httputil.UnprocessableEntity(w, err.Error())
			return
		}
		httputil.WriteHTML(w, body)
	default:
		httputil.BadRequest(w, fmt.Sprintf("unsupported format %q", ext))
	}
}

func (ws *WebServer) handleLiveList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, ws.live.Names())
}

// handleLiveSnapshot returns a series' current window and statistics. With
// ?history=N it also returns the newest N recorded samples from the store.
func (ws *WebServer) handleLiveSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/live/")
	snap, ok := ws.live.Snapshot(name)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("unknown live series %q", name))
		return
	}

	if raw := r.URL.Query().Get("history"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.BadRequest(w, fmt.Sprintf("invalid history %q: want a positive count", raw))
			return
		}
		if ws.store == nil {
			httputil.BadRequest(w, "no sample store configured")
			return
		}
		n = min(n, ws.historyMax)
		history, err := ws.store.Samples(r.Context(), name, n)
		if err != nil {
			monitoring.Opsf("live history %s: %v", name, err)
			httputil.InternalServerError(w, "failed to read recorded samples")
			return
		}
		snap.History = history
	}
	httputil.WriteJSONOK(w, snap)
}

func (ws *WebServer) handleFeedStatus(w http.ResponseWriter, r *http.Request) {
	type feedStatus struct {
		Name     string `json:"name"`
		Running  bool   `json:"running"`
		Ticks    uint64 `json:"ticks"`
		Len      int    `json:"len"`
		Capacity int    `json:"capacity"`
	}
	var out []feedStatus
	for _, name := range ws.live.Names() {
		_, f, _ := ws.live.Stream(name)
		out = append(out, feedStatus{
			Name:     name,
			Running:  f.Running(),
			Ticks:    f.Ticks(),
			Len:      f.Buffer().Len(),
			Capacity: f.Buffer().Cap(),
		})
	}
	httputil.WriteJSONOK(w, out)
}

func (ws *WebServer) writeDrawing(w http.ResponseWriter, c *chart.Chart) {
	body, err := c.Drawing.SVG()
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteSVG(w, body)
}
