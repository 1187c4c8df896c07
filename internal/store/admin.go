package store

import (
	"fmt"
	"net/http"

	"github.com/tailscale/tailsql/server/tailsql"
	"tailscale.com/tsweb"

	"github.com/banshee-data/modelboard/internal/httputil"
)

// AttachDebug adds a tailsql console over the sample store plus JSON views of
// the schema version, the registered series and their recorded samples.
func (s *Store) AttachDebug(debug *tsweb.DebugHandler) error {
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+s.path, s.DB, &tailsql.DBOptions{
		Label: "Live samples",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("schema", "Sample store schema version", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		version, dirty, err := s.MigrateVersion(Migrations())
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteJSONOK(w, map[string]any{"version": version, "dirty": dirty})
	}))
	debug.Handle("samples", "Recorded sample counts per series", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Stats(r.Context())
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteJSONOK(w, stats)
	}))
	debug.Handle("series", "Registered live series", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		series, err := s.SeriesList(r.Context())
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteJSONOK(w, series)
	}))
	return nil
}
