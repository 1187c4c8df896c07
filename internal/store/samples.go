package store

import (
	"context"
	"fmt"
	"time"

	"github.com/banshee-data/modelboard/internal/live"
)

// SeriesInfo describes one recorded series.
type SeriesInfo struct {
	Name  string  `json:"name"`
	Title string  `json:"title"`
	Unit  string  `json:"unit"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// SeriesStats summarises every sample recorded for a series.
type SeriesStats struct {
	Name  string    `json:"name"`
	Count int64     `json:"count"`
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Avg   float64   `json:"avg"`
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// RegisterSeries records a series' display metadata, replacing any earlier
// registration of the same name.
func (s *Store) RegisterSeries(ctx context.Context, info SeriesInfo) error {
	_, err := s.ExecContext(ctx, `
		INSERT INTO series (name, title, unit, min_value, max_value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title = excluded.title,
			unit = excluded.unit,
			min_value = excluded.min_value,
			max_value = excluded.max_value`,
		info.Name, info.Title, info.Unit, info.Min, info.Max)
	if err != nil {
		return fmt.Errorf("register series %q: %w", info.Name, err)
	}
	return nil
}

// SeriesList returns the registered series ordered by name.
func (s *Store) SeriesList(ctx context.Context) ([]SeriesInfo, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT name, title, unit, COALESCE(min_value, 0), COALESCE(max_value, 0)
		FROM series ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	var out []SeriesInfo
	for rows.Next() {
		var info SeriesInfo
		if err := rows.Scan(&info.Name, &info.Title, &info.Unit, &info.Min, &info.Max); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// RecordSample appends one sample. It satisfies live.Recorder.
func (s *Store) RecordSample(ctx context.Context, series string, sample live.Sample) error {
	_, err := s.ExecContext(ctx,
		`INSERT INTO live_samples (series, recorded_unix_nanos, value) VALUES (?, ?, ?)`,
		series, sample.Timestamp.UnixNano(), sample.Value)
	if err != nil {
		return fmt.Errorf("record sample for %q: %w", series, err)
	}
	return nil
}

// Samples returns up to limit of the most recent samples of series, oldest
// first, the same order a live.Buffer reports.
func (s *Store) Samples(ctx context.Context, series string, limit int) ([]live.Sample, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.QueryContext(ctx, `
		SELECT recorded_unix_nanos, value FROM (
			SELECT sample_id, recorded_unix_nanos, value
			FROM live_samples
			WHERE series = ?
			ORDER BY recorded_unix_nanos DESC, sample_id DESC
			LIMIT ?
		) ORDER BY recorded_unix_nanos ASC, sample_id ASC`, series, limit)
	if err != nil {
		return nil, fmt.Errorf("query samples for %q: %w", series, err)
	}
	defer rows.Close()

	var out []live.Sample
	for rows.Next() {
		var nanos int64
		var v float64
		if err := rows.Scan(&nanos, &v); err != nil {
			return nil, err
		}
		out = append(out, live.Sample{Timestamp: time.Unix(0, nanos).UTC(), Value: v})
	}
	return out, rows.Err()
}

// Stats summarises all recorded samples per series, ordered by name.
func (s *Store) Stats(ctx context.Context) ([]SeriesStats, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT series, COUNT(*), MIN(value), MAX(value), AVG(value),
		       MIN(recorded_unix_nanos), MAX(recorded_unix_nanos)
		FROM live_samples
		GROUP BY series
		ORDER BY series`)
	if err != nil {
		return nil, fmt.Errorf("sample stats: %w", err)
	}
	defer rows.Close()

	var out []SeriesStats
	for rows.Next() {
		var st SeriesStats
		var first, last int64
		if err := rows.Scan(&st.Name, &st.Count, &st.Min, &st.Max, &st.Avg, &first, &last); err != nil {
			return nil, err
		}
		st.First = time.Unix(0, first).UTC()
		st.Last = time.Unix(0, last).UTC()
		out = append(out, st)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep samples of series and reports how
// many rows were removed.
func (s *Store) Prune(ctx context.Context, series string, keep int) (int64, error) {
	res, err := s.ExecContext(ctx, `
		DELETE FROM live_samples
		WHERE series = ? AND sample_id NOT IN (
			SELECT sample_id FROM live_samples
			WHERE series = ?
			ORDER BY recorded_unix_nanos DESC, sample_id DESC
			LIMIT ?
		)`, series, series, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("prune %q: %w", series, err)
	}
	return res.RowsAffected()
}
