package dashboard

import (
	"context"

	"github.com/banshee-data/modelboard/internal/mockdata"
	"github.com/banshee-data/modelboard/internal/monitoring"
	"github.com/banshee-data/modelboard/internal/store"
)

// PrepareStore registers every live stream in st and trims each series to
// its newest keep samples.
func PrepareStore(ctx context.Context, st *store.Store, keep int) error {
	for _, s := range mockdata.Streams() {
		if err := st.RegisterSeries(ctx, store.SeriesInfo{
			Name:  s.Name,
			Title: s.Title,
			Unit:  s.Unit,
			Min:   s.Min,
			Max:   s.Max,
		}); err != nil {
			return err
		}
		removed, err := st.Prune(ctx, s.Name, keep)
		if err != nil {
			return err
		}
		if removed > 0 {
			monitoring.Diagf("pruned %d %s samples (keep=%d)", removed, s.Name, keep)
		}
	}
	return nil
}
