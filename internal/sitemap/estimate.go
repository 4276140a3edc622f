package sitemap

import (
	"context"

	"geositemap/internal/store"
	"geositemap/pkg/logger"
)

// DataSource is the read surface the sitemap pipeline needs from the
// database layer. *store.Store satisfies it.
type DataSource interface {
	ListStates(ctx context.Context) ([]store.State, error)
	ListCities(ctx context.Context, offset, limit int) ([]store.City, error)
	CountCities(ctx context.Context) (int, error)
}

// EstimateFileCount returns how many paginated city sitemap files cover
// totalRows entries at capacity rows per file: ceil(totalRows/capacity)
// clamped to [minFiles, maxFiles].
func EstimateFileCount(totalRows, capacity, minFiles, maxFiles int) int {
	if capacity <= 0 {
		return minFiles
	}
	count := (totalRows + capacity - 1) / capacity
	if count < minFiles {
		count = minFiles
	}
	if count > maxFiles {
		count = maxFiles
	}
	return count
}

// Estimator wraps EstimateFileCount with the live row count. A failing
// count query degrades to the configured default instead of erroring;
// the fallback may undercount when the real row count is large, which is
// why DefaultFileCount is an exposed config knob.
type Estimator struct {
	source   DataSource
	capacity int
	minFiles int
	maxFiles int
	fallback int
	log      *logger.Logger
}

func NewEstimator(source DataSource, capacity, minFiles, maxFiles, fallback int) *Estimator {
	return &Estimator{
		source:   source,
		capacity: capacity,
		minFiles: minFiles,
		maxFiles: maxFiles,
		fallback: fallback,
		log:      logger.GetLogger().WithField("component", "estimator"),
	}
}

// FileCount never returns an error; all failure modes degrade to the
// fallback count.
func (e *Estimator) FileCount(ctx context.Context) int {
	total, err := e.source.CountCities(ctx)
	if err != nil {
		e.log.WithError(err).Warn("city count unavailable, using fallback file count")
		return e.fallback
	}
	return EstimateFileCount(total, e.capacity, e.minFiles, e.maxFiles)
}
