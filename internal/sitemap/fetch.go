package sitemap

import (
	"context"

	"geositemap/internal/store"
	"geositemap/pkg/logger"
)

// CityPager walks the city table in ranking order and yields windows of
// the URL-deduplicated sequence. Each call re-fetches from scratch; the
// stable ordering in the store keeps window boundaries consistent between
// calls.
type CityPager struct {
	source     DataSource
	urls       *URLBuilder
	batchSize  int
	maxBatches int
	log        *logger.Logger
}

func NewCityPager(source DataSource, urls *URLBuilder, batchSize, maxBatches int) *CityPager {
	return &CityPager{
		source:     source,
		urls:       urls,
		batchSize:  batchSize,
		maxBatches: maxBatches,
		log:        logger.GetLogger().WithField("component", "city_pager"),
	}
}

// FetchPage returns the slice [offset, offset+limit) of the deduplicated
// city sequence. Duplicates are records whose canonical URL has already
// appeared; they are discarded and do not count toward offsets.
//
// Data-source errors stop the walk but never surface: the caller gets
// whatever was accumulated, and an empty source yields an empty slice.
func (p *CityPager) FetchPage(ctx context.Context, offset, limit int) []store.City {
	if offset < 0 || limit <= 0 {
		return nil
	}

	// rawOffset counts rows consumed from the source, deduped counts rows
	// retained. Conflating the two shifts window boundaries.
	seen := make(map[string]struct{})
	deduped := make([]store.City, 0, offset+limit)
	rawOffset := 0

	for batch := 0; batch < p.maxBatches && len(deduped) < offset+limit; batch++ {
		rows, err := p.source.ListCities(ctx, rawOffset, p.batchSize)
		if err != nil {
			p.log.WithError(err).WithField("batch", batch).Warn("city fetch failed, returning partial page")
			break
		}

		for _, c := range rows {
			if c.Name == "" || c.StateAbbreviation == "" {
				continue
			}
			url := p.urls.CityRecordURL(c)
			if _, dup := seen[url]; dup {
				continue
			}
			seen[url] = struct{}{}
			deduped = append(deduped, c)
		}

		rawOffset += len(rows)
		if len(rows) < p.batchSize {
			break // source exhausted
		}
	}

	if offset >= len(deduped) {
		return nil
	}
	end := offset + limit
	if end > len(deduped) {
		end = len(deduped)
	}
	return deduped[offset:end]
}
