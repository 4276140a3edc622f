package sitemap

import (
	"context"

	"geositemap/internal/store"
)

// fakeSource serves canned rows with optional injected failures.
type fakeSource struct {
	states   []store.State
	cities   []store.City
	count    int
	countErr error

	// failAtOffset, when > 0, makes ListCities fail once the requested
	// offset reaches it.
	failAtOffset int

	listCalls int
}

func (f *fakeSource) ListStates(ctx context.Context) ([]store.State, error) {
	return f.states, nil
}

func (f *fakeSource) ListCities(ctx context.Context, offset, limit int) ([]store.City, error) {
	f.listCalls++
	if f.failAtOffset > 0 && offset >= f.failAtOffset {
		return nil, context.DeadlineExceeded
	}
	if offset >= len(f.cities) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.cities) {
		end = len(f.cities)
	}
	out := make([]store.City, end-offset)
	copy(out, f.cities[offset:end])
	return out, nil
}

func (f *fakeSource) CountCities(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.count, nil
}
