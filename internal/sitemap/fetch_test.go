package sitemap

import (
	"context"
	"fmt"
	"testing"

	"geositemap/internal/config"
	"geositemap/internal/site"
	"geositemap/internal/store"
)

func testSite(t *testing.T, subdomain bool) *site.Site {
	t.Helper()
	s, err := site.New(config.SiteConfig{
		Domain:           "cityguide.net",
		SubdomainRouting: subdomain,
		StaticPages:      []string{"/", "/about/"},
	})
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}
	return s
}

func numberedCities(n int) []store.City {
	cities := make([]store.City, n)
	for i := range cities {
		cities[i] = store.City{Name: fmt.Sprintf("City %04d", i), StateAbbreviation: "tx"}
	}
	return cities
}

func TestFetchPageDeduplicatesByURL(t *testing.T) {
	src := &fakeSource{cities: []store.City{
		{Name: "Houston", StateAbbreviation: "tx"},
		{Name: "St. Louis", StateAbbreviation: "mo"},
		{Name: "St Louis", StateAbbreviation: "mo"}, // same slug as above
		{Name: "Dallas", StateAbbreviation: "tx"},
	}}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 2, 50)

	page := pager.FetchPage(context.Background(), 0, 10)
	want := []string{"Houston", "St. Louis", "Dallas"}
	if len(page) != len(want) {
		t.Fatalf("got %d cities, want %d: %+v", len(page), len(want), page)
	}
	for i, name := range want {
		if page[i].Name != name {
			t.Errorf("page[%d] = %q, want %q", i, page[i].Name, name)
		}
	}
}

func TestFetchPageSkipsBlankRows(t *testing.T) {
	src := &fakeSource{cities: []store.City{
		{Name: "", StateAbbreviation: "tx"},
		{Name: "Austin", StateAbbreviation: ""},
		{Name: "Austin", StateAbbreviation: "tx"},
	}}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 10, 50)

	page := pager.FetchPage(context.Background(), 0, 10)
	if len(page) != 1 || page[0].Name != "Austin" {
		t.Errorf("got %+v, want only the complete Austin row", page)
	}
}

// Duplicates must not count toward the offset: the window is over the
// deduplicated sequence, not the raw one.
func TestFetchPageWindowIgnoresDuplicates(t *testing.T) {
	cities := []store.City{
		{Name: "Alpha", StateAbbreviation: "tx"},
		{Name: "Alpha", StateAbbreviation: "tx"}, // duplicate
		{Name: "Bravo", StateAbbreviation: "tx"},
		{Name: "Charlie", StateAbbreviation: "tx"},
		{Name: "Delta", StateAbbreviation: "tx"},
	}
	src := &fakeSource{cities: cities}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 2, 50)

	page := pager.FetchPage(context.Background(), 1, 2)
	if len(page) != 2 || page[0].Name != "Bravo" || page[1].Name != "Charlie" {
		t.Errorf("window [1,3) over deduped sequence = %+v", page)
	}
}

func TestFetchPageOffsetPastEnd(t *testing.T) {
	src := &fakeSource{cities: numberedCities(5)}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 10, 50)

	if page := pager.FetchPage(context.Background(), 100, 10); len(page) != 0 {
		t.Errorf("offset past end returned %+v", page)
	}
}

func TestFetchPageEmptySource(t *testing.T) {
	pager := NewCityPager(&fakeSource{}, NewURLBuilder(testSite(t, false)), 10, 50)

	if page := pager.FetchPage(context.Background(), 0, 10); len(page) != 0 {
		t.Errorf("empty source returned %+v", page)
	}
}

func TestFetchPageErrorReturnsPartial(t *testing.T) {
	src := &fakeSource{cities: numberedCities(10), failAtOffset: 4}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 2, 50)

	// Batches at offsets 0 and 2 succeed, the one at 4 fails.
	page := pager.FetchPage(context.Background(), 0, 10)
	if len(page) != 4 {
		t.Fatalf("got %d cities, want the 4 fetched before the failure", len(page))
	}
	for i, c := range page {
		if want := fmt.Sprintf("City %04d", i); c.Name != want {
			t.Errorf("page[%d] = %q, want %q", i, c.Name, want)
		}
	}
}

func TestFetchPageStopsAtBatchCap(t *testing.T) {
	src := &fakeSource{cities: numberedCities(100)}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 10, 3)

	page := pager.FetchPage(context.Background(), 0, 100)
	if len(page) != 30 {
		t.Errorf("got %d cities, want 30 (3 batches of 10)", len(page))
	}
	if src.listCalls != 3 {
		t.Errorf("made %d batch calls, want 3", src.listCalls)
	}
}

func TestFetchPageStopsEarlyWhenWindowFilled(t *testing.T) {
	src := &fakeSource{cities: numberedCities(100)}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 10, 50)

	page := pager.FetchPage(context.Background(), 0, 10)
	if len(page) != 10 {
		t.Fatalf("got %d cities, want 10", len(page))
	}
	if src.listCalls != 1 {
		t.Errorf("made %d batch calls, want 1 (window filled by first batch)", src.listCalls)
	}
}

// Concatenating consecutive windows must reproduce the full deduplicated
// sequence with no gaps and no overlaps.
func TestFetchPageWindowsTile(t *testing.T) {
	base := numberedCities(25)
	// Sprinkle duplicates through the sequence.
	cities := make([]store.City, 0, len(base)+2)
	cities = append(cities, base[:10]...)
	cities = append(cities, base[3], base[7])
	cities = append(cities, base[10:]...)
	src := &fakeSource{cities: cities}
	pager := NewCityPager(src, NewURLBuilder(testSite(t, false)), 4, 50)
	builder := NewURLBuilder(testSite(t, false))

	seen := make(map[string]int)
	total := 0
	for offset := 0; offset < 30; offset += 7 {
		for _, c := range pager.FetchPage(context.Background(), offset, 7) {
			seen[builder.CityRecordURL(c)]++
			total++
		}
	}

	if total != 25 {
		t.Errorf("windows covered %d cities, want 25", total)
	}
	for url, n := range seen {
		if n != 1 {
			t.Errorf("%s appeared %d times across windows", url, n)
		}
	}
}
