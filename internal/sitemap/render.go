package sitemap

import (
	"encoding/xml"
	"fmt"
	"time"

	"geositemap/internal/site"
	"geositemap/internal/store"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// dateStamp is the per-request lastmod value, YYYY-MM-DD in UTC.
func dateStamp(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type sitemapRef struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

// Renderer produces the three sitemap document shapes. All methods are
// pure: same inputs and date stamp give byte-identical output.
type Renderer struct {
	site *site.Site
	urls *URLBuilder
}

func NewRenderer(s *site.Site, urls *URLBuilder) *Renderer {
	return &Renderer{site: s, urls: urls}
}

// RenderIndex emits the sitemap index: one entry for the main file plus
// one per city file, numbered 2 through fileCount+1.
func (r *Renderer) RenderIndex(fileCount int, now time.Time) ([]byte, error) {
	stamp := dateStamp(now)

	index := sitemapIndex{
		Xmlns: sitemapNS,
		Sitemaps: []sitemapRef{
			{Loc: r.urls.PageURL("sitemap-main.xml"), LastMod: stamp},
		},
	}
	for n := 2; n <= fileCount+1; n++ {
		index.Sitemaps = append(index.Sitemaps, sitemapRef{
			Loc:     r.urls.PageURL(fmt.Sprintf("sitemap-%d.xml", n)),
			LastMod: stamp,
		})
	}

	return marshalDoc(index)
}

// RenderMain emits the static pages followed by the state pages. The
// homepage entry gets priority 1.0 / weekly; other static pages
// 0.8 / monthly; states 0.7 / weekly.
func (r *Renderer) RenderMain(states []store.State, now time.Time) ([]byte, error) {
	stamp := dateStamp(now)
	doc := urlSet{Xmlns: sitemapNS}

	for _, page := range r.site.StaticPages {
		entry := xmlURL{
			Loc:        r.site.SiteRoot + page,
			LastMod:    stamp,
			ChangeFreq: "monthly",
			Priority:   "0.8",
		}
		if page == "/" {
			entry.ChangeFreq = "weekly"
			entry.Priority = "1.0"
		}
		doc.URLs = append(doc.URLs, entry)
	}

	for _, st := range states {
		doc.URLs = append(doc.URLs, xmlURL{
			Loc:        r.urls.StateURL(st.Abbreviation),
			LastMod:    stamp,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	return marshalDoc(doc)
}

// RenderCityChunk emits one <url> per city. The pager already
// deduplicates, but a record whose URL was emitted earlier in this
// document is skipped again here rather than trusted upstream.
func (r *Renderer) RenderCityChunk(cities []store.City, now time.Time) ([]byte, error) {
	stamp := dateStamp(now)
	doc := urlSet{Xmlns: sitemapNS, URLs: []xmlURL{}}

	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		loc := r.urls.CityRecordURL(c)
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		doc.URLs = append(doc.URLs, xmlURL{
			Loc:        loc,
			LastMod:    stamp,
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	return marshalDoc(doc)
}

func marshalDoc(v interface{}) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sitemap: %w", err)
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
