// Package sitemap builds the sitemap documents for the site: the index,
// the static/state listing, and the paginated city listings.
package sitemap

import (
	"strings"

	"geositemap/internal/site"
	"geositemap/internal/store"
	"geositemap/pkg/slug"
)

// URLBuilder renders canonical absolute URLs for states and cities. The
// routing mode is fixed at construction; the site snapshot has already
// refused placeholder domains, so these never fail.
type URLBuilder struct {
	site *site.Site
}

func NewURLBuilder(s *site.Site) *URLBuilder {
	return &URLBuilder{site: s}
}

// CityURL returns the canonical URL for a city slug within a state.
// Subdomain mode: https://{slug}-{state}.{domain}/
// Path mode:      {siteRoot}/{state}/{slug}/
func (b *URLBuilder) CityURL(citySlug, stateAbbr string) string {
	citySlug = strings.ToLower(citySlug)
	stateAbbr = strings.ToLower(stateAbbr)
	if b.site.SubdomainRouting {
		return "https://" + citySlug + "-" + stateAbbr + "." + b.site.Domain + "/"
	}
	return b.site.SiteRoot + "/" + stateAbbr + "/" + citySlug + "/"
}

// StateURL returns the canonical URL for a state landing page.
func (b *URLBuilder) StateURL(stateAbbr string) string {
	stateAbbr = strings.ToLower(stateAbbr)
	if b.site.SubdomainRouting {
		return "https://" + stateAbbr + "." + b.site.Domain + "/"
	}
	return b.site.SiteRoot + "/" + stateAbbr + "/"
}

// CityRecordURL slugs the city's display name and renders its URL. The
// fetcher and the renderers both go through here, so a record always maps
// to the same canonical string.
func (b *URLBuilder) CityRecordURL(c store.City) string {
	return b.CityURL(slug.Make(c.Name), c.StateAbbreviation)
}

// PageURL returns the absolute URL of a sitemap file by its route name,
// e.g. "sitemap-main.xml".
func (b *URLBuilder) PageURL(file string) string {
	return b.site.SiteRoot + "/" + file
}
