// Package site holds the per-process site snapshot: routing configuration
// and the derived design palette. Both are built once at startup and passed
// by reference into handlers; nothing here mutates after New returns.
package site

import (
	"errors"
	"fmt"
	"strings"

	"geositemap/internal/config"
)

// ErrPlaceholderDomain means the configured domain is missing or still a
// template placeholder. Publishing canonical URLs on such a domain would be
// worse than failing, so startup refuses.
var ErrPlaceholderDomain = errors.New("site domain is unset or a placeholder")

var placeholderDomains = map[string]bool{
	"":               true,
	"example.com":    true,
	"yourdomain.com": true,
	"localhost":      true,
}

type Site struct {
	Domain           string
	SiteRoot         string
	SubdomainRouting bool
	Keyword          string
	StaticPages      []string
	Palette          Palette
}

func New(cfg config.SiteConfig) (*Site, error) {
	domain := strings.ToLower(strings.TrimSpace(cfg.Domain))
	if placeholderDomains[domain] {
		return nil, fmt.Errorf("%w: %q", ErrPlaceholderDomain, cfg.Domain)
	}

	root := strings.TrimSuffix(cfg.SiteRoot, "/")
	if root == "" {
		root = "https://www." + domain
	}

	pages := make([]string, len(cfg.StaticPages))
	copy(pages, cfg.StaticPages)

	return &Site{
		Domain:           domain,
		SiteRoot:         root,
		SubdomainRouting: cfg.SubdomainRouting,
		Keyword:          cfg.Keyword,
		StaticPages:      pages,
		Palette:          NewPalette(cfg.Keyword),
	}, nil
}
