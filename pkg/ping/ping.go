// Package ping notifies search engines that the sitemap index changed.
package ping

import (
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"

	"geositemap/pkg/logger"
)

type Client struct {
	client    *fasthttp.Client
	endpoints []string
	timeout   time.Duration
	log       *logger.Logger
}

// New builds a client for the given ping endpoints, e.g.
// https://www.google.com/ping. The sitemap URL is appended as the
// "sitemap" query parameter.
func New(endpoints []string, timeout time.Duration) *Client {
	return &Client{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		endpoints: endpoints,
		timeout:   timeout,
		log:       logger.GetLogger().WithField("component", "ping"),
	}
}

// NotifyAll pings every endpoint. Failures are logged and skipped; the
// sitemap is served either way, so nothing here is fatal.
func (c *Client) NotifyAll(sitemapURL string) {
	for _, endpoint := range c.endpoints {
		if err := c.notify(endpoint, sitemapURL); err != nil {
			c.log.WithError(err).WithField("endpoint", endpoint).Warn("sitemap ping failed")
			continue
		}
		c.log.WithField("endpoint", endpoint).Info("sitemap ping delivered")
	}
}

func (c *Client) notify(endpoint, sitemapURL string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(endpoint + "?sitemap=" + url.QueryEscape(sitemapURL))
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent("geositemap/1.0")

	if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return fmt.Errorf("HTTP %d", code)
	}
	return nil
}
