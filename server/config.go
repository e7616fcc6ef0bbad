package server

import (
	"github.com/xxxsen/filebed/backend"
	"github.com/xxxsen/filebed/davclient"
	"github.com/xxxsen/filebed/uploader"
)

type config struct {
	registry               *backend.Registry
	uploader               *uploader.Uploader
	clientFactory          func(bk *backend.Backend) davclient.IClient
	apiKey                 string
	rateLimitMax           int
	rateLimitWindowSeconds int64
}

type Option func(c *config)

func WithRegistry(reg *backend.Registry) Option {
	return func(c *config) {
		c.registry = reg
	}
}

func WithUploader(up *uploader.Uploader) Option {
	return func(c *config) {
		c.uploader = up
	}
}

func WithClientFactory(f func(bk *backend.Backend) davclient.IClient) Option {
	return func(c *config) {
		c.clientFactory = f
	}
}

func WithAPIKey(key string) Option {
	return func(c *config) {
		c.apiKey = key
	}
}

func WithRateLimit(maxRequests int, windowSeconds int64) Option {
	return func(c *config) {
		c.rateLimitMax = maxRequests
		c.rateLimitWindowSeconds = windowSeconds
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
