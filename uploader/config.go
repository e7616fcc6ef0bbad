package uploader

import (
	"strings"

	"github.com/xxxsen/filebed/backend"
	"github.com/xxxsen/filebed/davclient"
)

type ClientFactory func(bk *backend.Backend) davclient.IClient

type config struct {
	exts    map[string]struct{}
	maxSize int64
	appURL  string
	factory ClientFactory
}

type Option func(c *config)

func WithAllowedExtensions(exts []string) Option {
	return func(c *config) {
		for _, ext := range exts {
			c.exts[strings.ToLower(strings.TrimSpace(ext))] = struct{}{}
		}
	}
}

// WithMaxUploadSize 0表示不限制
func WithMaxUploadSize(sz int64) Option {
	return func(c *config) {
		c.maxSize = sz
	}
}

func WithAppURL(u string) Option {
	return func(c *config) {
		c.appURL = strings.TrimRight(u, "/")
	}
}

func WithClientFactory(f ClientFactory) Option {
	return func(c *config) {
		c.factory = f
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		exts: make(map[string]struct{}),
		factory: func(bk *backend.Backend) davclient.IClient {
			return davclient.New(bk.URL, davclient.WithAuth(bk.Username, bk.Password))
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
