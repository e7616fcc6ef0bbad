package davclient

import (
	"net/http"
	"time"
)

type config struct {
	username string
	password string
	timeout  time.Duration
	client   *http.Client // 测试用, 替换底层短超时client
}

type Option func(c *config)

func WithAuth(username string, password string) Option {
	return func(c *config) {
		c.username = username
		c.password = password
	}
}

func WithTimeout(t time.Duration) Option {
	return func(c *config) {
		c.timeout = t
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.client = hc
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		timeout: defaultOperationTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
