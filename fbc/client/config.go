package client

type config struct {
	Schema string
	Host   string
	APIKey string
}

type Option func(c *config)

func WithSchema(schema string) Option {
	return func(c *config) {
		c.Schema = schema
	}
}

func WithHost(host string) Option {
	return func(c *config) {
		c.Host = host
	}
}

func WithAPIKey(key string) Option {
	return func(c *config) {
		c.APIKey = key
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		Schema: "https",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
