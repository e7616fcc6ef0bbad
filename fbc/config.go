package fbc

import "github.com/xxxsen/filebed/fbc/client"

type config struct {
	Client client.IClient
	Thread int
}

type Option func(c *config)

func WithClient(cli client.IClient) Option {
	return func(c *config) {
		c.Client = cli
	}
}

func WithThread(n int) Option {
	return func(c *config) {
		c.Thread = n
	}
}
