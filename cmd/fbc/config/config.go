package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Schema   string `json:"schema"`
	Host     string `json:"host"`
	APIKey   string `json:"api_key"`
	Thread   int    `json:"thread"`
	LogLevel string `json:"log_level"`
	Webdav   string `json:"webdav"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Schema:   "https",
		Thread:   4,
		LogLevel: "info",
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("unmarshal file:%w", err)
	}
	return c, nil
}
