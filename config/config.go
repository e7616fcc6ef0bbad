package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logger"
)

var defaultAllowedExtensions = []string{"jpg", "jpeg", "png", "gif", "pdf", "txt", "zip"}

type BackendConfig struct {
	Alias    string `json:"alias"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
	BasePath string `json:"base_path"`
}

type RateLimitConfig struct {
	Enable        bool  `json:"enable"`
	MaxRequests   int   `json:"max_requests"`
	WindowSeconds int64 `json:"window_seconds"`
}

type Config struct {
	Bind              string           `json:"bind"`
	LogInfo           logger.LogConfig `json:"log_info"`
	AppURL            string           `json:"app_url"`
	UploadMaxSize     string           `json:"upload_max_size"`
	AllowedExtensions []string         `json:"allowed_extensions"`
	DefaultWebdav     string           `json:"default_webdav"`
	Webdav            []BackendConfig  `json:"webdav"`
	APIKeyRequired    bool             `json:"api_key_required"`
	APIKey            string           `json:"api_key"`
	RateLimit         RateLimitConfig  `json:"rate_limit"`

	maxUploadBytes int64
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Bind:          ":8841",
		AppURL:        "http://localhost:8841",
		UploadMaxSize: "100M",
		RateLimit: RateLimitConfig{
			Enable:        true,
			MaxRequests:   100,
			WindowSeconds: 3600,
		},
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode json failed, err:%w", err)
	}
	applyEnvOverlay(c, os.Environ())
	if err := normalize(c); err != nil {
		return nil, err
	}
	return c, nil
}

// MaxUploadBytes 返回解析后的上传大小上限, 0表示不限制
func (c *Config) MaxUploadBytes() int64 {
	return c.maxUploadBytes
}

func normalize(c *Config) error {
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = append([]string{}, defaultAllowedExtensions...)
	}
	for i, ext := range c.AllowedExtensions {
		c.AllowedExtensions[i] = strings.ToLower(strings.TrimSpace(ext))
	}
	c.DefaultWebdav = strings.ToLower(strings.TrimSpace(c.DefaultWebdav))
	for i := range c.Webdav {
		item := &c.Webdav[i]
		item.Alias = strings.ToLower(strings.TrimSpace(item.Alias))
		if len(item.Alias) == 0 {
			return fmt.Errorf("webdav backend at index:%d has no alias", i)
		}
		if len(item.Name) == 0 {
			item.Name = item.Alias
		}
	}
	if len(c.UploadMaxSize) == 0 {
		c.maxUploadBytes = 0
		return nil
	}
	sz, err := humanize.ParseBytes(c.UploadMaxSize)
	if err != nil {
		return fmt.Errorf("parse upload_max_size failed, value:%s, err:%w", c.UploadMaxSize, err)
	}
	c.maxUploadBytes = int64(sz)
	return nil
}

var envBackendNamePattern = regexp.MustCompile(`^WEBDAV_([A-Z0-9_]+)_NAME=`)

// applyEnvOverlay 兼容老的.env部署方式: WEBDAV_<ALIAS>_{NAME,URL,USERNAME,PASSWORD,BASE_PATH}
func applyEnvOverlay(c *Config, environ []string) {
	if v, ok := lookupEnv(environ, "ALLOWED_EXTENSIONS"); ok {
		c.AllowedExtensions = strings.Split(v, ",")
	}
	if v, ok := lookupEnv(environ, "UPLOAD_MAX_SIZE"); ok {
		c.UploadMaxSize = v
	}
	if v, ok := lookupEnv(environ, "DEFAULT_WEBDAV"); ok {
		c.DefaultWebdav = v
	}
	keys := make([]string, 0, 4)
	for _, kv := range environ {
		m := envBackendNamePattern.FindStringSubmatch(kv)
		if m == nil {
			continue
		}
		keys = append(keys, m[1])
	}
	// 环境变量本身无序, 排序保证注册顺序稳定
	sort.Strings(keys)
	for _, key := range keys {
		prefix := "WEBDAV_" + key + "_"
		item := BackendConfig{
			Alias:    strings.ToLower(key),
			BasePath: "/",
		}
		item.Name, _ = lookupEnv(environ, prefix+"NAME")
		item.URL, _ = lookupEnv(environ, prefix+"URL")
		item.Username, _ = lookupEnv(environ, prefix+"USERNAME")
		item.Password, _ = lookupEnv(environ, prefix+"PASSWORD")
		if v, ok := lookupEnv(environ, prefix+"BASE_PATH"); ok {
			item.BasePath = v
		}
		replaceOrAppendBackend(c, item)
	}
}

func replaceOrAppendBackend(c *Config, item BackendConfig) {
	for i := range c.Webdav {
		if strings.EqualFold(c.Webdav[i].Alias, item.Alias) {
			c.Webdav[i] = item
			return
		}
	}
	c.Webdav = append(c.Webdav, item)
}

func lookupEnv(environ []string, key string) (string, bool) {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):], true
		}
	}
	return "", false
}
