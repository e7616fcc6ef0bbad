package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, content string) string {
	p := filepath.Join(t.TempDir(), "config.json")
	assert.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestParse(t *testing.T) {
	f := writeConfig(t, `{
		"app_url": "https://img.example.com",
		"upload_max_size": "10M",
		"default_webdav": "Main",
		"webdav": [
			{"alias": "Main", "url": "https://dav.example.com", "username": "u", "password": "p", "base_path": "/files"},
			{"alias": "backup", "name": "Backup", "url": "https://dav2.example.com"}
		]
	}`)
	c, err := Parse(f)
	assert.NoError(t, err)
	assert.Equal(t, ":8841", c.Bind)
	assert.Equal(t, "https://img.example.com", c.AppURL)
	assert.Equal(t, int64(10*1000*1000), c.MaxUploadBytes())
	assert.Equal(t, "main", c.DefaultWebdav)
	assert.Equal(t, defaultAllowedExtensions, c.AllowedExtensions)
	assert.Len(t, c.Webdav, 2)
	// 别名统一小写, 名称缺省取别名
	assert.Equal(t, "main", c.Webdav[0].Alias)
	assert.Equal(t, "main", c.Webdav[0].Name)
	assert.Equal(t, "Backup", c.Webdav[1].Name)
	assert.True(t, c.RateLimit.Enable)
	assert.Equal(t, 100, c.RateLimit.MaxRequests)
	assert.Equal(t, int64(3600), c.RateLimit.WindowSeconds)
}

func TestParseNoAlias(t *testing.T) {
	f := writeConfig(t, `{"webdav": [{"url": "https://dav.example.com"}]}`)
	_, err := Parse(f)
	assert.Error(t, err)
}

func TestParseBadMaxSize(t *testing.T) {
	f := writeConfig(t, `{"upload_max_size": "lots"}`)
	_, err := Parse(f)
	assert.Error(t, err)
}

func TestApplyEnvOverlay(t *testing.T) {
	c := &Config{
		Webdav: []BackendConfig{
			{Alias: "main", Name: "Old", URL: "https://old.example.com"},
		},
	}
	environ := []string{
		"PATH=/usr/bin",
		"WEBDAV_MAIN_NAME=New Main",
		"WEBDAV_MAIN_URL=https://new.example.com",
		"WEBDAV_MAIN_USERNAME=u2",
		"WEBDAV_MAIN_PASSWORD=p2",
		"WEBDAV_MAIN_BASE_PATH=/uploads",
		"WEBDAV_EXTRA_NAME=Extra",
		"WEBDAV_EXTRA_URL=https://extra.example.com",
		"ALLOWED_EXTENSIONS=jpg,png",
		"UPLOAD_MAX_SIZE=5M",
		"DEFAULT_WEBDAV=extra",
	}
	applyEnvOverlay(c, environ)
	assert.Equal(t, []string{"jpg", "png"}, c.AllowedExtensions)
	assert.Equal(t, "5M", c.UploadMaxSize)
	assert.Equal(t, "extra", c.DefaultWebdav)
	assert.Len(t, c.Webdav, 2)
	// 同别名的环境变量覆盖文件配置
	assert.Equal(t, "New Main", c.Webdav[0].Name)
	assert.Equal(t, "https://new.example.com", c.Webdav[0].URL)
	assert.Equal(t, "u2", c.Webdav[0].Username)
	assert.Equal(t, "/uploads", c.Webdav[0].BasePath)
	assert.Equal(t, "extra", c.Webdav[1].Alias)
	assert.Equal(t, "/", c.Webdav[1].BasePath)
}
