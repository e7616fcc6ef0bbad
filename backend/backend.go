package backend

import (
	"errors"
	"strings"

	"github.com/xxxsen/filebed/config"
)

var ErrBackendNotFound = errors.New("webdav backend not found")

// Backend 单个webdav后端的连接参数, 注册完成后只读
type Backend struct {
	Alias    string
	Name     string
	URL      string
	Username string
	Password string
	BasePath string
}

type Registry struct {
	m            map[string]*Backend
	order        []*Backend
	defaultAlias string
}

func NewRegistry(items []config.BackendConfig, defaultAlias string) *Registry {
	r := &Registry{
		m:            make(map[string]*Backend, len(items)),
		defaultAlias: strings.ToLower(defaultAlias),
	}
	for _, item := range items {
		alias := strings.ToLower(item.Alias)
		if _, ok := r.m[alias]; ok {
			continue
		}
		bk := &Backend{
			Alias:    alias,
			Name:     item.Name,
			URL:      item.URL,
			Username: item.Username,
			Password: item.Password,
			BasePath: item.BasePath,
		}
		r.m[alias] = bk
		r.order = append(r.order, bk)
	}
	return r
}

// Resolve 按别名查找后端; 别名为空时回退到默认配置, 无默认配置则使用最先注册的后端
func (r *Registry) Resolve(alias string) (*Backend, error) {
	alias = strings.ToLower(strings.TrimSpace(alias))
	if len(alias) == 0 {
		return r.resolveDefault()
	}
	bk, ok := r.m[alias]
	if !ok {
		return nil, ErrBackendNotFound
	}
	return bk, nil
}

func (r *Registry) resolveDefault() (*Backend, error) {
	if bk, ok := r.m[r.defaultAlias]; ok {
		return bk, nil
	}
	if len(r.order) == 0 {
		return nil, ErrBackendNotFound
	}
	return r.order[0], nil
}

// List 按注册顺序返回全部后端
func (r *Registry) List() []*Backend {
	return r.order
}
