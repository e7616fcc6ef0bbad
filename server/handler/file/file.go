package file

import (
	"github.com/xxxsen/filebed/backend"
	"github.com/xxxsen/filebed/davclient"
	"github.com/xxxsen/filebed/uploader"
)

type FileHandler struct {
	reg     *backend.Registry
	up      *uploader.Uploader
	factory func(bk *backend.Backend) davclient.IClient
}

func NewFileHandler(reg *backend.Registry, up *uploader.Uploader) *FileHandler {
	return &FileHandler{
		reg: reg,
		up:  up,
		factory: func(bk *backend.Backend) davclient.IClient {
			return davclient.New(bk.URL, davclient.WithAuth(bk.Username, bk.Password))
		},
	}
}

// SetClientFactory 测试用, 替换webdav客户端构造
func (h *FileHandler) SetClientFactory(f func(bk *backend.Backend) davclient.IClient) {
	h.factory = f
}
