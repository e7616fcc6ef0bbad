package file

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/filebed/server/httpkit"
	"go.uber.org/zap"
)

// FileProxy 以自身地址回源webdav内容, 不向客户端暴露后端地址与凭据
func (h *FileHandler) FileProxy(c *gin.Context) {
	ctx := c.Request.Context()
	filePath := queryOrForm(c, "file")
	alias := queryOrForm(c, "webdav")
	if len(filePath) == 0 {
		c.String(http.StatusBadRequest, "file path required")
		return
	}
	// 在发起任何网络调用前拦截路径穿越
	if strings.Contains(filePath, "..") || strings.Contains(filePath, "//") {
		c.String(http.StatusBadRequest, "invalid file path")
		return
	}
	bk, err := h.reg.Resolve(alias)
	if err != nil {
		c.String(http.StatusNotFound, "webdav backend not found")
		return
	}
	cli := h.factory(bk)
	res, err := cli.Get(ctx, filePath)
	if err != nil {
		logutil.GetLogger(ctx).Error("fetch remote object failed",
			zap.String("path", filePath), zap.String("alias", bk.Alias), zap.Error(err))
		c.String(http.StatusNotFound, "file not found")
		return
	}
	mimeType := httpkit.DetermineMimeType(filePath)
	forceDownload := queryOrForm(c, "download") == "1"
	disposition := "inline"
	if forceDownload || !httpkit.IsPreviewable(mimeType) {
		disposition = "attachment"
	}
	httpkit.ServeObject(c, path.Base(filePath), mimeType, disposition, res)
}

func queryOrForm(c *gin.Context, key string) string {
	if v := c.Query(key); len(v) != 0 {
		return v
	}
	return c.PostForm(key)
}
