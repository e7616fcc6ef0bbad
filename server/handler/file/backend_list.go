package file

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/filebed/server/httpkit"
	"github.com/xxxsen/filebed/server/model"
)

func (h *FileHandler) ListBackends(c *gin.Context) {
	items := h.reg.List()
	rs := make([]*model.BackendItem, 0, len(items))
	for _, bk := range items {
		rs = append(rs, &model.BackendItem{
			Alias: bk.Alias,
			Name:  bk.Name,
			URL:   bk.URL,
		})
	}
	httpkit.SuccessJSON(c, rs)
}

func (h *FileHandler) TestConnection(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.TestConnectionRequest{}
	if err := c.ShouldBindQuery(req); err != nil {
		httpkit.FailJSON(c, http.StatusBadRequest, fmt.Errorf("webdav alias required, err:%w", err))
		return
	}
	bk, err := h.reg.Resolve(req.Webdav)
	if err != nil {
		httpkit.FailJSON(c, http.StatusNotFound, err)
		return
	}
	cli := h.factory(bk)
	probe, err := cli.PropfindRoot(ctx)
	if err != nil {
		httpkit.FailJSON(c, http.StatusOK, fmt.Errorf("connect failed, err:%w", err))
		return
	}
	if !probe.Reachable {
		httpkit.FailJSONMsg(c, http.StatusOK, "connect failed, backend returned unexpected status")
		return
	}
	if probe.NeedsAuth {
		httpkit.SuccessMessage(c, "webdav server reachable (authentication required)")
		return
	}
	httpkit.SuccessMessage(c, "webdav connection ok")
}
