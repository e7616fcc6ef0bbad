package file

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/filebed/server/httpkit"
	"github.com/xxxsen/filebed/server/model"
	"github.com/xxxsen/filebed/uploader"
)

func (h *FileHandler) FileUpload(c *gin.Context) {
	ctx := c.Request.Context()
	req := &model.UploadFileRequest{}
	if err := c.ShouldBind(req); err != nil {
		httpkit.FailJSON(c, http.StatusBadRequest, fmt.Errorf("invalid upload request, err:%w", err))
		return
	}
	file, err := req.File.Open()
	if err != nil {
		httpkit.FailJSON(c, http.StatusBadRequest, fmt.Errorf("open file fail, err:%w", err))
		return
	}
	defer file.Close()
	tmp, err := os.CreateTemp("", "filebed-upload-*")
	if err != nil {
		httpkit.FailJSON(c, http.StatusInternalServerError, fmt.Errorf("create temp file fail, err:%w", err))
		return
	}
	// 任何退出路径都要释放临时数据
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		httpkit.FailJSON(c, http.StatusInternalServerError, fmt.Errorf("save temp file fail, err:%w", err))
		return
	}
	res, err := h.up.Upload(ctx, &uploader.Request{
		OriginalName: req.File.Filename,
		TempPath:     tmp.Name(),
		Size:         req.File.Size,
		MimeHint:     req.File.Header.Get("Content-Type"),
		BackendAlias: req.Webdav,
		ClientIP:     c.ClientIP(),
	})
	if err != nil {
		httpkit.FailJSON(c, uploader.KindOf(err).HTTPStatus(), err)
		return
	}
	httpkit.SuccessJSON(c, &model.UploadFileData{
		OriginalName:      res.OriginalName,
		FileName:          res.FileName,
		FileSize:          res.FileSize,
		FileSizeFormatted: res.FileSizeFormatted,
		DownloadURL:       res.DownloadURL,
		DirectURL:         res.DirectURL,
		WebdavAlias:       res.WebdavAlias,
		WebdavName:        res.WebdavName,
		UploadTime:        res.UploadTime,
		IsImage:           res.IsImage,
		MimeType:          res.MimeType,
	})
}
