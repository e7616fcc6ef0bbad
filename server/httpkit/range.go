package httpkit

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	"github.com/xxxsen/filebed/davclient"
)

var rangePattern = regexp.MustCompile(`^bytes=(\d+)-(\d*)$`)

// ParseRange 解析bytes=<start>-<end>形式的range头, 越界或非法返回false
func ParseRange(hdr string, size int64) (int64, int64, bool) {
	m := rangePattern.FindStringSubmatch(hdr)
	if m == nil {
		return 0, 0, false
	}
	start, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	end := size - 1
	if len(m[2]) != 0 {
		end, err = strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			return 0, 0, false
		}
	}
	if start >= size || end >= size || start > end {
		return 0, 0, false
	}
	return start, end, true
}

// ServeObject 回写代理对象, 处理缓存头与断点续传。
// http.ServeContent会静默忽略非法的Range头, 这里需要显式返回416, 所以自行解析。
func ServeObject(c *gin.Context, filename string, mimeType string, disposition string, res *davclient.GetResult) {
	size := int64(len(res.Content))
	h := c.Writer.Header()
	h.Set("Content-Type", mimeType)
	h.Set("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, filename))
	h.Set("Cache-Control", "public, max-age=3600")
	h.Set("ETag", fmt.Sprintf("W/\"%016x\"", xxhash.Sum64(res.Content)))
	if !res.LastModified.IsZero() {
		h.Set("Last-Modified", res.LastModified.UTC().Format(http.TimeFormat))
	}
	rangeHeader := c.GetHeader("Range")
	if len(rangeHeader) == 0 {
		h.Set("Content-Length", strconv.FormatInt(size, 10))
		c.Status(http.StatusOK)
		_, _ = c.Writer.Write(res.Content)
		return
	}
	start, end, ok := ParseRange(rangeHeader, size)
	if !ok {
		h.Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		c.Status(http.StatusRequestedRangeNotSatisfiable)
		return
	}
	h.Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
	h.Set("Content-Length", strconv.FormatInt(end-start+1, 10))
	h.Set("Accept-Ranges", "bytes")
	c.Status(http.StatusPartialContent)
	_, _ = c.Writer.Write(res.Content[start : end+1])
}
