package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/filebed/davclient"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		hdr   string
		size  int64
		start int64
		end   int64
		ok    bool
	}{
		{"bytes=0-4", 10, 0, 4, true},
		{"bytes=3-", 10, 3, 9, true},
		{"bytes=9-9", 10, 9, 9, true},
		{"bytes=20-30", 10, 0, 0, false},
		{"bytes=0-10", 10, 0, 0, false},
		{"bytes=5-2", 10, 0, 0, false},
		{"bytes=-5", 10, 0, 0, false},
		{"bytes=a-b", 10, 0, 0, false},
		{"items=0-4", 10, 0, 0, false},
		{"", 10, 0, 0, false},
	}
	for _, tst := range tests {
		start, end, ok := ParseRange(tst.hdr, tst.size)
		assert.Equal(t, tst.ok, ok, "hdr:%s", tst.hdr)
		if tst.ok {
			assert.Equal(t, tst.start, start, "hdr:%s", tst.hdr)
			assert.Equal(t, tst.end, end, "hdr:%s", tst.hdr)
		}
	}
}

func serveTestObject(rangeHdr string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/proxy", func(c *gin.Context) {
		res := &davclient.GetResult{
			Content:      []byte("0123456789"),
			Size:         10,
			LastModified: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		}
		ServeObject(c, "a.txt", "text/plain", "inline", res)
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/proxy", nil)
	if len(rangeHdr) != 0 {
		req.Header.Set("Range", rangeHdr)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestServeObjectFull(t *testing.T) {
	w := serveTestObject("")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0123456789", w.Body.String())
	assert.Equal(t, "text/plain", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="a.txt"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.Equal(t, "Sat, 01 Mar 2025 10:00:00 GMT", w.Header().Get("Last-Modified"))
}

func TestServeObjectPartial(t *testing.T) {
	w := serveTestObject("bytes=2-5")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "2345", w.Body.String())
	assert.Equal(t, "bytes 2-5/10", w.Header().Get("Content-Range"))
	assert.Equal(t, "4", w.Header().Get("Content-Length"))
	assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
}

func TestServeObjectOpenEnd(t *testing.T) {
	w := serveTestObject("bytes=7-")
	assert.Equal(t, http.StatusPartialContent, w.Code)
	assert.Equal(t, "789", w.Body.String())
	assert.Equal(t, "bytes 7-9/10", w.Header().Get("Content-Range"))
}

func TestServeObjectBadRange(t *testing.T) {
	w := serveTestObject("bytes=100-200")
	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
	assert.Equal(t, "bytes */10", w.Header().Get("Content-Range"))
	assert.Empty(t, w.Body.String())
}

func TestDetermineMimeType(t *testing.T) {
	assert.Equal(t, "image/jpeg", DetermineMimeType("photo.JPG"))
	assert.Equal(t, "application/pdf", DetermineMimeType("doc.pdf"))
	assert.Equal(t, "application/octet-stream", DetermineMimeType("a.unknownext"))
}

func TestIsImageFile(t *testing.T) {
	assert.True(t, IsImageFile("a.png"))
	assert.True(t, IsImageFile("b.WEBP"))
	assert.False(t, IsImageFile("c.txt"))
}

func TestIsPreviewable(t *testing.T) {
	assert.True(t, IsPreviewable("image/png"))
	assert.True(t, IsPreviewable("text/plain"))
	assert.True(t, IsPreviewable("application/pdf"))
	assert.False(t, IsPreviewable("application/zip"))
}
