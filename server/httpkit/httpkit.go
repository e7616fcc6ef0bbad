package httpkit

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// 静态扩展名表, 代理侧不做内容嗅探
var mimeTypeByExt = map[string]string{
	// 图片
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/x-icon",
	// 文档
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	// 文本
	"txt":  "text/plain",
	"html": "text/html",
	"htm":  "text/html",
	"css":  "text/css",
	"js":   "application/javascript",
	"json": "application/json",
	"xml":  "application/xml",
	// 压缩包
	"zip": "application/zip",
	"rar": "application/x-rar-compressed",
	"7z":  "application/x-7z-compressed",
	"tar": "application/x-tar",
	"gz":  "application/gzip",
	// 音频
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
	// 视频
	"mp4":  "video/mp4",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"wmv":  "video/x-ms-wmv",
	"flv":  "video/x-flv",
	"webm": "video/webm",
}

var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "webp": {},
}

var previewableMimes = map[string]struct{}{
	"image/jpeg": {}, "image/png": {}, "image/gif": {}, "image/webp": {}, "image/svg+xml": {},
	"text/plain": {}, "text/html": {}, "text/css": {}, "text/javascript": {}, "text/xml": {},
	"application/json": {}, "application/xml": {}, "application/javascript": {},
	"application/pdf": {},
}

func extOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
}

func DetermineMimeType(filename string) string {
	if m, ok := mimeTypeByExt[extOf(filename)]; ok {
		return m
	}
	return "application/octet-stream"
}

func IsImageFile(filename string) bool {
	_, ok := imageExts[extOf(filename)]
	return ok
}

// IsPreviewable 判断该类型是否允许内联预览而非强制下载
func IsPreviewable(mimeType string) bool {
	if _, ok := previewableMimes[mimeType]; ok {
		return true
	}
	return strings.HasPrefix(mimeType, "text/") || strings.HasPrefix(mimeType, "image/")
}

func SuccessJSON(c *gin.Context, data interface{}) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

func SuccessMessage(c *gin.Context, msg string) {
	c.JSON(200, gin.H{
		"success": true,
		"message": msg,
	})
}

func FailJSON(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

func FailJSONMsg(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}
