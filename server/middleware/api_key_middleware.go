package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/filebed/server/httpkit"
)

// APIKeyMiddleware 校验X-API-Key头或api_key参数
func APIKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-Key")
		if len(provided) == 0 {
			provided = c.Query("api_key")
		}
		if len(provided) == 0 {
			provided = c.PostForm("api_key")
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(provided)) != 1 {
			httpkit.FailJSONMsg(c, http.StatusUnauthorized, "invalid or missing api key")
			return
		}
		c.Next()
	}
}
