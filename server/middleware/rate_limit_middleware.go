package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/filebed/server/httpkit"
	"go.uber.org/zap"
)

const defaultRateLimitTrackSize = 65536

type rateWindow struct {
	mu    sync.Mutex
	start time.Time
	count int
}

// RateLimitMiddleware 按客户端ip做固定窗口限流
func RateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	cache := lru.NewLRU[string, *rateWindow](defaultRateLimitTrackSize, nil, window)
	var mu sync.Mutex // 保护get-or-create, 避免并发请求丢计数
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		w, ok := cache.Get(ip)
		if !ok {
			w = &rateWindow{start: time.Now()}
			cache.Add(ip, w)
		}
		mu.Unlock()
		w.mu.Lock()
		if time.Since(w.start) > window {
			w.start = time.Now()
			w.count = 0
		}
		w.count++
		cnt := w.count
		w.mu.Unlock()
		if cnt > maxRequests {
			logutil.GetLogger(c.Request.Context()).Warn("rate limit exceeded",
				zap.String("ip", ip), zap.Int("count", cnt))
			httpkit.FailJSONMsg(c, http.StatusTooManyRequests, "too many requests, retry later")
			return
		}
		c.Next()
	}
}
