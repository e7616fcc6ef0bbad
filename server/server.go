package server

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi"
	"github.com/xxxsen/filebed/server/handler/file"
	"github.com/xxxsen/filebed/server/middleware"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Server struct {
	c      *config
	engine webapi.IWebEngine
}

func New(bind string, opts ...Option) (*Server, error) {
	c := applyOpts(opts...)
	if c.registry == nil || c.uploader == nil {
		return nil, fmt.Errorf("server requires registry and uploader")
	}
	svr := &Server{c: c}
	var err error
	svr.engine, err = webapi.NewEngine("/", bind, webapi.WithRegister(svr.initAPI))
	if err != nil {
		return nil, err
	}
	return svr, nil
}

func (s *Server) initAPI(router *gin.RouterGroup) {
	fileHandler := file.NewFileHandler(s.c.registry, s.c.uploader)
	if s.c.clientFactory != nil {
		fileHandler.SetClientFactory(s.c.clientFactory)
	}

	var apiMiddlewares []gin.HandlerFunc
	if s.c.rateLimitMax > 0 {
		apiMiddlewares = append(apiMiddlewares,
			middleware.RateLimitMiddleware(s.c.rateLimitMax, time.Duration(s.c.rateLimitWindowSeconds)*time.Second))
	}
	if len(s.c.apiKey) != 0 {
		apiMiddlewares = append(apiMiddlewares, middleware.APIKeyMiddleware(s.c.apiKey))
	}

	apiRouter := router.Group("/api", apiMiddlewares...)
	{
		apiRouter.POST("/upload", fileHandler.FileUpload)
		apiRouter.GET("/webdav/list", fileHandler.ListBackends)
		apiRouter.GET("/webdav/test", fileHandler.TestConnection)
	}
	// 代理端点不做限流, 下载链接可能被外部页面直接引用
	router.GET("/proxy", fileHandler.FileProxy)
	router.POST("/proxy", fileHandler.FileProxy)
}

func (s *Server) Run() error {
	return s.engine.Run()
}
