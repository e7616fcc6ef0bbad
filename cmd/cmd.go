package main

import (
	"flag"

	"github.com/xxxsen/filebed/backend"
	"github.com/xxxsen/filebed/config"
	"github.com/xxxsen/filebed/server"
	"github.com/xxxsen/filebed/uploader"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logger"
	"go.uber.org/zap"
)

var file = flag.String("config", "./config.json", "config file path")

func main() {
	flag.Parse()

	c, err := config.Parse(*file)
	if err != nil {
		panic(err)
	}
	logitem := c.LogInfo
	logger := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	reg := backend.NewRegistry(c.Webdav, c.DefaultWebdav)
	aliases := make([]string, 0, len(reg.List()))
	for _, bk := range reg.List() {
		aliases = append(aliases, bk.Alias)
	}
	logger.Info("load webdav backends", zap.Strings("alias", aliases), zap.String("default", c.DefaultWebdav))
	logger.Info("upload policy",
		zap.Strings("allowed_extensions", c.AllowedExtensions),
		zap.String("max_size", humanize.IBytes(uint64(c.MaxUploadBytes()))))
	logger.Info("rate limit",
		zap.Bool("enable", c.RateLimit.Enable),
		zap.Int("max_requests", c.RateLimit.MaxRequests),
		zap.Int64("window_seconds", c.RateLimit.WindowSeconds))
	up := uploader.New(reg,
		uploader.WithAllowedExtensions(c.AllowedExtensions),
		uploader.WithMaxUploadSize(c.MaxUploadBytes()),
		uploader.WithAppURL(c.AppURL),
	)
	opts := []server.Option{
		server.WithRegistry(reg),
		server.WithUploader(up),
	}
	if c.RateLimit.Enable {
		opts = append(opts, server.WithRateLimit(c.RateLimit.MaxRequests, c.RateLimit.WindowSeconds))
	}
	if c.APIKeyRequired {
		opts = append(opts, server.WithAPIKey(c.APIKey))
	}
	svr, err := server.New(c.Bind, opts...)
	if err != nil {
		logger.Fatal("init server fail", zap.Error(err))
	}
	logger.Info("init server succ, start it...")
	if err := svr.Run(); err != nil {
		logger.Fatal("run server fail", zap.Error(err))
	}
}
