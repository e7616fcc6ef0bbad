package fbc

import (
	"context"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/filebed/server/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FilebedClient 面向命令行的上传客户端, 支持多文件并发上传
type FilebedClient struct {
	c *config
}

func New(opts ...Option) *FilebedClient {
	c := &config{
		Thread: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &FilebedClient{c: c}
}

func (c *FilebedClient) uploadOne(ctx context.Context, src string, alias string) (*model.UploadFileData, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	start := time.Now()
	data, err := c.c.Client.UploadFile(ctx, info.Name(), f, info.Size(), alias)
	if err != nil {
		return nil, err
	}
	cost := time.Since(start)
	speed := "-"
	if cost > time.Millisecond {
		speed = humanize.IBytes(uint64(float64(info.Size())*1000/float64(int64(cost/time.Millisecond)))) + "/s"
	}
	logutil.GetLogger(ctx).Info("upload file succ",
		zap.String("file", src),
		zap.String("link", data.DownloadURL),
		zap.Duration("cost", cost),
		zap.String("speed", speed))
	return data, nil
}

// UploadFiles 并发上传多个本地文件, 返回结果与输入顺序一致
func (c *FilebedClient) UploadFiles(ctx context.Context, files []string, alias string) ([]*model.UploadFileData, error) {
	rs := make([]*model.UploadFileData, len(files))
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.c.Thread)
	for i, src := range files {
		idx := i
		file := src
		eg.Go(func() error {
			data, err := c.uploadOne(subctx, file, alias)
			if err != nil {
				logutil.GetLogger(subctx).Error("upload file failed", zap.String("file", file), zap.Error(err))
				return err
			}
			rs[idx] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rs, nil
}

func (c *FilebedClient) ListBackends(ctx context.Context) ([]*model.BackendItem, error) {
	return c.c.Client.ListBackends(ctx)
}

func (c *FilebedClient) TestConnection(ctx context.Context, alias string) (string, error) {
	return c.c.Client.TestConnection(ctx, alias)
}
