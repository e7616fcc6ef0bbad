package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type uploadArgs struct {
	files  []string
	webdav string
}

func NewUploadCmd(c *Context) *cobra.Command {
	args := &uploadArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "upload",
		Short: "Upload local files",
		RunE: func(cmd *cobra.Command, rest []string) error {
			args.files = append(args.files, rest...)
			return onRunUpload(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringSliceVarP(&args.files, "file", "f", nil, "local files to upload")
	subc.PersistentFlags().StringVarP(&args.webdav, "webdav", "w", "", "target webdav alias, default backend when empty")
	return subc
}

func onRunUpload(ctx context.Context, c *Context, args *uploadArgs) error {
	if len(args.files) == 0 {
		return fmt.Errorf("no upload file found")
	}
	alias := args.webdav
	if len(alias) == 0 {
		alias = c.Config.Webdav
	}
	start := time.Now()
	rs, err := c.FBC.UploadFiles(ctx, args.files, alias)
	if err != nil {
		return fmt.Errorf("upload files failed, err:%w", err)
	}
	for _, item := range rs {
		logutil.GetLogger(ctx).Info("file link",
			zap.String("name", item.OriginalName), zap.String("link", item.DownloadURL))
	}
	logutil.GetLogger(ctx).Info("upload finish",
		zap.Int("count", len(rs)), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewUploadCmd)
}
