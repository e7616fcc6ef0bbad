package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

func NewBackendsCmd(c *Context) *cobra.Command {
	ctx := context.Background()
	return &cobra.Command{
		Use:   "backends",
		Short: "List available webdav backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rs, err := c.FBC.ListBackends(ctx)
			if err != nil {
				return fmt.Errorf("list backends failed, err:%w", err)
			}
			for _, item := range rs {
				logutil.GetLogger(ctx).Info("backend",
					zap.String("alias", item.Alias), zap.String("name", item.Name), zap.String("url", item.URL))
			}
			return nil
		},
	}
}

func NewTestCmd(c *Context) *cobra.Command {
	var alias string
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "test",
		Short: "Test webdav backend connection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := c.FBC.TestConnection(ctx, alias)
			if err != nil {
				return fmt.Errorf("test connection failed, err:%w", err)
			}
			logutil.GetLogger(ctx).Info("test connection succ", zap.String("message", msg))
			return nil
		},
	}
	subc.PersistentFlags().StringVarP(&alias, "webdav", "w", "", "webdav alias to test")
	_ = subc.MarkPersistentFlagRequired("webdav")
	return subc
}

func init() {
	register(NewBackendsCmd)
	register(NewTestCmd)
}
