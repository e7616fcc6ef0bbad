package davclient

import (
	"context"
	"time"
)

// IClient 封装对远端webdav服务的原始操作。
// 除Put以外的操作都只尝试一次, 是否重试由上层决定。
type IClient interface {
	Put(ctx context.Context, remotePath string, data []byte) error
	Get(ctx context.Context, remotePath string) (*GetResult, error)
	Head(ctx context.Context, remotePath string) bool
	Mkcol(ctx context.Context, remotePath string) bool
	Delete(ctx context.Context, remotePath string) bool
	PropfindRoot(ctx context.Context) (*ProbeResult, error)
}

type GetResult struct {
	Content      []byte
	Size         int64
	LastModified time.Time // 零值表示服务端未返回
}

type ProbeResult struct {
	Reachable bool
	NeedsAuth bool
}
