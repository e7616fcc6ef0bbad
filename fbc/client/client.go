package client

import (
	"context"
	"io"

	"github.com/xxxsen/filebed/server/model"
)

type IClient interface {
	UploadFile(ctx context.Context, filename string, r io.Reader, size int64, alias string) (*model.UploadFileData, error)
	ListBackends(ctx context.Context) ([]*model.BackendItem, error)
	TestConnection(ctx context.Context, alias string) (string, error)
}
