package fbc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xxxsen/filebed/server/model"
)

type fakeAPIClient struct {
	failOn string
}

func (f *fakeAPIClient) UploadFile(ctx context.Context, filename string, r io.Reader, size int64, alias string) (*model.UploadFileData, error) {
	if filename == f.failOn {
		return nil, fmt.Errorf("upload rejected, file:%s", filename)
	}
	return &model.UploadFileData{OriginalName: filename, WebdavAlias: alias}, nil
}

func (f *fakeAPIClient) ListBackends(ctx context.Context) ([]*model.BackendItem, error) {
	return []*model.BackendItem{{Alias: "main"}}, nil
}

func (f *fakeAPIClient) TestConnection(ctx context.Context, alias string) (string, error) {
	return "webdav connection ok", nil
}

func writeLocalFiles(t *testing.T, names ...string) []string {
	dir := t.TempDir()
	rs := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(p, []byte("content of "+name), 0o644))
		rs = append(rs, p)
	}
	return rs
}

func TestUploadFiles(t *testing.T) {
	c := New(WithClient(&fakeAPIClient{}), WithThread(2))
	files := writeLocalFiles(t, "a.txt", "b.txt", "c.txt")
	rs, err := c.UploadFiles(context.Background(), files, "main")
	assert.NoError(t, err)
	assert.Len(t, rs, 3)
	// 结果顺序与输入一致
	assert.Equal(t, "a.txt", rs[0].OriginalName)
	assert.Equal(t, "b.txt", rs[1].OriginalName)
	assert.Equal(t, "c.txt", rs[2].OriginalName)
	assert.Equal(t, "main", rs[0].WebdavAlias)
}

func TestUploadFilesPartialFail(t *testing.T) {
	c := New(WithClient(&fakeAPIClient{failOn: "b.txt"}), WithThread(1))
	files := writeLocalFiles(t, "a.txt", "b.txt")
	_, err := c.UploadFiles(context.Background(), files, "")
	assert.Error(t, err)
}

func TestUploadFilesMissingLocal(t *testing.T) {
	c := New(WithClient(&fakeAPIClient{}))
	_, err := c.UploadFiles(context.Background(), []string{"/no/such/file.txt"}, "")
	assert.Error(t, err)
}
