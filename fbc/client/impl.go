package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/xxxsen/filebed/server/model"
)

var defaultHttpClient = &http.Client{
	Timeout: 10 * time.Minute,
	Transport: &http.Transport{
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 1,
	},
}

const (
	apiUpload       = "/api/upload"
	apiListBackends = "/api/webdav/list"
	apiTestBackend  = "/api/webdav/test"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type defaultClient struct {
	c *config
}

func New(opts ...Option) (IClient, error) {
	c := applyOpts(opts...)
	if len(c.Host) == 0 {
		return nil, fmt.Errorf("no host found in config")
	}
	return &defaultClient{c: c}, nil
}

func (d *defaultClient) buildUrl(api string) string {
	return fmt.Sprintf("%s://%s%s", d.c.Schema, d.c.Host, api)
}

func (d *defaultClient) applyAuth(req *http.Request) {
	if len(d.c.APIKey) != 0 {
		req.Header.Set("X-API-Key", d.c.APIKey)
	}
}

func (d *defaultClient) call(req *http.Request) (*apiResponse, error) {
	d.applyAuth(req)
	rsp, err := defaultHttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	pkgRsp := &apiResponse{}
	if err := json.NewDecoder(rsp.Body).Decode(pkgRsp); err != nil {
		return nil, fmt.Errorf("decode response failed, status:%d, err:%w", rsp.StatusCode, err)
	}
	if !pkgRsp.Success {
		return nil, fmt.Errorf("biz failed, status:%d, msg:%s", rsp.StatusCode, pkgRsp.Error)
	}
	return pkgRsp, nil
}

func (d *defaultClient) UploadFile(ctx context.Context, filename string, r io.Reader, size int64, alias string) (*model.UploadFileData, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	filePart, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(filePart, r); err != nil {
		return nil, err
	}
	if len(alias) != 0 {
		_ = writer.WriteField("webdav", alias)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.buildUrl(apiUpload), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	pkgRsp, err := d.call(req)
	if err != nil {
		return nil, err
	}
	data := &model.UploadFileData{}
	if err := json.Unmarshal(pkgRsp.Data, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (d *defaultClient) ListBackends(ctx context.Context) ([]*model.BackendItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.buildUrl(apiListBackends), nil)
	if err != nil {
		return nil, err
	}
	pkgRsp, err := d.call(req)
	if err != nil {
		return nil, err
	}
	rs := make([]*model.BackendItem, 0, 4)
	if err := json.Unmarshal(pkgRsp.Data, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}

func (d *defaultClient) TestConnection(ctx context.Context, alias string) (string, error) {
	u := d.buildUrl(apiTestBackend) + "?webdav=" + url.QueryEscape(alias)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	pkgRsp, err := d.call(req)
	if err != nil {
		return "", err
	}
	return pkgRsp.Message, nil
}
