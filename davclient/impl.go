package davclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"github.com/xxxsen/filebed/pathkit"
	"go.uber.org/zap"
)

const (
	defaultOperationTimeout = 30 * time.Second
	defaultDownloadTimeout  = 5 * time.Minute
	defaultMaxRedirects     = 5
	defaultPutRetryCount    = 3
	defaultPutRetryInterval = 500 * time.Millisecond
	defaultErrBodyLimit     = 200
	defaultUserAgent        = "filebed-webdav-client/1.0"
)

// StatusError 非预期的http状态码, Body只保留前一小段用于排障
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status, code:%d, body:%s", e.Code, e.Body)
}

type client struct {
	url string
	c   *config
	hc  *http.Client
	dl  *http.Client
}

func New(url string, opts ...Option) IClient {
	c := applyOpts(opts...)
	// 目标多为自部署的webdav服务, 自签证书场景下跳过证书校验是使用前提
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		IdleConnTimeout:     20 * time.Second,
		MaxIdleConns:        5,
		MaxIdleConnsPerHost: 2,
	}
	cl := &client{
		url: strings.TrimRight(url, "/"),
		c:   c,
	}
	if c.client != nil {
		cl.hc = c.client
		cl.dl = c.client
		return cl
	}
	cl.hc = &http.Client{
		Timeout:       c.timeout,
		Transport:     transport,
		CheckRedirect: limitRedirect,
	}
	// 下载可能是大文件, 单独用长超时
	cl.dl = &http.Client{
		Timeout:       defaultDownloadTimeout,
		Transport:     transport,
		CheckRedirect: limitRedirect,
	}
	return cl
}

func limitRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= defaultMaxRedirects {
		return fmt.Errorf("stopped after %d redirects", defaultMaxRedirects)
	}
	return nil
}

func (c *client) buildURL(remotePath string) string {
	return c.url + "/" + strings.TrimLeft(pathkit.EncodePath(remotePath), "/")
}

func (c *client) newRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if len(c.c.username) != 0 {
		req.SetBasicAuth(c.c.username, c.c.password)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	return req, nil
}

func (c *client) Put(ctx context.Context, remotePath string, data []byte) error {
	u := c.buildURL(remotePath)
	return retry.RetryDo(ctx, defaultPutRetryCount, defaultPutRetryInterval, func(ctx context.Context) error {
		if err := c.doPut(ctx, u, data); err != nil {
			logutil.GetLogger(ctx).Error("put object failed, wait retry",
				zap.String("path", remotePath), zap.Error(err))
			return err
		}
		return nil
	})
}

func (c *client) doPut(ctx context.Context, url string, data []byte) error {
	req, err := c.newRequest(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", "application/octet-stream")
	rsp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode < 200 || rsp.StatusCode >= 300 {
		return &StatusError{Code: rsp.StatusCode, Body: readErrBody(rsp.Body)}
	}
	_, _ = io.Copy(io.Discard, rsp.Body)
	return nil
}

func (c *client) Get(ctx context.Context, remotePath string) (*GetResult, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.buildURL(remotePath), nil)
	if err != nil {
		return nil, err
	}
	rsp, err := c.dl.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: rsp.StatusCode, Body: readErrBody(rsp.Body)}
	}
	raw, err := io.ReadAll(rsp.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body failed, err:%w", err)
	}
	res := &GetResult{
		Content: raw,
		Size:    int64(len(raw)),
	}
	if lm := rsp.Header.Get("Last-Modified"); len(lm) != 0 {
		if t, err := http.ParseTime(lm); err == nil {
			res.LastModified = t
		}
	}
	return res, nil
}

func (c *client) Head(ctx context.Context, remotePath string) bool {
	req, err := c.newRequest(ctx, http.MethodHead, c.buildURL(remotePath), nil)
	if err != nil {
		return false
	}
	rsp, err := c.hc.Do(req)
	if err != nil {
		return false
	}
	defer rsp.Body.Close()
	_, _ = io.Copy(io.Discard, rsp.Body)
	return rsp.StatusCode == http.StatusOK
}

func (c *client) Mkcol(ctx context.Context, remotePath string) bool {
	req, err := c.newRequest(ctx, "MKCOL", c.buildURL(remotePath), nil)
	if err != nil {
		return false
	}
	rsp, err := c.hc.Do(req)
	if err != nil {
		return false
	}
	defer rsp.Body.Close()
	_, _ = io.Copy(io.Discard, rsp.Body)
	// 405表示集合已存在, 同样视为成功
	return rsp.StatusCode == http.StatusCreated || rsp.StatusCode == http.StatusMethodNotAllowed
}

func (c *client) Delete(ctx context.Context, remotePath string) bool {
	req, err := c.newRequest(ctx, http.MethodDelete, c.buildURL(remotePath), nil)
	if err != nil {
		return false
	}
	rsp, err := c.hc.Do(req)
	if err != nil {
		return false
	}
	defer rsp.Body.Close()
	_, _ = io.Copy(io.Discard, rsp.Body)
	return rsp.StatusCode >= 200 && rsp.StatusCode < 300
}

func (c *client) PropfindRoot(ctx context.Context) (*ProbeResult, error) {
	req, err := c.newRequest(ctx, "PROPFIND", c.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Depth", "0")
	req.Header.Set("Content-Type", "application/xml")
	rsp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	_, _ = io.Copy(io.Discard, rsp.Body)
	switch rsp.StatusCode {
	case http.StatusOK, http.StatusMultiStatus:
		return &ProbeResult{Reachable: true}, nil
	case http.StatusUnauthorized:
		// 认证失败但服务可达
		return &ProbeResult{Reachable: true, NeedsAuth: true}, nil
	}
	return &ProbeResult{}, nil
}

func readErrBody(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, defaultErrBodyLimit))
	return string(raw)
}
