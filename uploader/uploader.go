package uploader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/filebed/backend"
	"github.com/xxxsen/filebed/pathkit"
	"github.com/xxxsen/filebed/security"
	"github.com/xxxsen/filebed/server/httpkit"
	"go.uber.org/zap"
)

// Request 一次上传请求, TempPath指向请求期间的临时文件, 由调用方负责清理
type Request struct {
	OriginalName string
	TempPath     string
	Size         int64
	MimeHint     string
	BackendAlias string
	ClientIP     string
}

// Result 上传成功后的对象描述, 不落地, 文件身份完全编码在生成的文件名里
type Result struct {
	OriginalName      string
	FileName          string
	RemotePath        string
	FileSize          int64
	FileSizeFormatted string
	DownloadURL       string
	DirectURL         string
	WebdavAlias       string
	WebdavName        string
	UploadTime        string
	IsImage           bool
	MimeType          string
}

type Uploader struct {
	reg *backend.Registry
	c   *config
}

func New(reg *backend.Registry, opts ...Option) *Uploader {
	return &Uploader{
		reg: reg,
		c:   applyOpts(opts...),
	}
}

func (u *Uploader) Upload(ctx context.Context, req *Request) (*Result, error) {
	display, err := u.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	bk, err := u.reg.Resolve(req.BackendAlias)
	if err != nil {
		return nil, newError(KindBackendNotConfigured,
			fmt.Sprintf("webdav backend not configured, alias:%s", req.BackendAlias), err)
	}
	cli := u.c.factory(bk)
	probe, err := cli.PropfindRoot(ctx)
	if err != nil || !probe.Reachable {
		logutil.GetLogger(ctx).Error("webdav backend unreachable",
			zap.String("alias", bk.Alias), zap.Error(err))
		return nil, newError(KindBackendUnreachable,
			fmt.Sprintf("webdav backend unreachable, alias:%s", bk.Alias), err)
	}
	name := pathkit.GenerateUniqueName(display)
	remotePath := composeRemotePath(bk.BasePath, name)
	if dir := path.Dir(remotePath); dir != "." && dir != "/" {
		if !cli.Mkcol(ctx, dir) {
			return nil, newError(KindTransfer,
				fmt.Sprintf("create remote collection failed, dir:%s", dir), nil)
		}
	}
	data, err := os.ReadFile(req.TempPath)
	if err != nil {
		return nil, newError(KindTransfer, "read upload payload failed", err)
	}
	if err := cli.Put(ctx, remotePath, data); err != nil {
		return nil, newError(KindTransfer,
			fmt.Sprintf("upload to webdav failed, path:%s", remotePath), err)
	}
	res := &Result{
		OriginalName:      req.OriginalName,
		FileName:          name,
		RemotePath:        remotePath,
		FileSize:          req.Size,
		FileSizeFormatted: humanize.IBytes(uint64(req.Size)),
		DownloadURL:       u.buildDownloadURL(remotePath, bk.Alias),
		DirectURL:         strings.TrimRight(bk.URL, "/") + "/" + pathkit.EncodePath(remotePath),
		WebdavAlias:       bk.Alias,
		WebdavName:        bk.Name,
		UploadTime:        time.Now().Format("2006-01-02 15:04:05"),
		IsImage:           httpkit.IsImageFile(req.OriginalName),
		MimeType:          httpkit.DetermineMimeType(req.OriginalName),
	}
	logutil.GetLogger(ctx).Info("upload file succ",
		zap.String("original_name", res.OriginalName),
		zap.String("file_name", res.FileName),
		zap.Int64("file_size", res.FileSize),
		zap.String("webdav_alias", res.WebdavAlias),
		zap.String("download_url", res.DownloadURL))
	return res, nil
}

// validate 按固定顺序做快速失败校验, 返回清理后的展示名
func (u *Uploader) validate(ctx context.Context, req *Request) (string, error) {
	st, err := os.Stat(req.TempPath)
	if err != nil || st.Size() == 0 || st.Size() != req.Size {
		return "", newError(KindTransfer, "incomplete upload payload", err)
	}
	ext := extOf(req.OriginalName)
	if _, ok := u.c.exts[ext]; !ok {
		return "", newError(KindUnsupportedType,
			fmt.Sprintf("unsupported file type, allowed:%s", strings.Join(u.allowedList(), ",")), nil)
	}
	if u.c.maxSize > 0 && req.Size > u.c.maxSize {
		return "", newError(KindFileTooLarge,
			fmt.Sprintf("file too large, max allowed:%s", humanize.IBytes(uint64(u.c.maxSize))), nil)
	}
	display := pathkit.SanitizeDisplayName(req.OriginalName)
	head, err := readHead(req.TempPath)
	if err != nil {
		return "", newError(KindTransfer, "read upload payload failed", err)
	}
	if v := security.CheckContent(head, ext); v != nil {
		logutil.GetLogger(ctx).Warn("reject insecure upload",
			zap.String("class", v.Class),
			zap.String("file_name", display),
			zap.String("ip", req.ClientIP))
		if v.Kind == security.KindInvalidImage {
			return "", newError(KindInvalidImage, "invalid image file", v)
		}
		return "", newError(KindMaliciousContent, "file content contains unsafe code", v)
	}
	if v := security.CheckHeader(head, ext); v != nil {
		logutil.GetLogger(ctx).Warn("reject upload with mismatched header",
			zap.String("class", v.Class),
			zap.String("file_name", display),
			zap.String("ip", req.ClientIP))
		return "", newError(KindHeaderMismatch, "file header does not match extension", v)
	}
	return display, nil
}

func (u *Uploader) allowedList() []string {
	rs := make([]string, 0, len(u.c.exts))
	for ext := range u.c.exts {
		rs = append(rs, ext)
	}
	sort.Strings(rs)
	return rs
}

func (u *Uploader) buildDownloadURL(remotePath string, alias string) string {
	return fmt.Sprintf("%s/proxy?file=%s&webdav=%s",
		u.c.appURL, url.QueryEscape(remotePath), url.QueryEscape(alias))
}

func composeRemotePath(basePath string, name string) string {
	bp := strings.Trim(basePath, "/")
	if len(bp) == 0 {
		return name
	}
	return bp + "/" + name
}

func extOf(name string) string {
	return strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
}

func readHead(p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, security.HeadProbeSize))
}
