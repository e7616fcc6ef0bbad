package security

import (
	"bytes"
	"fmt"
	"image"
	"regexp"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// HeadProbeSize 内容检查只读取文件头部这么多字节
const HeadProbeSize = 8 * 1024

type ViolationKind string

const (
	KindInvalidImage     ViolationKind = "invalid_image"
	KindMaliciousContent ViolationKind = "malicious_content"
	KindHeaderMismatch   ViolationKind = "header_mismatch"
)

// Violation 描述一次安全检查失败, Class可安全写入日志, 不包含原始内容
type Violation struct {
	Kind  ViolationKind
	Class string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("security check failed, kind:%s, class:%s", v.Kind, v.Class)
}

var imageExts = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {}, "gif": {}, "bmp": {}, "webp": {},
}

type contentPattern struct {
	class string
	re    *regexp.Regexp
}

var maliciousPatterns = []contentPattern{
	{"php_tag", regexp.MustCompile(`(?i)<\?php`)},
	{"script_tag", regexp.MustCompile(`(?i)<script`)},
	{"js_scheme", regexp.MustCompile(`(?i)javascript:`)},
	{"vbs_scheme", regexp.MustCompile(`(?i)vbscript:`)},
	{"onload_attr", regexp.MustCompile(`(?i)onload\s*=`)},
	{"onerror_attr", regexp.MustCompile(`(?i)onerror\s*=`)},
	{"eval_call", regexp.MustCompile(`(?i)eval\s*\(`)},
	{"exec_call", regexp.MustCompile(`(?i)exec\s*\(`)},
	{"system_call", regexp.MustCompile(`(?i)system\s*\(`)},
	{"shell_exec_call", regexp.MustCompile(`(?i)shell_exec\s*\(`)},
	{"passthru_call", regexp.MustCompile(`(?i)passthru\s*\(`)},
	{"base64_decode_call", regexp.MustCompile(`(?i)base64_decode\s*\(`)},
}

var magicSignatures = map[string][][]byte{
	"jpg":  {{0xFF, 0xD8, 0xFF}},
	"jpeg": {{0xFF, 0xD8, 0xFF}},
	"png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	"gif":  {[]byte("GIF87a"), []byte("GIF89a")},
	"pdf":  {[]byte("%PDF")},
	"zip":  {[]byte("PK\x03\x04"), []byte("PK\x05\x06"), []byte("PK\x07\x08")},
}

// CheckContent 校验文件头部字节: 图片类扩展名要求能被解码为真实图片,
// 同时对已知的可执行/脚本特征做一次字面匹配。
// 这只是对明文特征的兜底过滤, 编码绕过不在防护范围内。
// 扩展名与格式是否匹配由CheckHeader的魔数校验负责。
func CheckContent(head []byte, ext string) *Violation {
	if _, ok := imageExts[ext]; ok {
		if !decodesAsImage(head) {
			return &Violation{Kind: KindInvalidImage, Class: "image_decode_failed"}
		}
	}
	for _, p := range maliciousPatterns {
		if p.re.Match(head) {
			return &Violation{Kind: KindMaliciousContent, Class: p.class}
		}
	}
	return nil
}

func decodesAsImage(head []byte) bool {
	_, _, err := image.DecodeConfig(bytes.NewReader(head))
	return err == nil
}

// CheckHeader 对已知扩展名校验文件魔数
func CheckHeader(head []byte, ext string) *Violation {
	sigs, ok := magicSignatures[ext]
	if !ok {
		return nil
	}
	for _, sig := range sigs {
		if bytes.HasPrefix(head, sig) {
			return nil
		}
	}
	return &Violation{Kind: KindHeaderMismatch, Class: "magic_mismatch_" + ext}
}
