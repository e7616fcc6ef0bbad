package pathkit

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	defaultMaxRemoteNameLength  = 100
	defaultMaxDisplayNameLength = 255
	defaultDisplayNameCutLength = 200
)

// GenerateUniqueName 基于时间戳+随机后缀生成远端文件名, 仅保留原始扩展名
func GenerateUniqueName(originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	now := time.Now()
	ts := now.Format("20060102150405")
	sub := fmt.Sprintf("%04d", now.Nanosecond()/100000%10000)
	random := randomSuffix()
	name := ts + "_" + sub + "_" + random + ext
	if len(name) > defaultMaxRemoteNameLength {
		// 超长的场景下丢弃亚秒部分重新拼接
		name = ts + "_" + random + ext
	}
	return name
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// EncodePath 对路径逐段做RFC 3986编码, 保留目录分隔符本身
func EncodePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = encodeSegment(part)
	}
	return strings.Join(parts, "/")
}

func encodeSegment(seg string) string {
	var sb strings.Builder
	sb.Grow(len(seg))
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(fmt.Sprintf("%%%02X", c))
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '.' || c == '_' || c == '~':
		return true
	}
	return false
}

// SanitizeDisplayName 清理用户提交的文件名, 去除目录部分并替换不安全字符
func SanitizeDisplayName(name string) string {
	base := baseName(name)
	var sb strings.Builder
	sb.Grow(len(base))
	for _, r := range base {
		if isSafeNameRune(r) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune('_')
	}
	cleaned := sb.String()
	if len(cleaned) <= defaultMaxDisplayNameLength {
		return cleaned
	}
	ext := path.Ext(cleaned)
	stem := strings.TrimSuffix(cleaned, ext)
	stem = cutRuneSafe(stem, defaultDisplayNameCutLength)
	return stem + ext
}

func baseName(name string) string {
	// windows客户端可能会带反斜杠路径
	if idx := strings.LastIndexByte(name, '\\'); idx >= 0 {
		name = name[idx+1:]
	}
	return path.Base(name)
}

func isSafeNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '.' || r == '_' || r == '-':
		return true
	case r >= 0x4e00 && r <= 0x9fa5: // CJK
		return true
	}
	return false
}

func cutRuneSafe(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
