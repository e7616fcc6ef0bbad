package uploader

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrKind int

const (
	KindNone ErrKind = iota
	KindTransfer
	KindUnsupportedType
	KindFileTooLarge
	KindInvalidImage
	KindMaliciousContent
	KindHeaderMismatch
	KindBackendNotConfigured
	KindBackendUnreachable
)

func (k ErrKind) String() string {
	switch k {
	case KindTransfer:
		return "transfer_error"
	case KindUnsupportedType:
		return "unsupported_type"
	case KindFileTooLarge:
		return "file_too_large"
	case KindInvalidImage:
		return "invalid_image"
	case KindMaliciousContent:
		return "malicious_content"
	case KindHeaderMismatch:
		return "header_mismatch"
	case KindBackendNotConfigured:
		return "backend_not_configured"
	case KindBackendUnreachable:
		return "backend_unreachable"
	}
	return "unknown"
}

// HTTPStatus 错误类型到http状态码的映射
func (k ErrKind) HTTPStatus() int {
	switch k {
	case KindUnsupportedType, KindFileTooLarge, KindInvalidImage,
		KindMaliciousContent, KindHeaderMismatch, KindBackendNotConfigured:
		return http.StatusBadRequest
	case KindBackendUnreachable:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

type Error struct {
	Kind    ErrKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s, err:%v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, cause: cause}
}

// KindOf 提取错误类型, 非本包错误归为KindTransfer以外的未知错误处理
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
