package pkg

import (
	"errors"
	"net/http"
)

// 错误码，handler 层据此映射 HTTP 状态
const (
	CodeNotFound     = "NOT_FOUND"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL"
)

type AppError struct {
	Code    string
	Message string
	Origin  error // 底层错误，可为空
}

func (e *AppError) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Origin }

func NewAppError(code, message string, origin error) *AppError {
	return &AppError{Code: code, Message: message, Origin: origin}
}

func NotFound(message string) *AppError { return &AppError{Code: CodeNotFound, Message: message} }

func Forbidden(message string) *AppError { return &AppError{Code: CodeForbidden, Message: message} }

func Conflict(message string) *AppError { return &AppError{Code: CodeConflict, Message: message} }

func BadRequest(message string) *AppError { return &AppError{Code: CodeBadRequest, Message: message} }

func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// HTTPStatus 非 AppError 一律按 500 处理
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
