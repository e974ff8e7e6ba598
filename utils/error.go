package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorCode is the error signal returned to callers of a callable job.
type ErrorCode string

const (
	CodeUnauthenticated  ErrorCode = "unauthenticated"
	CodeInvalidArgument  ErrorCode = "invalid-argument"
	CodePermissionDenied ErrorCode = "permission-denied"
	CodeNotFound         ErrorCode = "not-found"
	CodeInternal         ErrorCode = "internal"
)

// AppError carries a typed code, a caller-safe message and the underlying cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func Unauthenticated(msg string) error { return &AppError{Code: CodeUnauthenticated, Message: msg} }

func InvalidArgument(msg string) error { return &AppError{Code: CodeInvalidArgument, Message: msg} }

func PermissionDenied(msg string) error { return &AppError{Code: CodePermissionDenied, Message: msg} }

func NotFound(msg string) error { return &AppError{Code: CodeNotFound, Message: msg} }

// Internal wraps a store or transport failure; the cause stays available for logs.
func Internal(msg string, cause error) error {
	return &AppError{Code: CodeInternal, Message: msg, Cause: cause}
}

// CodeOf reports the code of err, treating anything untyped as internal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error code to its HTTP status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Status  ErrorCode `json:"status"`
	Message string    `json:"message"`
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteError sends a typed error to the caller. Internal causes are logged, never exposed.
func WriteError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = &AppError{Code: CodeInternal, Message: "internal error", Cause: err}
	}

	logger := GetLogger()
	if appErr.Code == CodeInternal {
		logger.Error(appErr.Message, zap.String("path", c.FullPath()), zap.Error(appErr.Cause))
	} else {
		logger.Warn(appErr.Message, zap.String("path", c.FullPath()), zap.String("code", string(appErr.Code)))
	}

	c.AbortWithStatusJSON(HTTPStatus(appErr.Code), ErrorResponse{
		Error: ErrorBody{Status: appErr.Code, Message: appErr.Message},
	})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error: ErrorBody{Status: CodeInternal, Message: "An unexpected error occurred. Please try again later."},
				})
			}
		}()
		c.Next()
	}
}
