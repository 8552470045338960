package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies failures that are reported back to the caller
// instead of aborting the process.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindDuplicate     ErrorKind = "duplicate"
	KindNotFound      ErrorKind = "not_found"
	KindAuthorization ErrorKind = "authorization"
	KindSoldOut       ErrorKind = "sold_out"
)

// AppError is a user-facing error with a kind and a message.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any AppError of the same kind, so callers can write
// errors.Is(err, utils.ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Kind == e.Kind
}

var (
	ErrValidation    = &AppError{Kind: KindValidation, Message: "invalid input"}
	ErrDuplicate     = &AppError{Kind: KindDuplicate, Message: "already exists"}
	ErrNotFound      = &AppError{Kind: KindNotFound, Message: "not found"}
	ErrAuthorization = &AppError{Kind: KindAuthorization, Message: "not allowed"}
	ErrSoldOut       = &AppError{Kind: KindSoldOut, Message: "no seats available"}
)

func NewValidationError(format string, args ...any) error {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewDuplicateError(format string, args ...any) error {
	return &AppError{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewAuthorizationError(format string, args ...any) error {
	return &AppError{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func NewSoldOutError(format string, args ...any) error {
	return &AppError{Kind: KindSoldOut, Message: fmt.Sprintf(format, args...)}
}

// StatusFor maps an error to the HTTP status the API answers with.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate, KindSoldOut:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError answers with the status and message derived from err.
// Internal failures are logged in full and reported generically.
func RespondError(c *gin.Context, err error) {
	status := StatusFor(err)
	var appErr *AppError
	if errors.As(err, &appErr) {
		GetLogger().Debug("request rejected", zap.String("kind", string(appErr.Kind)), zap.String("message", appErr.Message))
		c.JSON(status, ErrorResponse{Message: appErr.Message, Kind: string(appErr.Kind)})
		return
	}
	GetLogger().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(status, ErrorResponse{
		Message: "Internal Server Error",
		Details: "An unexpected error occurred. Please try again later.",
	})
}
