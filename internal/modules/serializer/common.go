package serializer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var log = zap.NewNop()

// SetLogger installs the logger used for server-side error detail.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// FieldError carries field-level validation detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the stable machine-readable error envelope. Internal error
// strings never leak here; data-layer detail is logged server-side instead.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

func ValidationErr(msg string, details []FieldError) ErrorResponse {
	if msg == "" {
		msg = "request validation failed"
	}
	return ErrorResponse{Error: "validation_error", Message: msg, Details: details}
}

func AuthErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "authentication required"
	}
	return ErrorResponse{Error: "authentication_error", Message: msg}
}

// NotFoundErr covers both genuinely missing resources and inaccessible ones,
// so responses do not reveal whether an inaccessible project exists.
func NotFoundErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "resource not found"
	}
	return ErrorResponse{Error: "not_found", Message: msg}
}

func ConflictErr(msg string) ErrorResponse {
	if msg == "" {
		msg = "resource already exists"
	}
	return ErrorResponse{Error: "conflict", Message: msg}
}

func RateLimitErr() ErrorResponse {
	return ErrorResponse{Error: "rate_limited", Message: "too many requests, retry later"}
}

// DBErr logs the upstream failure server-side and returns a generic message.
// Outside release mode the detail is echoed to ease local debugging.
func DBErr(msg string, err error) ErrorResponse {
	if msg == "" {
		msg = "internal server error"
	}
	if err != nil {
		log.Sugar().Errorw("upstream failure", "err", err)
		if gin.Mode() != gin.ReleaseMode {
			msg = fmt.Sprintf("%s: %+v", msg, err)
		}
	}
	return ErrorResponse{Error: "internal_error", Message: msg}
}

// BindErr converts a gin binding failure into a validation envelope,
// unpacking validator.ValidationErrors into per-field detail.
func BindErr(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fieldMessage(fe),
			})
		}
		return ValidationErr("", details)
	}
	return ValidationErr(err.Error(), nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
