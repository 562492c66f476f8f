package handler

import (
	"errors"
	"net/http"

	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/gin-gonic/gin"
)

// abortServiceErr translates service-layer sentinel errors onto the wire.
// Anything unrecognized is an upstream failure: logged with detail, surfaced
// generically.
func abortServiceErr(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]serializer.FieldError, 0, len(verr.Details))
		for _, d := range verr.Details {
			details = append(details, serializer.FieldError{Field: d.Field, Message: d.Message})
		}
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", details))
	case errors.Is(err, service.ErrEmptyUpdate):
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("at least one field must be provided", nil))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr("invalid email or password"))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, serializer.ConflictErr("email already registered"))
	case errors.Is(err, service.ErrDuplicate):
		c.JSON(http.StatusConflict, serializer.ConflictErr(""))
	case errors.Is(err, service.ErrOwnerRemoval):
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("project owner cannot be removed", nil))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
