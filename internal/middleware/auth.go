package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
)

const (
	// ContextUser holds the authenticated *model.User for dashboard routes.
	ContextUser = "user"
	// ContextProject holds the *model.Project resolved by widget-key auth.
	ContextProject = "project"
	// ContextProjectID holds the uuid.UUID of the scoped project.
	ContextProjectID = "project_id"

	widgetKeyHeader = "X-FeedLoop-Key"
)

// SessionAuth authenticates dashboard requests with a Bearer JWT and sets the
// resolved user in the context.
func SessionAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		userID, err := auth.ParseToken(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		user, err := auth.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// ProjectAccess validates the :project_id path parameter (UUID shape first,
// before any query runs) and checks project membership. Both a missing
// project and a denied one answer 404, so responses do not reveal whether an
// inaccessible project exists.
func ProjectAccess(projects service.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := uuid.Parse(c.Param("project_id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
				{Field: "project_id", Message: "must be a valid UUID"},
			}))
			return
		}

		user := MustUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr(""))
			return
		}

		ok, err := projects.HasAccess(c.Request.Context(), projectID, user.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, serializer.NotFoundErr("project not found"))
			return
		}

		c.Set(ContextProjectID, projectID)
		c.Next()
	}
}

// WidgetAuth authenticates widget submissions by project integration key and
// sets the attributed project in the context.
func WidgetAuth(projects service.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(widgetKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("missing integration key"))
			return
		}

		project, err := projects.GetByIntegrationKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, serializer.AuthErr("invalid integration key"))
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, serializer.DBErr("", err))
			return
		}

		c.Set(ContextProject, project)
		c.Next()
	}
}
