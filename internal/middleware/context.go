package middleware

import (
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MustUser returns the session user set by SessionAuth, or nil.
func MustUser(c *gin.Context) *model.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// MustProjectID returns the project id set by ProjectAccess.
func MustProjectID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextProjectID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

// MustProject returns the project set by WidgetAuth, or nil.
func MustProject(c *gin.Context) *model.Project {
	v, ok := c.Get(ContextProject)
	if !ok {
		return nil
	}
	project, _ := v.(*model.Project)
	return project
}
