package handler

import (
	"net/http"

	"github.com/feedloop/feedloop/internal/middleware"
	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	svc      service.ProjectService
	deletion service.DeletionService
}

func NewProjectHandler(s service.ProjectService, d service.DeletionService) *ProjectHandler {
	return &ProjectHandler{svc: s, deletion: d}
}

type CreateProjectReq struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project owned by the session user, with a fresh widget integration key
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	model.Project
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	user := middleware.MustUser(c)
	project, err := h.svc.Create(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List projects the session user belongs to
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}	model.Project
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user := middleware.MustUser(c)
	projects, err := h.svc.ListForUser(c.Request.Context(), user.ID)
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// GetProject godoc
//
//	@Summary		Get project
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	model.Project
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID := middleware.MustProjectID(c)
	project, err := h.svc.Get(c.Request.Context(), projectID)
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

type DeleteProjectReq struct {
	ConfirmationText       string `json:"confirmation_text" binding:"required"`
	UnderstoodConsequences bool   `json:"understood_consequences"`
	DeletionReason         string `json:"deletion_reason" binding:"max=500"`
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Cascading delete of a project, its reports, attachments, and memberships. Storage cleanup failures are surfaced, not masked.
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string						true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.DeleteProjectReq	true	"Deletion confirmation"
//	@Security		BearerAuth
//	@Success		200	{object}	service.DeletionResult
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	req := DeleteProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	projectID := middleware.MustProjectID(c)
	user := middleware.MustUser(c)

	result, err := h.deletion.Delete(c.Request.Context(), projectID, user.ID, service.DeleteProjectInput{
		ConfirmationText:       req.ConfirmationText,
		UnderstoodConsequences: req.UnderstoodConsequences,
		DeletionReason:         req.DeletionReason,
	})
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	status := http.StatusOK
	if result.Status == service.DeletionFailed {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}

type InviteMemberReq struct {
	Email string `json:"email" binding:"required,email"`
}

// InviteMember godoc
//
//	@Summary		Invite member
//	@Description	Add a registered user to the project by email
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string					true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.InviteMemberReq	true	"Invite payload"
//	@Security		BearerAuth
//	@Success		201	{object}	model.ProjectMember
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Failure		409	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/members [post]
func (h *ProjectHandler) InviteMember(c *gin.Context) {
	req := InviteMemberReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	projectID := middleware.MustProjectID(c)
	member, err := h.svc.InviteMember(c.Request.Context(), projectID, req.Email)
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// ListMembers godoc
//
//	@Summary		List members
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{array}	model.ProjectMember
//	@Router			/projects/{project_id}/members [get]
func (h *ProjectHandler) ListMembers(c *gin.Context) {
	projectID := middleware.MustProjectID(c)
	members, err := h.svc.ListMembers(c.Request.Context(), projectID)
	if err != nil {
		abortServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// RemoveMember godoc
//
//	@Summary		Remove member
//	@Description	Remove a member from the project; the owner cannot be removed
//	@Tags			project
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			user_id		path	string	true	"User ID"		Format(uuid)
//	@Security		BearerAuth
//	@Success		204
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/members/{user_id} [delete]
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
			{Field: "user_id", Message: "must be a valid UUID"},
		}))
		return
	}

	projectID := middleware.MustProjectID(c)
	if err := h.svc.RemoveMember(c.Request.Context(), projectID, userID); err != nil {
		abortServiceErr(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
