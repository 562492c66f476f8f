package handler

import (
	"net/http"

	"github.com/feedloop/feedloop/internal/middleware"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExportHandler struct {
	svc service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{svc: s}
}

type ExportFilterReq struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Reporter string `json:"reporter"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

type CreateExportReq struct {
	ReportIDs     []string            `json:"report_ids"`
	Filter        *ExportFilterReq    `json:"filter"`
	Format        string              `json:"format" binding:"required,oneof=csv json xlsx"`
	Template      string              `json:"template" binding:"omitempty,oneof=default jira azure_devops"`
	IncludeFields model.IncludeFields `json:"include_fields"`
}

// CreateExport godoc
//
//	@Summary		Create export job
//	@Description	Queue an export of selected reports. Explicit report_ids take precedence over a filter; filter selections are re-evaluated when the job runs.
//	@Tags			export
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string					true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.CreateExportReq	true	"Export request"
//	@Security		BearerAuth
//	@Success		202	{object}	model.ExportJob
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/exports [post]
func (h *ExportHandler) CreateExport(c *gin.Context) {
	req := CreateExportReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ReportIDs))
	for _, raw := range req.ReportIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
				{Field: "report_ids", Message: raw + " is not a valid UUID"},
			}))
			return
		}
		ids = append(ids, id)
	}

	var filter *model.ReportFilter
	if req.Filter != nil {
		dateFrom, ok := parseDate(req.Filter.DateFrom, false)
		if !ok {
			c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
				{Field: "filter.date_from", Message: "must be RFC3339 or YYYY-MM-DD"},
			}))
			return
		}
		dateTo, ok := parseDate(req.Filter.DateTo, true)
		if !ok {
			c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
				{Field: "filter.date_to", Message: "must be RFC3339 or YYYY-MM-DD"},
			}))
			return
		}
		filter = &model.ReportFilter{
			Title:    req.Filter.Title,
			Type:     req.Filter.Type,
			Priority: req.Filter.Priority,
			Reporter: req.Filter.Reporter,
			DateFrom: dateFrom,
			DateTo:   dateTo,
		}
	}

	user := middleware.MustUser(c)
	job, err := h.svc.CreateJob(c.Request.Context(), service.CreateExportInput{
		ProjectID:     middleware.MustProjectID(c),
		RequestedBy:   user.ID,
		ReportIDs:     ids,
		Filter:        filter,
		Format:        req.Format,
		Template:      req.Template,
		IncludeFields: req.IncludeFields,
	})
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusAccepted, job)
}

// GetExport godoc
//
//	@Summary		Get export job
//	@Description	Export status, progress, and download reference once successful
//	@Tags			export
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			export_id	path	string	true	"Export job ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	model.ExportJob
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/exports/{export_id} [get]
func (h *ExportHandler) GetExport(c *gin.Context) {
	exportID, err := uuid.Parse(c.Param("export_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
			{Field: "export_id", Message: "must be a valid UUID"},
		}))
		return
	}

	job, err := h.svc.GetJob(c.Request.Context(), middleware.MustProjectID(c), exportID)
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
