package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feedloop/feedloop/internal/middleware"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/gin-gonic/gin"
)

type WidgetHandler struct {
	svc service.ReportService
}

func NewWidgetHandler(s service.ReportService) *WidgetHandler {
	return &WidgetHandler{svc: s}
}

type WidgetReportReq struct {
	Title         string  `form:"title" binding:"required,max=200"`
	Description   string  `form:"description" binding:"required,max=10000"`
	Type          string  `form:"type" binding:"required,oneof=bug feature feedback"`
	Priority      *string `form:"priority" binding:"omitempty,oneof=low medium high critical"`
	ReporterName  string  `form:"reporter_name" binding:"max=200"`
	ReporterEmail string  `form:"reporter_email" binding:"omitempty,email"`
	BrowserInfo   string  `form:"browser_info"`
	PageURL       string  `form:"page_url"`

	// JSON-encoded arrays of captured diagnostics.
	ConsoleLogs     string `form:"console_logs"`
	NetworkRequests string `form:"network_requests"`
}

// SubmitReport godoc
//
//	@Summary		Submit widget report
//	@Description	Public report submission from the embeddable widget, attributed via integration key. Multipart; up to 5 attachment files of 10MB each under the "files" field.
//	@Tags			widget
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			X-FeedLoop-Key	header		string	true	"Project integration key"
//	@Success		201				{object}	model.Report
//	@Failure		400				{object}	serializer.ErrorResponse
//	@Failure		401				{object}	serializer.ErrorResponse
//	@Router			/widget/reports [post]
func (h *WidgetHandler) SubmitReport(c *gin.Context) {
	req := WidgetReportReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	var consoleLogs []model.ConsoleLog
	if req.ConsoleLogs != "" {
		if err := json.Unmarshal([]byte(req.ConsoleLogs), &consoleLogs); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
				{Field: "console_logs", Message: "must be a JSON array of console entries"},
			}))
			return
		}
	}

	var networkRequests []model.NetworkRequest
	if req.NetworkRequests != "" {
		if err := json.Unmarshal([]byte(req.NetworkRequests), &networkRequests); err != nil {
			c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
				{Field: "network_requests", Message: "must be a JSON array of network entries"},
			}))
			return
		}
	}

	in := service.WidgetSubmission{
		ProjectID:       middleware.MustProject(c).ID,
		Title:           req.Title,
		Description:     req.Description,
		Type:            req.Type,
		Priority:        req.Priority,
		ReporterName:    req.ReporterName,
		ReporterEmail:   req.ReporterEmail,
		BrowserInfo:     req.BrowserInfo,
		PageURL:         req.PageURL,
		ConsoleLogs:     consoleLogs,
		NetworkRequests: networkRequests,
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in.Files = form.File["files"]
	}

	report, err := h.svc.SubmitWidget(c.Request.Context(), in)
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}
