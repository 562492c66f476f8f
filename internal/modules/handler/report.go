package handler

import (
	"net/http"
	"time"

	"github.com/feedloop/feedloop/internal/middleware"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{svc: s}
}

type ListReportsReq struct {
	FilterTitle    string `form:"filter[title]" json:"filter_title"`
	FilterType     string `form:"filter[type]" json:"filter_type"`
	FilterPriority string `form:"filter[priority]" json:"filter_priority"`
	FilterReporter string `form:"filter[reporter]" json:"filter_reporter"`
	FilterDateFrom string `form:"filter[dateFrom]" json:"filter_date_from"`
	FilterDateTo   string `form:"filter[dateTo]" json:"filter_date_to"`
	SortColumn     string `form:"sort[column],default=created_at" json:"sort_column" binding:"omitempty,oneof=title type priority created_at reporter_name"`
	SortDirection  string `form:"sort[direction],default=desc" json:"sort_direction" binding:"omitempty,oneof=asc desc"`
	Page           int    `form:"page,default=1" json:"page" binding:"omitempty,min=1"`
	Limit          int    `form:"limit,default=20" json:"limit" binding:"omitempty,min=1,max=100"`
}

// parseDate accepts RFC3339 timestamps or plain dates. A plain dateTo is
// widened to the end of that day so the range stays inclusive.
func parseDate(s string, endOfDay bool) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}
	return nil, false
}

// ListReports godoc
//
//	@Summary		List reports
//	@Description	Filtered, sorted, paginated report listing with aggregate counts over all matches. The list view omits report status.
//	@Tags			report
//	@Produce		json
//	@Param			project_id			path	string	true	"Project ID"	Format(uuid)
//	@Param			filter[title]		query	string	false	"Title substring match"
//	@Param			filter[type]		query	string	false	"Exact type match"		Enums(bug, feature, feedback)
//	@Param			filter[priority]	query	string	false	"Exact priority match"	Enums(low, medium, high, critical)
//	@Param			filter[reporter]	query	string	false	"Reporter name or email substring"
//	@Param			filter[dateFrom]	query	string	false	"Inclusive lower creation bound (RFC3339 or YYYY-MM-DD)"
//	@Param			filter[dateTo]		query	string	false	"Inclusive upper creation bound (RFC3339 or YYYY-MM-DD)"
//	@Param			sort[column]		query	string	false	"Sort column"	Enums(title, type, priority, created_at, reporter_name)
//	@Param			sort[direction]		query	string	false	"Sort direction"	Enums(asc, desc)
//	@Param			page				query	integer	false	"Page, starting at 1"
//	@Param			limit				query	integer	false	"Page size, max 100"
//	@Security		BearerAuth
//	@Success		200	{object}	service.ListReportsOutput
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/reports [get]
func (h *ReportHandler) ListReports(c *gin.Context) {
	req := ListReportsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	dateFrom, ok := parseDate(req.FilterDateFrom, false)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
			{Field: "filter.dateFrom", Message: "must be RFC3339 or YYYY-MM-DD"},
		}))
		return
	}
	dateTo, ok := parseDate(req.FilterDateTo, true)
	if !ok {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
			{Field: "filter.dateTo", Message: "must be RFC3339 or YYYY-MM-DD"},
		}))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListReportsInput{
		ProjectID: middleware.MustProjectID(c),
		Filter: model.ReportFilter{
			Title:    req.FilterTitle,
			Type:     req.FilterType,
			Priority: req.FilterPriority,
			Reporter: req.FilterReporter,
			DateFrom: dateFrom,
			DateTo:   dateTo,
		},
		Sort: repo.ReportSort{
			Column: req.SortColumn,
			Desc:   req.SortDirection != "asc",
		},
		Page:  req.Page,
		Limit: req.Limit,
	})
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// GetReport godoc
//
//	@Summary		Get report detail
//	@Description	Report row joined with its attachments and creator identity
//	@Tags			report
//	@Produce		json
//	@Param			project_id	path	string	true	"Project ID"	Format(uuid)
//	@Param			report_id	path	string	true	"Report ID"		Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	service.ReportDetail
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/reports/{report_id} [get]
func (h *ReportHandler) GetReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("report_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
			{Field: "report_id", Message: "must be a valid UUID"},
		}))
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), middleware.MustProjectID(c), reportID)
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type UpdateReportReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Type        *string `json:"type"`
}

// UpdateReport godoc
//
//	@Summary		Update report
//	@Description	Partial update; at least one field must be present. Returns the re-fetched composite view.
//	@Tags			report
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string					true	"Project ID"	Format(uuid)
//	@Param			report_id	path	string					true	"Report ID"		Format(uuid)
//	@Param			payload		body	handler.UpdateReportReq	true	"Fields to update"
//	@Security		BearerAuth
//	@Success		200	{object}	service.ReportDetail
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Failure		404	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/reports/{report_id} [put]
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("report_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ValidationErr("", []serializer.FieldError{
			{Field: "report_id", Message: "must be a valid UUID"},
		}))
		return
	}

	req := UpdateReportReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	detail, err := h.svc.Update(c.Request.Context(), middleware.MustProjectID(c), reportID, service.UpdateReportInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Type:        req.Type,
	})
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type CreateReportReq struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required,max=10000"`
	Type        string  `json:"type" binding:"required,oneof=bug feature feedback"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
}

// CreateReport godoc
//
//	@Summary		Create report
//	@Description	Dashboard report creation attributed to the session user
//	@Tags			report
//	@Accept			json
//	@Produce		json
//	@Param			project_id	path	string					true	"Project ID"	Format(uuid)
//	@Param			payload		body	handler.CreateReportReq	true	"CreateReport payload"
//	@Security		BearerAuth
//	@Success		201	{object}	model.Report
//	@Failure		400	{object}	serializer.ErrorResponse
//	@Router			/projects/{project_id}/reports [post]
func (h *ReportHandler) CreateReport(c *gin.Context) {
	req := CreateReportReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.BindErr(err))
		return
	}

	user := middleware.MustUser(c)
	report, err := h.svc.Create(c.Request.Context(), service.CreateReportInput{
		ProjectID:   middleware.MustProjectID(c),
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Priority:    req.Priority,
		CreatedBy:   user.ID,
	})
	if err != nil {
		abortServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}
