package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/feedloop/feedloop/internal/middleware"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/serializer"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/feedloop/feedloop/internal/pkg/paging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReportService struct{ mock.Mock }

func (m *mockReportService) List(ctx context.Context, in service.ListReportsInput) (*service.ListReportsOutput, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ListReportsOutput), args.Error(1)
}

func (m *mockReportService) GetDetail(ctx context.Context, projectID, reportID uuid.UUID) (*service.ReportDetail, error) {
	args := m.Called(ctx, projectID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportDetail), args.Error(1)
}

func (m *mockReportService) Update(ctx context.Context, projectID, reportID uuid.UUID, in service.UpdateReportInput) (*service.ReportDetail, error) {
	args := m.Called(ctx, projectID, reportID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportDetail), args.Error(1)
}

func (m *mockReportService) Create(ctx context.Context, in service.CreateReportInput) (*model.Report, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *mockReportService) SubmitWidget(ctx context.Context, in service.WidgetSubmission) (*model.Report, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

// reportRouter wires the handler behind stub context middleware standing in
// for SessionAuth and ProjectAccess.
func reportRouter(svc service.ReportService, projectID uuid.UUID, user *model.User) *gin.Engine {
	r := gin.New()
	h := NewReportHandler(svc)
	scoped := r.Group("/projects/:project_id", func(c *gin.Context) {
		c.Set(middleware.ContextProjectID, projectID)
		c.Set(middleware.ContextUser, user)
	})
	scoped.GET("/reports", h.ListReports)
	scoped.POST("/reports", h.CreateReport)
	scoped.GET("/reports/:report_id", h.GetReport)
	scoped.PUT("/reports/:report_id", h.UpdateReport)
	return r
}

func TestListReportsHandler(t *testing.T) {
	projectID := uuid.New()
	user := &model.User{ID: uuid.New()}

	t.Run("bracket query params map onto the filter", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)

		var got service.ListReportsInput
		svc.On("List", mock.Anything, mock.AnythingOfType("service.ListReportsInput")).
			Run(func(args mock.Arguments) { got = args.Get(1).(service.ListReportsInput) }).
			Return(&service.ListReportsOutput{
				Reports:    []service.ReportListItem{},
				Pagination: paging.New(2, 10, 0),
			}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/projects/"+projectID.String()+"/reports?filter%5Btitle%5D=login&filter%5Btype%5D=bug&filter%5BdateTo%5D=2026-03-14&sort%5Bcolumn%5D=priority&sort%5Bdirection%5D=asc&page=2&limit=10", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, projectID, got.ProjectID)
		assert.Equal(t, "login", got.Filter.Title)
		assert.Equal(t, "bug", got.Filter.Type)
		assert.Equal(t, "priority", got.Sort.Column)
		assert.False(t, got.Sort.Desc)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 10, got.Limit)

		// plain dateTo widens to end of day
		require.NotNil(t, got.Filter.DateTo)
		endOfDay := time.Date(2026, 3, 14, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
		assert.Equal(t, endOfDay, got.Filter.DateTo.UTC())
	})

	t.Run("malformed date", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/projects/"+projectID.String()+"/reports?filter%5BdateFrom%5D=14-03-2026", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("unknown sort column is rejected by binding", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/projects/"+projectID.String()+"/reports?sort%5Bcolumn%5D=password_hash", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetReportHandler(t *testing.T) {
	projectID := uuid.New()
	user := &model.User{ID: uuid.New()}

	t.Run("invalid uuid answers 400 before any lookup", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/reports/not-a-uuid", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "GetDetail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing report answers 404", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)
		reportID := uuid.New()

		svc.On("GetDetail", mock.Anything, projectID, reportID).Return(nil, service.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/reports/"+reportID.String(), nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp serializer.ErrorResponse
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_found", resp.Error)
	})

	t.Run("detail includes status", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)
		reportID := uuid.New()

		svc.On("GetDetail", mock.Anything, projectID, reportID).Return(&service.ReportDetail{
			Report:        model.Report{ID: reportID, ProjectID: projectID, Status: model.StatusInProgress},
			FlAttachments: []service.AttachmentView{},
		}, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/reports/"+reportID.String(), nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var asMap map[string]any
		require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &asMap))
		assert.Equal(t, "in_progress", asMap["status"])
	})
}

func TestUpdateReportHandler(t *testing.T) {
	projectID := uuid.New()
	user := &model.User{ID: uuid.New()}

	t.Run("empty body answers 400", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)
		reportID := uuid.New()

		svc.On("Update", mock.Anything, projectID, reportID, service.UpdateReportInput{}).
			Return(nil, service.ErrEmptyUpdate)

		w := doJSON(t, r, http.MethodPut, "/projects/"+projectID.String()+"/reports/"+reportID.String(), gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("updates pass through", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)
		reportID := uuid.New()

		status := "resolved"
		svc.On("Update", mock.Anything, projectID, reportID, service.UpdateReportInput{Status: &status}).
			Return(&service.ReportDetail{
				Report: model.Report{ID: reportID, ProjectID: projectID, Status: model.StatusResolved},
			}, nil)

		w := doJSON(t, r, http.MethodPut, "/projects/"+projectID.String()+"/reports/"+reportID.String(), gin.H{
			"status": "resolved",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestCreateReportHandler(t *testing.T) {
	projectID := uuid.New()
	user := &model.User{ID: uuid.New()}

	t.Run("attributes the session user", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)

		var got service.CreateReportInput
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateReportInput")).
			Run(func(args mock.Arguments) { got = args.Get(1).(service.CreateReportInput) }).
			Return(&model.Report{ID: uuid.New(), ProjectID: projectID}, nil)

		w := doJSON(t, r, http.MethodPost, "/projects/"+projectID.String()+"/reports", gin.H{
			"title":       "Broken login",
			"description": "Clicking login does nothing",
			"type":        "bug",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, user.ID, got.CreatedBy)
		assert.Equal(t, projectID, got.ProjectID)
	})

	t.Run("rejects unknown type at binding", func(t *testing.T) {
		svc := new(mockReportService)
		r := reportRouter(svc, projectID, user)

		w := doJSON(t, r, http.MethodPost, "/projects/"+projectID.String()+"/reports", gin.H{
			"title":       "Broken login",
			"description": "Clicking login does nothing",
			"type":        "complaint",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
