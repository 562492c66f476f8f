package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/service"
	"github.com/feedloop/feedloop/internal/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockProjectService struct{ mock.Mock }

func (m *mockProjectService) Create(ctx context.Context, ownerID uuid.UUID, name string) (*model.Project, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectService) Get(ctx context.Context, projectID uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectService) GetByIntegrationKey(ctx context.Context, key string) (*model.Project, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *mockProjectService) HasAccess(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProjectService) InviteMember(ctx context.Context, projectID uuid.UUID, email string) (*model.ProjectMember, error) {
	args := m.Called(ctx, projectID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProjectMember), args.Error(1)
}

func (m *mockProjectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

func (m *mockProjectService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMember), args.Error(1)
}

func projectAccessRouter(projects service.ProjectService, user *model.User) *gin.Engine {
	r := gin.New()
	r.GET("/projects/:project_id",
		func(c *gin.Context) { c.Set(ContextUser, user) },
		ProjectAccess(projects),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"project_id": MustProjectID(c)}) },
	)
	return r
}

func TestProjectAccess(t *testing.T) {
	user := &model.User{ID: uuid.New()}
	projectID := uuid.New()

	t.Run("malformed id answers 400 before any query", func(t *testing.T) {
		projects := new(mockProjectService)
		r := projectAccessRouter(projects, user)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/not-a-uuid", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		projects.AssertNotCalled(t, "HasAccess", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("denied membership answers 404 not 403", func(t *testing.T) {
		projects := new(mockProjectService)
		r := projectAccessRouter(projects, user)

		projects.On("HasAccess", mock.Anything, projectID, user.ID).Return(false, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("member passes through with scoped id", func(t *testing.T) {
		projects := new(mockProjectService)
		r := projectAccessRouter(projects, user)

		projects.On("HasAccess", mock.Anything, projectID, user.ID).Return(true, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String(), nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), projectID.String())
	})
}

func TestWidgetAuth(t *testing.T) {
	widgetRouter := func(projects service.ProjectService) *gin.Engine {
		r := gin.New()
		r.POST("/widget/reports", WidgetAuth(projects), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"project": MustProject(c).ID})
		})
		return r
	}

	t.Run("missing key", func(t *testing.T) {
		projects := new(mockProjectService)
		r := widgetRouter(projects)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/widget/reports", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown key", func(t *testing.T) {
		projects := new(mockProjectService)
		r := widgetRouter(projects)

		projects.On("GetByIntegrationKey", mock.Anything, "flp_bogus").Return(nil, service.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/widget/reports", nil)
		req.Header.Set("X-FeedLoop-Key", "flp_bogus")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid key attributes the project", func(t *testing.T) {
		projects := new(mockProjectService)
		r := widgetRouter(projects)

		project := &model.Project{ID: uuid.New(), Name: "Checkout Revamp"}
		projects.On("GetByIntegrationKey", mock.Anything, "flp_valid").Return(project, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/widget/reports", nil)
		req.Header.Set("X-FeedLoop-Key", "flp_valid")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), project.ID.String())
	})
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/auth/login",
		RateLimit(ratelimit.NewMemory(time.Minute, 2), zap.NewNop()),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}
