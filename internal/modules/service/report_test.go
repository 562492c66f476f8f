package service

import (
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testPresignExpire() time.Duration { return 15 * time.Minute }

func newReportService(reports *mockReportRepo, users *mockUserRepo, store *mockFileStore) ReportService {
	return NewReportService(reports, users, store, zap.NewNop(), testPresignExpire)
}

func TestListReports(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("list items carry no status field", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		rows := []model.Report{
			{ID: uuid.New(), ProjectID: projectID, Title: "Broken login", Type: model.TypeBug, Status: model.StatusInProgress},
		}
		reports.On("List", ctx, projectID, model.ReportFilter{}, repo.ReportSort{}, 0, 20).
			Return(rows, int64(1), nil)
		reports.On("Aggregate", ctx, projectID, model.ReportFilter{}).
			Return(&repo.ReportAggregates{ByType: map[string]int64{"bug": 1}, ByPriority: map[string]int64{"none": 1}}, nil)

		out, err := svc.List(ctx, ListReportsInput{ProjectID: projectID})
		require.NoError(t, err)
		require.Len(t, out.Reports, 1)

		raw, err := sonic.Marshal(out.Reports[0])
		require.NoError(t, err)
		var asMap map[string]any
		require.NoError(t, sonic.Unmarshal(raw, &asMap))
		assert.NotContains(t, asMap, "status")
		assert.Equal(t, "Broken login", asMap["title"])
	})

	t.Run("defaults page and limit", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		reports.On("List", ctx, projectID, model.ReportFilter{}, repo.ReportSort{}, 0, 20).
			Return([]model.Report{}, int64(45), nil)
		reports.On("Aggregate", ctx, projectID, model.ReportFilter{}).
			Return(&repo.ReportAggregates{ByType: map[string]int64{}, ByPriority: map[string]int64{}}, nil)

		out, err := svc.List(ctx, ListReportsInput{ProjectID: projectID, Page: 0, Limit: -1})
		require.NoError(t, err)
		assert.Equal(t, 1, out.Pagination.Page)
		assert.Equal(t, 20, out.Pagination.Limit)
		assert.Equal(t, int64(45), out.Pagination.Total)
		assert.Equal(t, 3, out.Pagination.TotalPages)
		assert.True(t, out.Pagination.HasNext)
	})

	t.Run("invalid filter enums fail before querying", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		_, err := svc.List(ctx, ListReportsInput{
			ProjectID: projectID,
			Filter:    model.ReportFilter{Type: "complaint", Priority: "urgent"},
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Details, 2)
		reports.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("aggregates cover all matches not just the page", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		reports.On("List", ctx, projectID, model.ReportFilter{}, repo.ReportSort{}, 0, 1).
			Return([]model.Report{{ID: uuid.New(), ProjectID: projectID}}, int64(7), nil)
		reports.On("Aggregate", ctx, projectID, model.ReportFilter{}).
			Return(&repo.ReportAggregates{
				ByType:     map[string]int64{"bug": 5, "feature": 2},
				ByPriority: map[string]int64{"high": 3, "none": 4},
			}, nil)

		out, err := svc.List(ctx, ListReportsInput{ProjectID: projectID, Page: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(5), out.Metadata.ByType["bug"])
		assert.Equal(t, int64(4), out.Metadata.ByPriority["none"])
	})
}

func TestGetDetail(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	reportID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		reports.On("GetByID", ctx, projectID, reportID).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetDetail(ctx, projectID, reportID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("attachments get presigned urls and creator resolves", func(t *testing.T) {
		reports := new(mockReportRepo)
		users := new(mockUserRepo)
		store := new(mockFileStore)
		svc := newReportService(reports, users, store)

		creatorID := uuid.New()
		report := &model.Report{ID: reportID, ProjectID: projectID, Title: "Broken login", Status: model.StatusNew, CreatedBy: &creatorID}
		attachment := model.Attachment{ID: uuid.New(), ReportID: reportID, Filename: "shot.png", S3Key: "attachments/x/shot.png"}

		reports.On("GetByID", ctx, projectID, reportID).Return(report, nil)
		reports.On("Attachments", ctx, reportID).Return([]model.Attachment{attachment}, nil)
		store.On("PresignGet", ctx, attachment.S3Key, testPresignExpire()).Return("https://signed.example/shot.png", nil)
		users.On("GetByID", ctx, creatorID).Return(&model.User{ID: creatorID, Email: "dana@example.com", FirstName: "Dana", LastName: "Smith"}, nil)

		detail, err := svc.GetDetail(ctx, projectID, reportID)
		require.NoError(t, err)
		require.Len(t, detail.FlAttachments, 1)
		assert.Equal(t, "https://signed.example/shot.png", detail.FlAttachments[0].FileURL)
		require.NotNil(t, detail.Creator)
		assert.Equal(t, "Dana Smith", detail.Creator.Name)
		assert.Equal(t, model.StatusNew, detail.Status)
	})

	t.Run("creator nil when lookup fails", func(t *testing.T) {
		reports := new(mockReportRepo)
		users := new(mockUserRepo)
		svc := newReportService(reports, users, new(mockFileStore))

		creatorID := uuid.New()
		report := &model.Report{ID: reportID, ProjectID: projectID, CreatedBy: &creatorID}

		reports.On("GetByID", ctx, projectID, reportID).Return(report, nil)
		reports.On("Attachments", ctx, reportID).Return([]model.Attachment{}, nil)
		users.On("GetByID", ctx, creatorID).Return(nil, gorm.ErrRecordNotFound)

		detail, err := svc.GetDetail(ctx, projectID, reportID)
		require.NoError(t, err)
		assert.Nil(t, detail.Creator)
	})
}

func strptr(s string) *string { return &s }

func TestUpdateReport(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()
	reportID := uuid.New()

	t.Run("empty update is rejected", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		_, err := svc.Update(ctx, projectID, reportID, UpdateReportInput{})
		assert.ErrorIs(t, err, ErrEmptyUpdate)
		reports.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid enum values collect field details", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		_, err := svc.Update(ctx, projectID, reportID, UpdateReportInput{
			Status:   strptr("done"),
			Priority: strptr("urgent"),
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Details, 2)
	})

	t.Run("report from another project is not found", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		reports.On("UpdateFields", ctx, projectID, reportID, mock.Anything).Return(gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, projectID, reportID, UpdateReportInput{Status: strptr("resolved")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("valid update writes trimmed fields and re-fetches", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		reports.On("UpdateFields", ctx, projectID, reportID, map[string]any{
			"title":  "New title",
			"status": "resolved",
		}).Return(nil)
		reports.On("GetByID", ctx, projectID, reportID).
			Return(&model.Report{ID: reportID, ProjectID: projectID, Title: "New title", Status: model.StatusResolved}, nil)
		reports.On("Attachments", ctx, reportID).Return([]model.Attachment{}, nil)

		detail, err := svc.Update(ctx, projectID, reportID, UpdateReportInput{
			Title:  strptr("  New title  "),
			Status: strptr("resolved"),
		})
		require.NoError(t, err)
		assert.Equal(t, model.StatusResolved, detail.Status)
		reports.AssertExpectations(t)
	})
}

func TestSubmitWidget(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	base := WidgetSubmission{
		ProjectID:   projectID,
		Title:       "Broken login",
		Description: "Clicking login does nothing",
		Type:        "bug",
	}

	t.Run("stores report with captured diagnostics", func(t *testing.T) {
		reports := new(mockReportRepo)
		svc := newReportService(reports, new(mockUserRepo), new(mockFileStore))

		in := base
		in.ConsoleLogs = []model.ConsoleLog{{Type: "error", Message: "boom", Timestamp: "2026-03-14T09:26:50Z"}}

		reports.On("CreateWithAttachments", ctx, mock.AnythingOfType("*model.Report"), []model.Attachment{}).
			Run(func(args mock.Arguments) {
				rep := args.Get(1).(*model.Report)
				assert.Equal(t, model.StatusNew, rep.Status)
				assert.Len(t, rep.ConsoleLogs.Data(), 1)
			}).Return(nil)

		_, err := svc.SubmitWidget(ctx, in)
		require.NoError(t, err)
		reports.AssertExpectations(t)
	})

	t.Run("too many files", func(t *testing.T) {
		svc := newReportService(new(mockReportRepo), new(mockUserRepo), new(mockFileStore))

		in := base
		for i := 0; i < 6; i++ {
			in.Files = append(in.Files, &multipart.FileHeader{Filename: "f.png", Size: 100})
		}

		_, err := svc.SubmitWidget(ctx, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "files", verr.Details[0].Field)
	})

	t.Run("oversized file", func(t *testing.T) {
		svc := newReportService(new(mockReportRepo), new(mockUserRepo), new(mockFileStore))

		in := base
		in.Files = []*multipart.FileHeader{{Filename: "huge.mov", Size: 11 << 20}}

		_, err := svc.SubmitWidget(ctx, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Details[0].Message, "10MB")
	})

	t.Run("invalid type", func(t *testing.T) {
		svc := newReportService(new(mockReportRepo), new(mockUserRepo), new(mockFileStore))

		in := base
		in.Type = "complaint"

		_, err := svc.SubmitWidget(ctx, in)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})
}
