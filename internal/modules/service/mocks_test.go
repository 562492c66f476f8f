package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/feedloop/feedloop/internal/infra/blob"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockProjectRepo struct{ mock.Mock }

func (m *mockProjectRepo) CreateWithOwner(ctx context.Context, p *model.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectRepo) GetByIntegrationKey(ctx context.Context, key string) (*model.Project, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *mockProjectRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *mockProjectRepo) HasAccess(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockProjectRepo) AddMember(ctx context.Context, member *model.ProjectMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockProjectRepo) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return m.Called(ctx, projectID, userID).Error(0)
}

func (m *mockProjectRepo) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProjectMember), args.Error(1)
}

func (m *mockProjectRepo) DeleteCascade(ctx context.Context, projectID uuid.UUID) (repo.DeletedCounts, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(repo.DeletedCounts), args.Error(1)
}

func (m *mockProjectRepo) AttachmentKeys(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockReportRepo struct{ mock.Mock }

func (m *mockReportRepo) Create(ctx context.Context, rep *model.Report) error {
	return m.Called(ctx, rep).Error(0)
}

func (m *mockReportRepo) CreateWithAttachments(ctx context.Context, rep *model.Report, attachments []model.Attachment) error {
	return m.Called(ctx, rep, attachments).Error(0)
}

func (m *mockReportRepo) GetByID(ctx context.Context, projectID, reportID uuid.UUID) (*model.Report, error) {
	args := m.Called(ctx, projectID, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Report), args.Error(1)
}

func (m *mockReportRepo) UpdateFields(ctx context.Context, projectID, reportID uuid.UUID, fields map[string]any) error {
	return m.Called(ctx, projectID, reportID, fields).Error(0)
}

func (m *mockReportRepo) List(ctx context.Context, projectID uuid.UUID, f model.ReportFilter, sort repo.ReportSort, offset, limit int) ([]model.Report, int64, error) {
	args := m.Called(ctx, projectID, f, sort, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Report), args.Get(1).(int64), args.Error(2)
}

func (m *mockReportRepo) ListByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]model.Report, error) {
	args := m.Called(ctx, projectID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Report), args.Error(1)
}

func (m *mockReportRepo) Aggregate(ctx context.Context, projectID uuid.UUID, f model.ReportFilter) (*repo.ReportAggregates, error) {
	args := m.Called(ctx, projectID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repo.ReportAggregates), args.Error(1)
}

func (m *mockReportRepo) Attachments(ctx context.Context, reportID uuid.UUID) ([]model.Attachment, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Attachment), args.Error(1)
}

type mockExportRepo struct{ mock.Mock }

func (m *mockExportRepo) Create(ctx context.Context, job *model.ExportJob) error {
	return m.Called(ctx, job).Error(0)
}

func (m *mockExportRepo) Get(ctx context.Context, projectID, jobID uuid.UUID) (*model.ExportJob, error) {
	args := m.Called(ctx, projectID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportJob), args.Error(1)
}

func (m *mockExportRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*model.ExportJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExportJob), args.Error(1)
}

func (m *mockExportRepo) SetProgress(ctx context.Context, jobID uuid.UUID, status model.ExportStatus, progress int) error {
	return m.Called(ctx, jobID, status, progress).Error(0)
}

func (m *mockExportRepo) MarkSuccess(ctx context.Context, jobID uuid.UUID, s3Key, downloadURL string) error {
	return m.Called(ctx, jobID, s3Key, downloadURL).Error(0)
}

func (m *mockExportRepo) MarkError(ctx context.Context, jobID uuid.UUID, message string) error {
	return m.Called(ctx, jobID, message).Error(0)
}

type mockFileStore struct{ mock.Mock }

func (m *mockFileStore) UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, keyPrefix, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *mockFileStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

type mockObjectDeleter struct{ mock.Mock }

func (m *mockObjectDeleter) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockExportStore struct{ mock.Mock }

func (m *mockExportStore) UploadBytes(ctx context.Context, key, contentType string, data []byte) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, key, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *mockExportStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishJSON(ctx context.Context, v any) error {
	return m.Called(ctx, v).Error(0)
}
