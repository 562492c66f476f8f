package repo

import (
	"context"

	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExportRepo interface {
	Create(ctx context.Context, job *model.ExportJob) error
	Get(ctx context.Context, projectID, jobID uuid.UUID) (*model.ExportJob, error)
	GetByID(ctx context.Context, jobID uuid.UUID) (*model.ExportJob, error)
	SetProgress(ctx context.Context, jobID uuid.UUID, status model.ExportStatus, progress int) error
	MarkSuccess(ctx context.Context, jobID uuid.UUID, s3Key, downloadURL string) error
	MarkError(ctx context.Context, jobID uuid.UUID, message string) error
}

type exportRepo struct{ db *gorm.DB }

func NewExportRepo(db *gorm.DB) ExportRepo {
	return &exportRepo{db: db}
}

func (r *exportRepo) Create(ctx context.Context, job *model.ExportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *exportRepo) Get(ctx context.Context, projectID, jobID uuid.UUID) (*model.ExportJob, error) {
	var job model.ExportJob
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", jobID, projectID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *exportRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*model.ExportJob, error) {
	var job model.ExportJob
	if err := r.db.WithContext(ctx).Where("id = ?", jobID).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *exportRepo) SetProgress(ctx context.Context, jobID uuid.UUID, status model.ExportStatus, progress int) error {
	return r.db.WithContext(ctx).Model(&model.ExportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{"status": status, "progress": progress}).Error
}

// MarkSuccess records the finished artifact. The download reference only
// becomes retrievable here; a failed job never exposes a partial file.
func (r *exportRepo) MarkSuccess(ctx context.Context, jobID uuid.UUID, s3Key, downloadURL string) error {
	return r.db.WithContext(ctx).Model(&model.ExportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":       model.ExportSuccess,
			"progress":     100,
			"s3_key":       s3Key,
			"download_url": downloadURL,
		}).Error
}

func (r *exportRepo) MarkError(ctx context.Context, jobID uuid.UUID, message string) error {
	return r.db.WithContext(ctx).Model(&model.ExportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":        model.ExportError,
			"error_message": message,
			"download_url":  "",
			"s3_key":        "",
		}).Error
}
