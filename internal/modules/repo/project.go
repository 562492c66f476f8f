package repo

import (
	"context"

	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepo interface {
	CreateWithOwner(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	GetByIntegrationKey(ctx context.Context, key string) (*model.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	HasAccess(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, m *model.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error)
	DeleteCascade(ctx context.Context, projectID uuid.UUID) (DeletedCounts, error)
	AttachmentKeys(ctx context.Context, projectID uuid.UUID) ([]string, error)
}

// DeletedCounts accounts per-table rows removed by a cascading project delete.
type DeletedCounts struct {
	Attachments int64 `json:"attachments"`
	Reports     int64 `json:"reports"`
	Members     int64 `json:"members"`
	ExportJobs  int64 `json:"export_jobs"`
	Projects    int64 `json:"projects"`
}

func (c DeletedCounts) Total() int64 {
	return c.Attachments + c.Reports + c.Members + c.ExportJobs + c.Projects
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

// CreateWithOwner inserts the project and its owner membership atomically.
func (r *projectRepo) CreateWithOwner(ctx context.Context, p *model.Project) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		member := model.ProjectMember{
			ProjectID: p.ID,
			UserID:    p.OwnerID,
			Role:      model.RoleOwner,
		}
		return tx.Create(&member).Error
	})
}

func (r *projectRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) GetByIntegrationKey(ctx context.Context, key string) (*model.Project, error) {
	var p model.Project
	if err := r.db.WithContext(ctx).Where("integration_key = ?", key).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *projectRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepo) HasAccess(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepo) AddMember(ctx context.Context, m *model.ProjectMember) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *projectRepo) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ? AND role <> ?", projectID, userID, model.RoleOwner).
		Delete(&model.ProjectMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepo) ListMembers(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error) {
	var members []model.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

// AttachmentKeys returns the storage keys of every attachment under the
// project, collected before a cascading delete so orphaned objects can be
// cleaned up afterwards.
func (r *projectRepo) AttachmentKeys(ctx context.Context, projectID uuid.UUID) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&model.Attachment{}).
		Joins("JOIN reports ON reports.id = attachments.report_id").
		Where("reports.project_id = ?", projectID).
		Pluck("attachments.s3_key", &keys).Error
	return keys, err
}

// DeleteCascade removes all project rows in dependency order inside one
// transaction: attachments, reports, export jobs, memberships, then the
// project itself. Either everything is deleted or nothing is.
func (r *projectRepo) DeleteCascade(ctx context.Context, projectID uuid.UUID) (DeletedCounts, error) {
	var counts DeletedCounts
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("report_id IN (?)",
			tx.Model(&model.Report{}).Select("id").Where("project_id = ?", projectID),
		).Delete(&model.Attachment{})
		if res.Error != nil {
			return res.Error
		}
		counts.Attachments = res.RowsAffected

		res = tx.Where("project_id = ?", projectID).Delete(&model.Report{})
		if res.Error != nil {
			return res.Error
		}
		counts.Reports = res.RowsAffected

		res = tx.Where("project_id = ?", projectID).Delete(&model.ExportJob{})
		if res.Error != nil {
			return res.Error
		}
		counts.ExportJobs = res.RowsAffected

		res = tx.Where("project_id = ?", projectID).Delete(&model.ProjectMember{})
		if res.Error != nil {
			return res.Error
		}
		counts.Members = res.RowsAffected

		res = tx.Where("id = ?", projectID).Delete(&model.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		counts.Projects = res.RowsAffected
		return nil
	})
	if err != nil {
		return DeletedCounts{}, err
	}
	return counts, nil
}
