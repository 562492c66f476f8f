package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DeletionStatus string

const (
	DeletionCompleted DeletionStatus = "completed"
	DeletionPartial   DeletionStatus = "partial"
	DeletionFailed    DeletionStatus = "failed"
)

// StorageFailure records one storage object that could not be removed, so an
// operator can reconcile orphans later.
type StorageFailure struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// DeletionResult is the composite outcome of a cascading project delete.
// Database deletion is all-or-nothing; storage cleanup failures are non-fatal
// but always surfaced.
type DeletionResult struct {
	ProjectID              uuid.UUID          `json:"project_id"`
	InitiatedBy            uuid.UUID          `json:"initiated_by"`
	InitiatedAt            time.Time          `json:"initiated_at"`
	CompletedAt            *time.Time         `json:"completed_at,omitempty"`
	Status                 DeletionStatus     `json:"status"`
	DatabaseRecordsDeleted repo.DeletedCounts `json:"database_records_deleted"`
	StorageFilesDeleted    int                `json:"storage_files_deleted"`
	StorageCleanupFailures []StorageFailure   `json:"storage_cleanup_failures"`
	ErrorDetails           string             `json:"error_details,omitempty"`
}

// ObjectDeleter is the storage slice the workflow needs.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, key string) error
}

type DeletionService interface {
	Delete(ctx context.Context, projectID, initiatedBy uuid.UUID, in DeleteProjectInput) (*DeletionResult, error)
}

type DeleteProjectInput struct {
	ConfirmationText       string
	UnderstoodConsequences bool
	DeletionReason         string
}

type deletionService struct {
	projects repo.ProjectRepo
	store    ObjectDeleter
	log      *zap.Logger
}

func NewDeletionService(projects repo.ProjectRepo, store ObjectDeleter, log *zap.Logger) DeletionService {
	return &deletionService{projects: projects, store: store, log: log}
}

// Delete runs the ordered cascading cleanup: confirm, collect storage keys,
// delete database rows transactionally, then delete storage objects one by
// one. The returned result distinguishes completed, partial, and failed.
func (s *deletionService) Delete(ctx context.Context, projectID, initiatedBy uuid.UUID, in DeleteProjectInput) (*DeletionResult, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	verr := &ValidationError{}
	if !in.UnderstoodConsequences {
		verr.add("understood_consequences", "must be true")
	}
	// Exact match after trimming; case matters.
	if strings.TrimSpace(in.ConfirmationText) != project.Name {
		verr.add("confirmation_text", "must match the project name exactly")
	}
	if len(in.DeletionReason) > 500 {
		verr.add("deletion_reason", "must be at most 500 characters")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	result := &DeletionResult{
		ProjectID:              projectID,
		InitiatedBy:            initiatedBy,
		InitiatedAt:            time.Now(),
		StorageCleanupFailures: []StorageFailure{},
	}

	// Storage keys must be collected before the rows referencing them go away.
	keys, err := s.projects.AttachmentKeys(ctx, projectID)
	if err != nil {
		result.Status = DeletionFailed
		result.ErrorDetails = "collect attachment keys: " + err.Error()
		return result, nil
	}

	counts, err := s.projects.DeleteCascade(ctx, projectID)
	if err != nil {
		s.log.Sugar().Errorw("project delete failed", "project", projectID, "err", err)
		result.Status = DeletionFailed
		result.ErrorDetails = "database deletion failed"
		return result, nil
	}
	result.DatabaseRecordsDeleted = counts

	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := s.store.DeleteObject(ctx, key); err != nil {
			s.log.Sugar().Warnw("storage cleanup failed", "key", key, "err", err)
			result.StorageCleanupFailures = append(result.StorageCleanupFailures, StorageFailure{
				Key:   key,
				Error: err.Error(),
			})
			continue
		}
		result.StorageFilesDeleted++
	}

	now := time.Now()
	result.CompletedAt = &now
	if len(result.StorageCleanupFailures) > 0 {
		result.Status = DeletionPartial
	} else {
		result.Status = DeletionCompleted
	}
	return result, nil
}
