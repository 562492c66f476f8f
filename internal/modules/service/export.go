package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/feedloop/feedloop/internal/config"
	"github.com/feedloop/feedloop/internal/infra/blob"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/feedloop/feedloop/internal/pkg/export"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobPublisher enqueues export jobs for the worker.
type JobPublisher interface {
	PublishJSON(ctx context.Context, v any) error
}

// ExportStore is the storage slice the export pipeline needs.
type ExportStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

// ExportJobMessage is the queue payload; the worker re-reads the job row so
// the message only needs the id.
type ExportJobMessage struct {
	JobID uuid.UUID `json:"job_id"`
}

type ExportService interface {
	CreateJob(ctx context.Context, in CreateExportInput) (*model.ExportJob, error)
	GetJob(ctx context.Context, projectID, jobID uuid.UUID) (*model.ExportJob, error)
	Process(ctx context.Context, jobID uuid.UUID) error
}

type CreateExportInput struct {
	ProjectID     uuid.UUID
	RequestedBy   uuid.UUID
	ReportIDs     []uuid.UUID
	Filter        *model.ReportFilter
	Format        string
	Template      string
	IncludeFields model.IncludeFields
}

type exportService struct {
	jobs      repo.ExportRepo
	reports   repo.ReportRepo
	store     ExportStore
	publisher JobPublisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewExportService(jobs repo.ExportRepo, reports repo.ReportRepo, store ExportStore, publisher JobPublisher, cfg *config.Config, log *zap.Logger) ExportService {
	return &exportService{
		jobs:      jobs,
		reports:   reports,
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

func validFormat(s string) bool {
	switch model.ExportFormat(s) {
	case model.FormatCSV, model.FormatJSON, model.FormatXLSX:
		return true
	}
	return false
}

func validTemplate(s string) bool {
	switch model.ExportTemplate(s) {
	case model.TemplateDefault, model.TemplateJira, model.TemplateAzureDevOps, "":
		return true
	}
	return false
}

func (s *exportService) CreateJob(ctx context.Context, in CreateExportInput) (*model.ExportJob, error) {
	verr := &ValidationError{}
	if !validFormat(in.Format) {
		verr.add("format", "must be one of: csv json xlsx")
	}
	if !validTemplate(in.Template) {
		verr.add("template", "must be one of: default jira azure_devops")
	}
	if !in.IncludeFields.Any() {
		verr.add("include_fields", "at least one field must be selected")
	}
	if len(in.ReportIDs) == 0 && in.Filter == nil {
		verr.add("report_ids", "either report_ids or filter must be provided")
	}
	if in.Filter != nil {
		if in.Filter.Type != "" && !model.ValidType(in.Filter.Type) {
			verr.add("filter.type", "must be one of: bug feature feedback")
		}
		if in.Filter.Priority != "" && !model.ValidPriority(in.Filter.Priority) {
			verr.add("filter.priority", "must be one of: low medium high critical")
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	tpl := model.ExportTemplate(in.Template)
	if tpl == "" {
		tpl = model.TemplateDefault
	}

	job := &model.ExportJob{
		ProjectID:     in.ProjectID,
		RequestedBy:   in.RequestedBy,
		Format:        model.ExportFormat(in.Format),
		Template:      tpl,
		IncludeFields: datatypes.NewJSONType(in.IncludeFields),
		ReportIDs:     datatypes.NewJSONType(in.ReportIDs),
		Filter:        datatypes.NewJSONType(in.Filter),
		Status:        model.ExportQueued,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	if err := s.publisher.PublishJSON(ctx, ExportJobMessage{JobID: job.ID}); err != nil {
		// The job row exists but will never run; fail it so the client sees a
		// terminal state instead of a job stuck at queued.
		_ = s.jobs.MarkError(ctx, job.ID, "failed to enqueue export job")
		return nil, fmt.Errorf("publish export job: %w", err)
	}

	return job, nil
}

func (s *exportService) GetJob(ctx context.Context, projectID, jobID uuid.UUID) (*model.ExportJob, error) {
	job, err := s.jobs.Get(ctx, projectID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// Process runs one export job end to end: resolve the selection, render,
// upload, presign. Explicit ids take precedence over a filter; a filter-based
// selection is re-evaluated here so stale client-side id lists never leak
// into the document.
func (s *exportService) Process(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load export job %s: %w", jobID, err)
	}

	fail := func(stage string, err error) error {
		s.log.Sugar().Errorw("export job failed", "job", jobID, "stage", stage, "err", err)
		_ = s.jobs.MarkError(ctx, jobID, "export failed during "+stage)
		return err
	}

	if err := s.jobs.SetProgress(ctx, jobID, model.ExportExporting, 10); err != nil {
		return fail("start", err)
	}

	var reports []model.Report
	if ids := job.ReportIDs.Data(); len(ids) > 0 {
		if len(ids) > s.cfg.Export.MaxReports {
			return fail("resolve", fmt.Errorf("selection exceeds %d reports", s.cfg.Export.MaxReports))
		}
		reports, err = s.reports.ListByIDs(ctx, job.ProjectID, ids)
	} else {
		var filter model.ReportFilter
		if f := job.Filter.Data(); f != nil {
			filter = *f
		}
		sort := repo.ReportSort{Column: "created_at", Desc: true}
		reports, _, err = s.reports.List(ctx, job.ProjectID, filter, sort, 0, s.cfg.Export.MaxReports)
	}
	if err != nil {
		return fail("resolve", err)
	}

	if err := s.jobs.SetProgress(ctx, jobID, model.ExportExporting, 40); err != nil {
		return fail("render", err)
	}

	data, contentType, ext, err := export.Render(reports, export.Options{
		Format:   job.Format,
		Template: job.Template,
		Fields:   job.IncludeFields.Data(),
	})
	if err != nil {
		return fail("render", err)
	}

	if err := s.jobs.SetProgress(ctx, jobID, model.ExportExporting, 80); err != nil {
		return fail("upload", err)
	}

	key := fmt.Sprintf("%s/%s/%s.%s", s.cfg.Export.KeyPrefix, job.ProjectID, job.ID, ext)
	if _, err := s.store.UploadBytes(ctx, key, contentType, data); err != nil {
		return fail("upload", err)
	}

	expire := time.Duration(s.cfg.S3.PresignExpireSec) * time.Second
	if expire <= 0 {
		expire = 15 * time.Minute
	}
	url, err := s.store.PresignGet(ctx, key, expire)
	if err != nil {
		return fail("presign", err)
	}

	if err := s.jobs.MarkSuccess(ctx, jobID, key, url); err != nil {
		return fail("finish", err)
	}

	s.log.Sugar().Infow("export job finished", "job", jobID, "reports", len(reports), "bytes", len(data))
	return nil
}
