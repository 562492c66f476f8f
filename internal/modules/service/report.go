package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/feedloop/feedloop/internal/infra/blob"
	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/feedloop/feedloop/internal/modules/repo"
	"github.com/feedloop/feedloop/internal/pkg/paging"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FileStore is the slice of blob.S3Deps the report pipeline needs; narrowed
// to an interface so tests can mock storage.
type FileStore interface {
	UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

type ReportService interface {
	List(ctx context.Context, in ListReportsInput) (*ListReportsOutput, error)
	GetDetail(ctx context.Context, projectID, reportID uuid.UUID) (*ReportDetail, error)
	Update(ctx context.Context, projectID, reportID uuid.UUID, in UpdateReportInput) (*ReportDetail, error)
	Create(ctx context.Context, in CreateReportInput) (*model.Report, error)
	SubmitWidget(ctx context.Context, in WidgetSubmission) (*model.Report, error)
}

type reportService struct {
	reports       repo.ReportRepo
	users         repo.UserRepo
	store         FileStore
	log           *zap.Logger
	presignExpire func() time.Duration
}

func NewReportService(reports repo.ReportRepo, users repo.UserRepo, store FileStore, log *zap.Logger, presignExpire func() time.Duration) ReportService {
	return &reportService{
		reports:       reports,
		users:         users,
		store:         store,
		log:           log,
		presignExpire: presignExpire,
	}
}

type ListReportsInput struct {
	ProjectID uuid.UUID
	Filter    model.ReportFilter
	Sort      repo.ReportSort
	Page      int
	Limit     int
}

// ReportListItem is the list-view projection. It deliberately carries no
// status field; only the detail view exposes status.
type ReportListItem struct {
	ID            uuid.UUID             `json:"id"`
	ProjectID     uuid.UUID             `json:"project_id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Type          model.ReportType      `json:"type"`
	Priority      *model.ReportPriority `json:"priority"`
	ReporterName  string                `json:"reporter_name"`
	ReporterEmail string                `json:"reporter_email"`
	PageURL       string                `json:"page_url"`
	CreatedBy     *uuid.UUID            `json:"created_by"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

type ListReportsOutput struct {
	Reports    []ReportListItem      `json:"reports"`
	Pagination paging.Pagination     `json:"pagination"`
	Metadata   repo.ReportAggregates `json:"metadata"`
}

func (s *reportService) List(ctx context.Context, in ListReportsInput) (*ListReportsOutput, error) {
	verr := &ValidationError{}
	if in.Filter.Type != "" && !model.ValidType(in.Filter.Type) {
		verr.add("filter.type", "must be one of: bug feature feedback")
	}
	if in.Filter.Priority != "" && !model.ValidPriority(in.Filter.Priority) {
		verr.add("filter.priority", "must be one of: low medium high critical")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 {
		in.Limit = 20
	}

	offset := (in.Page - 1) * in.Limit
	reports, total, err := s.reports.List(ctx, in.ProjectID, in.Filter, in.Sort, offset, in.Limit)
	if err != nil {
		return nil, err
	}

	agg, err := s.reports.Aggregate(ctx, in.ProjectID, in.Filter)
	if err != nil {
		return nil, err
	}

	items := make([]ReportListItem, 0, len(reports))
	for i := range reports {
		r := &reports[i]
		items = append(items, ReportListItem{
			ID:            r.ID,
			ProjectID:     r.ProjectID,
			Title:         r.Title,
			Description:   r.Description,
			Type:          r.Type,
			Priority:      r.Priority,
			ReporterName:  r.ReporterName,
			ReporterEmail: r.ReporterEmail,
			PageURL:       r.PageURL,
			CreatedBy:     r.CreatedBy,
			CreatedAt:     r.CreatedAt,
			UpdatedAt:     r.UpdatedAt,
		})
	}

	return &ListReportsOutput{
		Reports:    items,
		Pagination: paging.New(in.Page, in.Limit, total),
		Metadata:   *agg,
	}, nil
}

// Creator is the resolved display identity of the dashboard user who created
// a report; nil when the report came from the widget or resolution failed.
type Creator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AttachmentView struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportDetail joins the report row with its attachments and creator identity.
type ReportDetail struct {
	model.Report
	FlAttachments []AttachmentView `json:"fl_attachments"`
	Creator       *Creator         `json:"creator"`
}

func (s *reportService) GetDetail(ctx context.Context, projectID, reportID uuid.UUID) (*ReportDetail, error) {
	report, err := s.reports.GetByID(ctx, projectID, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.assemble(ctx, report)
}

// assemble builds the composite detail view: attachments ordered by creation
// time with fresh presigned URLs, plus resolved creator identity.
func (s *reportService) assemble(ctx context.Context, report *model.Report) (*ReportDetail, error) {
	attachments, err := s.reports.Attachments(ctx, report.ID)
	if err != nil {
		return nil, err
	}

	views := make([]AttachmentView, 0, len(attachments))
	for _, a := range attachments {
		url := a.FileURL
		if s.store != nil && a.S3Key != "" {
			if signed, err := s.store.PresignGet(ctx, a.S3Key, s.presignExpire()); err == nil {
				url = signed
			} else {
				s.log.Sugar().Warnw("presign attachment failed", "attachment", a.ID, "err", err)
			}
		}
		views = append(views, AttachmentView{
			ID:        a.ID,
			Filename:  a.Filename,
			FileSize:  a.FileSize,
			MimeType:  a.MimeType,
			FileURL:   url,
			CreatedAt: a.CreatedAt,
		})
	}

	var creator *Creator
	if report.CreatedBy != nil {
		if user, err := s.users.GetByID(ctx, *report.CreatedBy); err == nil {
			creator = &Creator{Name: user.DisplayName(), Email: user.Email}
		}
	}

	return &ReportDetail{
		Report:        *report,
		FlAttachments: views,
		Creator:       creator,
	}, nil
}

// UpdateReportInput is a partial update; nil means "leave unchanged".
type UpdateReportInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Type        *string `json:"type"`
}

func (in UpdateReportInput) empty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Priority == nil && in.Type == nil
}

func (s *reportService) Update(ctx context.Context, projectID, reportID uuid.UUID, in UpdateReportInput) (*ReportDetail, error) {
	if in.empty() {
		return nil, ErrEmptyUpdate
	}

	verr := &ValidationError{}
	fields := map[string]any{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if len(title) < 1 || len(title) > 200 {
			verr.add("title", "must be between 1 and 200 characters")
		} else {
			fields["title"] = title
		}
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if len(desc) < 1 || len(desc) > 10000 {
			verr.add("description", "must be between 1 and 10000 characters")
		} else {
			fields["description"] = desc
		}
	}
	if in.Status != nil {
		if !model.ValidStatus(*in.Status) {
			verr.add("status", "must be one of: new in_progress resolved closed")
		} else {
			fields["status"] = *in.Status
		}
	}
	if in.Priority != nil {
		if !model.ValidPriority(*in.Priority) {
			verr.add("priority", "must be one of: low medium high critical")
		} else {
			fields["priority"] = *in.Priority
		}
	}
	if in.Type != nil {
		if !model.ValidType(*in.Type) {
			verr.add("type", "must be one of: bug feature feedback")
		} else {
			fields["type"] = *in.Type
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if err := s.reports.UpdateFields(ctx, projectID, reportID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Re-fetch after the write so the response is a consistent composite view.
	return s.GetDetail(ctx, projectID, reportID)
}

type CreateReportInput struct {
	ProjectID   uuid.UUID
	Title       string
	Description string
	Type        string
	Priority    *string
	CreatedBy   uuid.UUID
}

func (s *reportService) Create(ctx context.Context, in CreateReportInput) (*model.Report, error) {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if len(title) < 1 || len(title) > 200 {
		verr.add("title", "must be between 1 and 200 characters")
	}
	if len(desc) < 1 || len(desc) > 10000 {
		verr.add("description", "must be between 1 and 10000 characters")
	}
	if !model.ValidType(in.Type) {
		verr.add("type", "must be one of: bug feature feedback")
	}
	if in.Priority != nil && !model.ValidPriority(*in.Priority) {
		verr.add("priority", "must be one of: low medium high critical")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	createdBy := in.CreatedBy
	report := &model.Report{
		ProjectID:   in.ProjectID,
		Title:       title,
		Description: desc,
		Type:        model.ReportType(in.Type),
		Status:      model.StatusNew,
		CreatedBy:   &createdBy,
	}
	if in.Priority != nil {
		p := model.ReportPriority(*in.Priority)
		report.Priority = &p
	}

	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// WidgetSubmission is an unauthenticated report submitted through the
// embeddable widget, already attributed to a project via its integration key.
type WidgetSubmission struct {
	ProjectID       uuid.UUID
	Title           string
	Description     string
	Type            string
	Priority        *string
	ReporterName    string
	ReporterEmail   string
	BrowserInfo     string
	PageURL         string
	ConsoleLogs     []model.ConsoleLog
	NetworkRequests []model.NetworkRequest
	Files           []*multipart.FileHeader
}

const (
	maxWidgetFiles    = 5
	maxWidgetFileSize = 10 << 20 // 10MB
)

func (s *reportService) SubmitWidget(ctx context.Context, in WidgetSubmission) (*model.Report, error) {
	verr := &ValidationError{}
	title := strings.TrimSpace(in.Title)
	desc := strings.TrimSpace(in.Description)
	if len(title) < 1 || len(title) > 200 {
		verr.add("title", "must be between 1 and 200 characters")
	}
	if len(desc) < 1 || len(desc) > 10000 {
		verr.add("description", "must be between 1 and 10000 characters")
	}
	if !model.ValidType(in.Type) {
		verr.add("type", "must be one of: bug feature feedback")
	}
	if in.Priority != nil && !model.ValidPriority(*in.Priority) {
		verr.add("priority", "must be one of: low medium high critical")
	}
	if len(in.Files) > maxWidgetFiles {
		verr.add("files", "at most 5 attachments per report")
	}
	for _, fh := range in.Files {
		if fh.Size > maxWidgetFileSize {
			verr.add("files", fh.Filename+" exceeds the 10MB limit")
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	attachments := make([]model.Attachment, 0, len(in.Files))
	for _, fh := range in.Files {
		meta, err := s.store.UploadFormFile(ctx, "attachments/"+in.ProjectID.String(), fh)
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, model.Attachment{
			Filename: fh.Filename,
			FileSize: meta.SizeB,
			MimeType: meta.MIME,
			S3Key:    meta.Key,
		})
	}

	report := &model.Report{
		ProjectID:       in.ProjectID,
		Title:           title,
		Description:     desc,
		Type:            model.ReportType(in.Type),
		Status:          model.StatusNew,
		ReporterName:    strings.TrimSpace(in.ReporterName),
		ReporterEmail:   strings.TrimSpace(in.ReporterEmail),
		BrowserInfo:     in.BrowserInfo,
		PageURL:         in.PageURL,
		ConsoleLogs:     datatypes.NewJSONType(in.ConsoleLogs),
		NetworkRequests: datatypes.NewJSONType(in.NetworkRequests),
	}
	if in.Priority != nil {
		p := model.ReportPriority(*in.Priority)
		report.Priority = &p
	}

	if err := s.reports.CreateWithAttachments(ctx, report, attachments); err != nil {
		return nil, err
	}
	return report, nil
}
