package repo

import (
	"context"
	"time"

	"github.com/feedloop/feedloop/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportSort is a whitelisted sort request. Unknown columns fall back to
// created_at; id always breaks ties so pagination stays stable across pages.
type ReportSort struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

var sortColumns = map[string]string{
	"title":         "title",
	"type":          "type",
	"priority":      "priority",
	"created_at":    "created_at",
	"reporter_name": "reporter_name",
}

// TypeCounts / PriorityCounts aggregate all matching reports, not just the
// current page. The "none" bucket counts reports with no priority set.
type ReportAggregates struct {
	ByType     map[string]int64 `json:"by_type"`
	ByPriority map[string]int64 `json:"by_priority"`
}

type ReportRepo interface {
	Create(ctx context.Context, rep *model.Report) error
	CreateWithAttachments(ctx context.Context, rep *model.Report, attachments []model.Attachment) error
	GetByID(ctx context.Context, projectID, reportID uuid.UUID) (*model.Report, error)
	UpdateFields(ctx context.Context, projectID, reportID uuid.UUID, fields map[string]any) error
	List(ctx context.Context, projectID uuid.UUID, f model.ReportFilter, sort ReportSort, offset, limit int) ([]model.Report, int64, error)
	ListByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]model.Report, error)
	Aggregate(ctx context.Context, projectID uuid.UUID, f model.ReportFilter) (*ReportAggregates, error)
	Attachments(ctx context.Context, reportID uuid.UUID) ([]model.Attachment, error)
}

type reportRepo struct{ db *gorm.DB }

func NewReportRepo(db *gorm.DB) ReportRepo {
	return &reportRepo{db: db}
}

func (r *reportRepo) Create(ctx context.Context, rep *model.Report) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *reportRepo) CreateWithAttachments(ctx context.Context, rep *model.Report, attachments []model.Attachment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rep).Error; err != nil {
			return err
		}
		for i := range attachments {
			attachments[i].ReportID = rep.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID scopes by both report and project id so a valid report id from
// another project resolves to not-found.
func (r *reportRepo) GetByID(ctx context.Context, projectID, reportID uuid.UUID) (*model.Report, error) {
	var rep model.Report
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", reportID, projectID).
		First(&rep).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}

// UpdateFields applies a partial update. updated_at is always bumped
// server-side regardless of which fields changed.
func (r *reportRepo) UpdateFields(ctx context.Context, projectID, reportID uuid.UUID, fields map[string]any) error {
	fields["updated_at"] = time.Now()
	res := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("id = ? AND project_id = ?", reportID, projectID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// applyFilter translates the filter into conjunctive predicates. Title is a
// case-insensitive substring match; the date range is inclusive on both bounds.
func applyFilter(q *gorm.DB, f model.ReportFilter) *gorm.DB {
	if f.Title != "" {
		q = q.Where("title ILIKE ?", "%"+f.Title+"%")
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Reporter != "" {
		q = q.Where("(reporter_name ILIKE ? OR reporter_email ILIKE ?)", "%"+f.Reporter+"%", "%"+f.Reporter+"%")
	}
	if f.DateFrom != nil {
		q = q.Where("created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("created_at <= ?", *f.DateTo)
	}
	return q
}

func (r *reportRepo) List(ctx context.Context, projectID uuid.UUID, f model.ReportFilter, sort ReportSort, offset, limit int) ([]model.Report, int64, error) {
	base := applyFilter(r.db.WithContext(ctx).Model(&model.Report{}).Where("project_id = ?", projectID), f)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[sort.Column]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if sort.Desc {
		dir = "DESC"
	}

	var reports []model.Report
	err := base.
		Order(col + " " + dir + ", id " + dir).
		Offset(offset).Limit(limit).
		Find(&reports).Error
	return reports, total, err
}

func (r *reportRepo) ListByIDs(ctx context.Context, projectID uuid.UUID, ids []uuid.UUID) ([]model.Report, error) {
	var reports []model.Report
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepo) Aggregate(ctx context.Context, projectID uuid.UUID, f model.ReportFilter) (*ReportAggregates, error) {
	agg := &ReportAggregates{
		ByType:     map[string]int64{},
		ByPriority: map[string]int64{},
	}

	type bucket struct {
		Key   *string
		Count int64
	}

	var typeRows []bucket
	q := applyFilter(r.db.WithContext(ctx).Model(&model.Report{}).Where("project_id = ?", projectID), f)
	if err := q.Select("type AS key, COUNT(*) AS count").Group("type").Scan(&typeRows).Error; err != nil {
		return nil, err
	}
	for _, row := range typeRows {
		if row.Key != nil {
			agg.ByType[*row.Key] = row.Count
		}
	}

	var prioRows []bucket
	q = applyFilter(r.db.WithContext(ctx).Model(&model.Report{}).Where("project_id = ?", projectID), f)
	if err := q.Select("priority AS key, COUNT(*) AS count").Group("priority").Scan(&prioRows).Error; err != nil {
		return nil, err
	}
	for _, row := range prioRows {
		if row.Key == nil {
			agg.ByPriority["none"] += row.Count
			continue
		}
		agg.ByPriority[*row.Key] = row.Count
	}

	return agg, nil
}

func (r *reportRepo) Attachments(ctx context.Context, reportID uuid.UUID) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}
