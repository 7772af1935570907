package report

import (
	"context"

	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReportRepository interface {
		CreateReport(ctx context.Context, tx *gorm.DB, report *entities.Report) error
		GetReportByID(ctx context.Context, id uuid.UUID) (*entities.Report, error)
		GetRecentReports(ctx context.Context, limit int) ([]*entities.Report, error)
		GetUserReports(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Report, int64, error)
	}

	reportRepository struct {
		db *gorm.DB
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{
		db: db,
	}
}

func (r *reportRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *reportRepository) CreateReport(ctx context.Context, tx *gorm.DB, report *entities.Report) error {
	return r.conn(tx).WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetReportByID(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	var report entities.Report
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetRecentReports(ctx context.Context, limit int) ([]*entities.Report, error) {
	var reports []*entities.Report
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportRepository) GetUserReports(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Report, int64, error) {
	var reports []*entities.Report
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, count, nil
}
