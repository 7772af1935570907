package collection

import (
	"context"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CollectionRepository interface {
		GetTasks(ctx context.Context, limit int) ([]*entities.Report, error)
		GetTaskByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entities.Report, error)
		// ClaimTask transitions pending -> in_progress and assigns the collector
		// in a single conditional update; returns the number of rows changed.
		ClaimTask(ctx context.Context, id uuid.UUID, collectorID uuid.UUID) (int64, error)
		// VerifyTask transitions in_progress -> verified but only for the
		// collector that claimed the task; returns the number of rows changed.
		VerifyTask(ctx context.Context, tx *gorm.DB, id uuid.UUID, collectorID uuid.UUID) (int64, error)
		CreateCollectedWaste(ctx context.Context, tx *gorm.DB, collected *entities.CollectedWaste) error
		GetCollectedByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entities.CollectedWaste, error)
	}

	collectionRepository struct {
		db *gorm.DB
	}
)

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{
		db: db,
	}
}

func (r *collectionRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// GetTasks returns reports in insertion order; every report is a task and no
// status filter is applied, callers filter what they need.
func (r *collectionRepository) GetTasks(ctx context.Context, limit int) ([]*entities.Report, error) {
	var reports []*entities.Report
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *collectionRepository) GetTaskByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*entities.Report, error) {
	var report entities.Report
	if err := r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *collectionRepository) ClaimTask(ctx context.Context, id uuid.UUID, collectorID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("id = ? AND status = ?", id, domain.ReportStatusPending).
		Updates(map[string]interface{}{
			"status":       domain.ReportStatusInProgress,
			"collector_id": collectorID,
		})
	return result.RowsAffected, result.Error
}

func (r *collectionRepository) VerifyTask(ctx context.Context, tx *gorm.DB, id uuid.UUID, collectorID uuid.UUID) (int64, error) {
	result := r.conn(tx).WithContext(ctx).
		Model(&entities.Report{}).
		Where("id = ? AND status = ? AND collector_id = ?", id, domain.ReportStatusInProgress, collectorID).
		Update("status", domain.ReportStatusVerified)
	return result.RowsAffected, result.Error
}

func (r *collectionRepository) CreateCollectedWaste(ctx context.Context, tx *gorm.DB, collected *entities.CollectedWaste) error {
	return r.conn(tx).WithContext(ctx).Create(collected).Error
}

func (r *collectionRepository) GetCollectedByCollector(ctx context.Context, collectorID uuid.UUID) ([]*entities.CollectedWaste, error) {
	var collected []*entities.CollectedWaste
	if err := r.db.WithContext(ctx).
		Where("collector_id = ?", collectorID).
		Order("collection_date DESC").
		Find(&collected).Error; err != nil {
		return nil, err
	}
	return collected, nil
}
