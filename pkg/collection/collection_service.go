package collection

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"
	"FoodLoop-Backend/pkg/ledger"
	"FoodLoop-Backend/pkg/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// CollectionService exposes reports as collection tasks. Status moves
	// forward only: pending -> in_progress -> verified. Both transitions are
	// conditional updates, so racing collectors cannot claim or complete the
	// same task twice.
	CollectionService interface {
		GetTasks(ctx context.Context, limit int) ([]*domain.CollectionTaskResponse, error)
		ClaimTask(ctx context.Context, taskID string, collectorID string) error
		CompleteTask(ctx context.Context, taskID string, collectorID string) (*domain.CompleteTaskResponse, error)
		GetCollectorHistory(ctx context.Context, collectorID string) ([]*domain.CollectedWasteResponse, error)
	}

	collectionService struct {
		db                   *gorm.DB
		collectionRepository CollectionRepository
		ledgerService        ledger.LedgerService
		notificationService  notification.NotificationService
	}
)

func NewCollectionService(
	db *gorm.DB,
	collectionRepository CollectionRepository,
	ledgerService ledger.LedgerService,
	notificationService notification.NotificationService,
) CollectionService {
	return &collectionService{
		db:                   db,
		collectionRepository: collectionRepository,
		ledgerService:        ledgerService,
		notificationService:  notificationService,
	}
}

func (s *collectionService) GetTasks(ctx context.Context, limit int) ([]*domain.CollectionTaskResponse, error) {
	reports, err := s.collectionRepository.GetTasks(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CollectionTaskResponse, 0, len(reports))
	for _, report := range reports {
		task := &domain.CollectionTaskResponse{
			ID:        report.ID.String(),
			Location:  report.Location,
			FoodType:  report.FoodType,
			Quantity:  report.Quantity,
			ImageURL:  report.ImageURL,
			Status:    report.Status,
			Date:      report.CreatedAt.Format("2006-01-02"),
			CreatedAt: report.CreatedAt,
		}
		if report.CollectorID != nil {
			task.CollectorID = report.CollectorID.String()
		}
		result = append(result, task)
	}

	return result, nil
}

func (s *collectionService) ClaimTask(ctx context.Context, taskID string, collectorID string) error {
	taskUUID, err := uuid.Parse(taskID)
	if err != nil {
		return domain.ErrParseUUID
	}
	collectorUUID, err := uuid.Parse(collectorID)
	if err != nil {
		return domain.ErrParseUUID
	}

	affected, err := s.collectionRepository.ClaimTask(ctx, taskUUID, collectorUUID)
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish a missing task from one another collector got to first.
		if _, err := s.collectionRepository.GetTaskByID(ctx, nil, taskUUID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReportNotFound
			}
			return err
		}
		return domain.ErrTaskAlreadyClaimed
	}

	return nil
}

func (s *collectionService) CompleteTask(ctx context.Context, taskID string, collectorID string) (*domain.CompleteTaskResponse, error) {
	taskUUID, err := uuid.Parse(taskID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	collectorUUID, err := uuid.Parse(collectorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	points := domain.CollectRewardMin + rand.Intn(domain.CollectRewardMax-domain.CollectRewardMin+1)
	collected := &entities.CollectedWaste{
		ID:             uuid.New(),
		ReportID:       taskUUID,
		CollectorID:    collectorUUID,
		CollectionDate: time.Now(),
		Status:         domain.ReportStatusVerified,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.collectionRepository.VerifyTask(ctx, tx, taskUUID, collectorUUID)
		if err != nil {
			return err
		}
		if affected == 0 {
			report, err := s.collectionRepository.GetTaskByID(ctx, tx, taskUUID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrReportNotFound
				}
				return err
			}
			if report.Status != domain.ReportStatusInProgress {
				return domain.ErrInvalidTaskState
			}
			return domain.ErrNotTaskCollector
		}

		report, err := s.collectionRepository.GetTaskByID(ctx, tx, taskUUID)
		if err != nil {
			return err
		}
		collected.VerificationResult = report.VerificationResult

		if _, err := s.ledgerService.Credit(
			ctx, tx, collectorID,
			points,
			domain.TransactionEarnedCollect,
			"Points earned for collecting food waste",
		); err != nil {
			return err
		}

		if err := s.collectionRepository.CreateCollectedWaste(ctx, tx, collected); err != nil {
			return err
		}

		return s.notificationService.Notify(
			ctx, tx, collectorUUID,
			fmt.Sprintf("You've earned %d points for collecting food waste!", points),
			"reward",
		)
	})
	if err != nil {
		return nil, err
	}

	return &domain.CompleteTaskResponse{
		ReportID:     taskID,
		PointsEarned: points,
		CollectedID:  collected.ID.String(),
	}, nil
}

func (s *collectionService) GetCollectorHistory(ctx context.Context, collectorID string) ([]*domain.CollectedWasteResponse, error) {
	collectorUUID, err := uuid.Parse(collectorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	collected, err := s.collectionRepository.GetCollectedByCollector(ctx, collectorUUID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.CollectedWasteResponse, 0, len(collected))
	for _, c := range collected {
		result = append(result, &domain.CollectedWasteResponse{
			ID:             c.ID.String(),
			ReportID:       c.ReportID.String(),
			CollectorID:    c.CollectorID.String(),
			CollectionDate: c.CollectionDate,
			Status:         c.Status,
			Notes:          c.Notes,
		})
	}

	return result, nil
}
