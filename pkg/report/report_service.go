package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"
	"FoodLoop-Backend/internal/utils/storage"
	"FoodLoop-Backend/pkg/ledger"
	"FoodLoop-Backend/pkg/notification"
	"FoodLoop-Backend/pkg/verification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReportService interface {
		CreateReport(ctx context.Context, req domain.CreateReportRequest, userID string) (*domain.ReportResponse, error)
		GetRecentReports(ctx context.Context, limit int) ([]*domain.ReportResponse, error)
		GetUserReports(ctx context.Context, userID string, page, limit int) ([]*domain.ReportResponse, int64, error)
	}

	reportService struct {
		db                  *gorm.DB
		reportRepository    ReportRepository
		ledgerService       ledger.LedgerService
		notificationService notification.NotificationService
		verificationService verification.VerificationService
		s3                  storage.AwsS3
	}
)

func NewReportService(
	db *gorm.DB,
	reportRepository ReportRepository,
	ledgerService ledger.LedgerService,
	notificationService notification.NotificationService,
	verificationService verification.VerificationService,
	s3 storage.AwsS3,
) ReportService {
	return &reportService{
		db:                  db,
		reportRepository:    reportRepository,
		ledgerService:       ledgerService,
		notificationService: notificationService,
		verificationService: verificationService,
		s3:                  s3,
	}
}

func (s *reportService) CreateReport(ctx context.Context, req domain.CreateReportRequest, userID string) (*domain.ReportResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	file, err := req.Image.Open()
	if err != nil {
		return nil, err
	}
	imageData, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return nil, err
	}

	// Verification and upload happen before the database transaction opens;
	// neither may hold a store-level lock for the duration of a network call.
	result, err := s.verificationService.VerifyFood(ctx, imageData, req.Image.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}

	verificationJSON, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	reportID := uuid.New()

	var imageURL string
	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("report-%s", reportID.String()),
		req.Image,
		"reports",
		storage.AllowImage...,
	)
	if err != nil {
		return nil, err
	}
	imageURL = s.s3.GetPublicLinkKey(objectKey)

	location := req.Location
	if location == "" {
		location = domain.DefaultReportLocation
	}

	report := &entities.Report{
		ID:                 reportID,
		UserID:             userUUID,
		Location:           location,
		FoodType:           result.FoodType,
		Quantity:           result.Quantity,
		ImageURL:           imageURL,
		VerificationResult: string(verificationJSON),
		Status:             domain.ReportStatusPending,
	}

	// Report insert, point credit and notification commit or fail as one unit.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reportRepository.CreateReport(ctx, tx, report); err != nil {
			return err
		}
		if _, err := s.ledgerService.Credit(
			ctx, tx, userID,
			domain.PointsPerReport,
			domain.TransactionEarnedReport,
			"Points earned for reporting food waste",
		); err != nil {
			return err
		}
		return s.notificationService.Notify(
			ctx, tx, userUUID,
			fmt.Sprintf("You've earned %d points for reporting food waste!", domain.PointsPerReport),
			"reward",
		)
	})
	if err != nil {
		return nil, err
	}

	return toReportResponse(report), nil
}

func (s *reportService) GetRecentReports(ctx context.Context, limit int) ([]*domain.ReportResponse, error) {
	reports, err := s.reportRepository.GetRecentReports(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.ReportResponse, 0, len(reports))
	for _, report := range reports {
		result = append(result, toReportResponse(report))
	}
	return result, nil
}

func (s *reportService) GetUserReports(ctx context.Context, userID string, page, limit int) ([]*domain.ReportResponse, int64, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	reports, count, err := s.reportRepository.GetUserReports(ctx, userUUID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.ReportResponse, 0, len(reports))
	for _, report := range reports {
		result = append(result, toReportResponse(report))
	}
	return result, count, nil
}

func toReportResponse(report *entities.Report) *domain.ReportResponse {
	resp := &domain.ReportResponse{
		ID:                 report.ID.String(),
		UserID:             report.UserID.String(),
		Location:           report.Location,
		FoodType:           report.FoodType,
		Quantity:           report.Quantity,
		ImageURL:           report.ImageURL,
		VerificationResult: report.VerificationResult,
		Status:             report.Status,
		CreatedAt:          report.CreatedAt,
	}
	if report.CollectorID != nil {
		resp.CollectorID = report.CollectorID.String()
	}
	return resp
}
