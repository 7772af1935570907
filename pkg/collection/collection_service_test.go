package collection

import (
	"context"
	"fmt"
	"testing"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"
	"FoodLoop-Backend/pkg/ledger"
	"FoodLoop-Backend/pkg/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Report{},
		&entities.Reward{},
		&entities.Transaction{},
		&entities.CollectedWaste{},
		&entities.Notification{},
	))
	return db
}

func newTestService(t *testing.T) (CollectionService, ledger.LedgerService, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	ledgerService := ledger.NewLedgerService(db, ledger.NewLedgerRepository(db))
	notificationService := notification.NewNotificationService(notification.NewNotificationRepository(db))
	service := NewCollectionService(db, NewCollectionRepository(db), ledgerService, notificationService)
	return service, ledgerService, db
}

func seedUser(t *testing.T, db *gorm.DB, role string) uuid.UUID {
	t.Helper()
	user := &entities.User{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s@example.com", uuid.New()),
		Name:     "Test User",
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

func seedReport(t *testing.T, db *gorm.DB, reporterID uuid.UUID, status string) *entities.Report {
	t.Helper()
	report := &entities.Report{
		ID:                 uuid.New(),
		UserID:             reporterID,
		Location:           "Community Hall, Mandya",
		FoodType:           "rice",
		Quantity:           "2 kg",
		VerificationResult: `{"foodType":"rice","quantity":"2 kg","confidence":0.9,"expiryHours":12}`,
		Status:             status,
	}
	require.NoError(t, db.Create(report).Error)
	return report
}

func TestClaimTask(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	collector := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	require.NoError(t, service.ClaimTask(ctx, report.ID.String(), collector.String()))

	var got entities.Report
	require.NoError(t, db.First(&got, "id = ?", report.ID).Error)
	require.Equal(t, domain.ReportStatusInProgress, got.Status)
	require.NotNil(t, got.CollectorID)
	require.Equal(t, collector, *got.CollectorID)
}

func TestClaimTaskAlreadyClaimed(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	first := seedUser(t, db, domain.RoleCollector)
	second := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	require.NoError(t, service.ClaimTask(ctx, report.ID.String(), first.String()))

	err := service.ClaimTask(ctx, report.ID.String(), second.String())
	require.ErrorIs(t, err, domain.ErrTaskAlreadyClaimed)

	// First claim stays in place
	var got entities.Report
	require.NoError(t, db.First(&got, "id = ?", report.ID).Error)
	require.Equal(t, first, *got.CollectorID)
}

func TestClaimTaskNotFound(t *testing.T) {
	service, _, db := newTestService(t)
	collector := seedUser(t, db, domain.RoleCollector)

	err := service.ClaimTask(context.Background(), uuid.New().String(), collector.String())
	require.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestCompleteTask(t *testing.T) {
	service, ledgerService, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	collector := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	require.NoError(t, service.ClaimTask(ctx, report.ID.String(), collector.String()))

	res, err := service.CompleteTask(ctx, report.ID.String(), collector.String())
	require.NoError(t, err)
	require.Equal(t, report.ID.String(), res.ReportID)
	require.GreaterOrEqual(t, res.PointsEarned, domain.CollectRewardMin)
	require.LessOrEqual(t, res.PointsEarned, domain.CollectRewardMax)

	var got entities.Report
	require.NoError(t, db.First(&got, "id = ?", report.ID).Error)
	require.Equal(t, domain.ReportStatusVerified, got.Status)

	// The reward lands in the collector's ledger
	balance, err := ledgerService.Balance(ctx, collector.String())
	require.NoError(t, err)
	require.Equal(t, res.PointsEarned, balance)

	// Verification snapshot travels onto the collected record
	var collected entities.CollectedWaste
	require.NoError(t, db.First(&collected, "report_id = ?", report.ID).Error)
	require.Equal(t, report.VerificationResult, collected.VerificationResult)
	require.Equal(t, domain.ReportStatusVerified, collected.Status)

	var note entities.Notification
	require.NoError(t, db.First(&note, "user_id = ?", collector).Error)
	require.False(t, note.IsRead)
}

func TestCompleteTaskRequiresClaim(t *testing.T) {
	service, _, db := newTestService(t)
	reporter := seedUser(t, db, domain.RoleUser)
	collector := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	_, err := service.CompleteTask(context.Background(), report.ID.String(), collector.String())
	require.ErrorIs(t, err, domain.ErrInvalidTaskState)
}

func TestCompleteTaskWrongCollector(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	owner := seedUser(t, db, domain.RoleCollector)
	intruder := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	require.NoError(t, service.ClaimTask(ctx, report.ID.String(), owner.String()))

	_, err := service.CompleteTask(ctx, report.ID.String(), intruder.String())
	require.ErrorIs(t, err, domain.ErrNotTaskCollector)
}

func TestCompleteTaskTwice(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	collector := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	require.NoError(t, service.ClaimTask(ctx, report.ID.String(), collector.String()))
	_, err := service.CompleteTask(ctx, report.ID.String(), collector.String())
	require.NoError(t, err)

	_, err = service.CompleteTask(ctx, report.ID.String(), collector.String())
	require.ErrorIs(t, err, domain.ErrInvalidTaskState)
}

func TestGetTasksOldestFirst(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	first := seedReport(t, db, reporter, domain.ReportStatusPending)
	second := seedReport(t, db, reporter, domain.ReportStatusPending)

	tasks, err := service.GetTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, first.ID.String(), tasks[0].ID)
	require.Equal(t, second.ID.String(), tasks[1].ID)
	require.Equal(t, first.CreatedAt.Format("2006-01-02"), tasks[0].Date)
}

func TestGetCollectorHistory(t *testing.T) {
	service, _, db := newTestService(t)
	ctx := context.Background()
	reporter := seedUser(t, db, domain.RoleUser)
	collector := seedUser(t, db, domain.RoleCollector)
	report := seedReport(t, db, reporter, domain.ReportStatusPending)

	require.NoError(t, service.ClaimTask(ctx, report.ID.String(), collector.String()))
	_, err := service.CompleteTask(ctx, report.ID.String(), collector.String())
	require.NoError(t, err)

	history, err := service.GetCollectorHistory(ctx, collector.String())
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, report.ID.String(), history[0].ReportID)
	require.Equal(t, domain.ReportStatusVerified, history[0].Status)
}
