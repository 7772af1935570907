package ledger

import (
	"context"
	"fmt"
	"testing"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Per-test in-memory database to avoid cross-test interference
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{},
		&entities.Reward{},
		&entities.Transaction{},
	))
	return db
}

func newTestService(t *testing.T) (LedgerService, *gorm.DB) {
	t.Helper()
	db := setupDB(t)
	return NewLedgerService(db, NewLedgerRepository(db)), db
}

func TestCreditIncreasesBalance(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	tx, err := service.Credit(ctx, nil, userID, 10, domain.TransactionEarnedReport, "report points")
	require.NoError(t, err)
	require.Equal(t, 10, tx.Amount)
	require.Equal(t, domain.TransactionEarnedReport, tx.Type)

	balance, err := service.Balance(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 10, balance)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.Credit(ctx, nil, userID, 0, domain.TransactionEarnedReport, "zero")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = service.Credit(ctx, nil, userID, -5, domain.TransactionEarnedReport, "negative")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreditRejectsNonEarnedType(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Credit(ctx, nil, uuid.New().String(), 10, domain.TransactionRedeemed, "wrong type")
	require.ErrorIs(t, err, domain.ErrInvalidTransactionType)
}

func TestDebitRejectsOverdraw(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.Credit(ctx, nil, userID, 10, domain.TransactionEarnedReport, "report points")
	require.NoError(t, err)

	_, err = service.Debit(ctx, nil, userID, 11, "too much")
	require.ErrorIs(t, err, domain.ErrInsufficientPoints)

	// The failed debit must leave no trace in the ledger
	balance, err := service.Balance(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 10, balance)

	history, err := service.History(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestDebitRecordsPositiveAmount(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.Credit(ctx, nil, userID, 30, domain.TransactionEarnedCollect, "collect points")
	require.NoError(t, err)

	tx, err := service.Debit(ctx, nil, userID, 12, "redeemed: Tote Bag")
	require.NoError(t, err)
	require.Equal(t, domain.TransactionRedeemed, tx.Type)
	require.Equal(t, 12, tx.Amount)

	balance, err := service.Balance(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 18, balance)
}

func TestBalanceMatchesLedgerSum(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.Credit(ctx, nil, userID, 10, domain.TransactionEarnedReport, "r1")
	require.NoError(t, err)
	_, err = service.Credit(ctx, nil, userID, 25, domain.TransactionEarnedCollect, "c1")
	require.NoError(t, err)
	_, err = service.Debit(ctx, nil, userID, 15, "redeem")
	require.NoError(t, err)

	balance, err := service.Balance(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 20, balance)
}

func TestAccountProjectionTracksBalance(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	_, err := service.Credit(ctx, nil, userID, 10, domain.TransactionEarnedReport, "r1")
	require.NoError(t, err)
	_, err = service.Debit(ctx, nil, userID, 4, "redeem")
	require.NoError(t, err)

	var account entities.Reward
	require.NoError(t, db.Where("user_id = ? AND name = ?", userID, domain.PointsAccountName).First(&account).Error)
	require.Equal(t, 6, account.Points)
}

func TestGetOrCreateAccountIsIdempotent(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	first, err := service.GetOrCreateAccount(ctx, userID)
	require.NoError(t, err)
	second, err := service.GetOrCreateAccount(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&entities.Reward{}).
		Where("user_id = ? AND name = ?", userID, domain.PointsAccountName).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestBalanceEmptyLedgerIsZero(t *testing.T) {
	service, _ := newTestService(t)

	balance, err := service.Balance(context.Background(), uuid.New().String())
	require.NoError(t, err)
	require.Equal(t, 0, balance)
}

func TestHistoryNewestFirst(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	userID := uuid.New().String()

	for i := 1; i <= 3; i++ {
		_, err := service.Credit(ctx, nil, userID, i*10, domain.TransactionEarnedReport, fmt.Sprintf("r%d", i))
		require.NoError(t, err)
	}

	history, err := service.History(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.False(t, history[0].Date.Before(history[1].Date))
}
