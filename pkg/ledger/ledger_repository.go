package ledger

import (
	"context"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	LedgerRepository interface {
		// tx may be nil; the repository then uses its own connection. Passing a
		// transaction handle lets callers group ledger writes with their own.
		GetOrCreateAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entities.Reward, error)
		CreateTransaction(ctx context.Context, tx *gorm.DB, transaction *entities.Transaction) error
		SumSignedAmounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error)
		UpdateAccountPoints(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, points int) error
		GetUserTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Transaction, error)
		CountUserTransactions(ctx context.Context, userID uuid.UUID, txType string) (int64, error)
	}

	ledgerRepository struct {
		db *gorm.DB
	}
)

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

func (r *ledgerRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *ledgerRepository) GetOrCreateAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*entities.Reward, error) {
	var account entities.Reward
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, domain.PointsAccountName).
		Attrs(entities.Reward{
			ID:             uuid.New(),
			UserID:         userID,
			Name:           domain.PointsAccountName,
			CollectionInfo: "Points earned from reporting and collecting food waste",
			Points:         0,
			Level:          1,
			IsAvailable:    true,
		}).
		FirstOrCreate(&account).Error
	if err != nil {
		// A concurrent caller may have inserted the row first; the unique index
		// on (user_id, name) rejects the duplicate, so fetch what won the race.
		findErr := r.conn(tx).WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, domain.PointsAccountName).
			First(&account).Error
		if findErr != nil {
			return nil, err
		}
	}
	return &account, nil
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *gorm.DB, transaction *entities.Transaction) error {
	return r.conn(tx).WithContext(ctx).Create(transaction).Error
}

// SumSignedAmounts returns the raw signed sum of a user's ledger; earned_*
// entries count positive, redeemed entries negative. May be negative.
func (r *ledgerRepository) SumSignedAmounts(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	var total int
	query := r.conn(tx).WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(CASE WHEN type LIKE 'earned%' THEN amount ELSE -amount END), 0) as total")
	if err := query.Row().Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ledgerRepository) UpdateAccountPoints(ctx context.Context, tx *gorm.DB, accountID uuid.UUID, points int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&entities.Reward{}).
		Where("id = ?", accountID).
		Update("points", points).Error
}

func (r *ledgerRepository) GetUserTransactions(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *ledgerRepository) CountUserTransactions(ctx context.Context, userID uuid.UUID, txType string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("user_id = ? AND type = ?", userID, txType).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
