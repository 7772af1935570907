package ledger

import (
	"context"
	"strings"
	"time"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// LedgerService owns all point arithmetic. The transaction log is the sole
	// source of truth; the per-user Reward account row is a derived projection
	// refreshed inside the same database transaction as every credit and debit.
	LedgerService interface {
		GetOrCreateAccount(ctx context.Context, userID string) (*entities.Reward, error)
		Credit(ctx context.Context, tx *gorm.DB, userID string, amount int, txType string, description string) (*entities.Transaction, error)
		Debit(ctx context.Context, tx *gorm.DB, userID string, amount int, description string) (*entities.Transaction, error)
		Balance(ctx context.Context, userID string) (int, error)
		History(ctx context.Context, userID string, limit int) ([]*domain.TransactionResponse, error)
	}

	ledgerService struct {
		db               *gorm.DB
		ledgerRepository LedgerRepository
	}
)

func NewLedgerService(db *gorm.DB, ledgerRepository LedgerRepository) LedgerService {
	return &ledgerService{
		db:               db,
		ledgerRepository: ledgerRepository,
	}
}

func (s *ledgerService) GetOrCreateAccount(ctx context.Context, userID string) (*entities.Reward, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.ledgerRepository.GetOrCreateAccount(ctx, nil, userUUID)
}

func (s *ledgerService) Credit(ctx context.Context, tx *gorm.DB, userID string, amount int, txType string, description string) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !strings.HasPrefix(txType, "earned") {
		return nil, domain.ErrInvalidTransactionType
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	transaction := &entities.Transaction{
		ID:          uuid.New(),
		UserID:      userUUID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Date:        time.Now(),
	}

	apply := func(tx *gorm.DB) error {
		if err := s.ledgerRepository.CreateTransaction(ctx, tx, transaction); err != nil {
			return err
		}
		return s.refreshAccount(ctx, tx, userUUID)
	}

	if tx != nil {
		err = apply(tx)
	} else {
		err = s.db.WithContext(ctx).Transaction(apply)
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *ledgerService) Debit(ctx context.Context, tx *gorm.DB, userID string, amount int, description string) (*entities.Transaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	transaction := &entities.Transaction{
		ID:          uuid.New(),
		UserID:      userUUID,
		Type:        domain.TransactionRedeemed,
		Amount:      amount,
		Description: description,
		Date:        time.Now(),
	}

	apply := func(tx *gorm.DB) error {
		balance, err := s.balanceIn(ctx, tx, userUUID)
		if err != nil {
			return err
		}
		if amount > balance {
			return domain.ErrInsufficientPoints
		}
		if err := s.ledgerRepository.CreateTransaction(ctx, tx, transaction); err != nil {
			return err
		}
		return s.refreshAccount(ctx, tx, userUUID)
	}

	if tx != nil {
		err = apply(tx)
	} else {
		err = s.db.WithContext(ctx).Transaction(apply)
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *ledgerService) Balance(ctx context.Context, userID string) (int, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return 0, domain.ErrParseUUID
	}
	return s.balanceIn(ctx, nil, userUUID)
}

func (s *ledgerService) History(ctx context.Context, userID string, limit int) ([]*domain.TransactionResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	transactions, err := s.ledgerRepository.GetUserTransactions(ctx, userUUID, limit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		result = append(result, &domain.TransactionResponse{
			ID:          tx.ID.String(),
			Type:        tx.Type,
			Amount:      tx.Amount,
			Description: tx.Description,
			Date:        tx.Date,
		})
	}

	return result, nil
}

// balanceIn computes the spendable balance: the signed ledger sum floored at 0.
func (s *ledgerService) balanceIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	total, err := s.ledgerRepository.SumSignedAmounts(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	if total < 0 {
		total = 0
	}
	return total, nil
}

func (s *ledgerService) refreshAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	account, err := s.ledgerRepository.GetOrCreateAccount(ctx, tx, userID)
	if err != nil {
		return err
	}
	balance, err := s.balanceIn(ctx, tx, userID)
	if err != nil {
		return err
	}
	return s.ledgerRepository.UpdateAccountPoints(ctx, tx, account.ID, balance)
}
