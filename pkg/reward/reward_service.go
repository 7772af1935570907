package reward

import (
	"context"
	"errors"
	"fmt"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/pkg/ledger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RewardService interface {
		GetAvailableRewards(ctx context.Context, userID string) ([]*domain.AvailableReward, error)
		Redeem(ctx context.Context, req domain.RedeemRequest, userID string) (*domain.RedeemResponse, error)
		GetLeaderboard(ctx context.Context) ([]*domain.LeaderboardEntry, error)
	}

	rewardService struct {
		rewardRepository RewardRepository
		ledgerService    ledger.LedgerService
	}
)

func NewRewardService(rewardRepository RewardRepository, ledgerService ledger.LedgerService) RewardService {
	return &rewardService{
		rewardRepository: rewardRepository,
		ledgerService:    ledgerService,
	}
}

func (s *rewardService) GetAvailableRewards(ctx context.Context, userID string) ([]*domain.AvailableReward, error) {
	balance, err := s.ledgerService.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.rewardRepository.GetAvailableRewards(ctx)
	if err != nil {
		return nil, err
	}

	// The first entry is the user's own balance, redeemable in full with an
	// empty reward id.
	result := make([]*domain.AvailableReward, 0, len(rewards)+1)
	result = append(result, &domain.AvailableReward{
		ID:             uuid.Nil.String(),
		Name:           "Your Points",
		Cost:           balance,
		Points:         balance,
		Level:          1,
		Description:    "redeem your earned points",
		CollectionInfo: "Points earned from reporting and collecting food waste",
	})

	for _, reward := range rewards {
		cost := reward.Cost
		if cost == 0 {
			cost = reward.Points
		}
		result = append(result, &domain.AvailableReward{
			ID:             reward.ID.String(),
			Name:           reward.Name,
			Cost:           cost,
			Points:         reward.Points,
			Level:          reward.Level,
			Description:    reward.Description,
			CollectionInfo: reward.CollectionInfo,
		})
	}

	return result, nil
}

func (s *rewardService) Redeem(ctx context.Context, req domain.RedeemRequest, userID string) (*domain.RedeemResponse, error) {
	if req.RewardID == "" || req.RewardID == uuid.Nil.String() {
		return s.redeemAll(ctx, userID)
	}

	rewardUUID, err := uuid.Parse(req.RewardID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	reward, err := s.rewardRepository.GetRewardByID(ctx, rewardUUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, err
	}
	if !reward.IsAvailable || reward.Name == domain.PointsAccountName {
		return nil, domain.ErrRewardNotFound
	}

	cost := reward.Cost
	if cost == 0 {
		cost = reward.Points
	}

	if _, err := s.ledgerService.Debit(ctx, nil, userID, cost, fmt.Sprintf("redeemed: %s", reward.Name)); err != nil {
		return nil, err
	}

	balance, err := s.ledgerService.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.RedeemResponse{
		RewardName:     reward.Name,
		PointsRedeemed: cost,
		Balance:        balance,
	}, nil
}

// redeemAll debits the user's entire balance. The recorded transaction carries
// the amount actually redeemed, not the balance left afterwards.
func (s *rewardService) redeemAll(ctx context.Context, userID string) (*domain.RedeemResponse, error) {
	balance, err := s.ledgerService.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance == 0 {
		return nil, domain.ErrInsufficientPoints
	}

	if _, err := s.ledgerService.Debit(ctx, nil, userID, balance, fmt.Sprintf("redeemed all points: %d", balance)); err != nil {
		return nil, err
	}

	return &domain.RedeemResponse{
		RewardName:     "Your Points",
		PointsRedeemed: balance,
		Balance:        0,
	}, nil
}

func (s *rewardService) GetLeaderboard(ctx context.Context) ([]*domain.LeaderboardEntry, error) {
	accounts, err := s.rewardRepository.GetAccountsByPoints(ctx)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uuid.UUID, 0, len(accounts))
	for _, account := range accounts {
		userIDs = append(userIDs, account.UserID)
	}

	names := map[uuid.UUID]string{}
	if len(userIDs) > 0 {
		names, err = s.rewardRepository.GetUserNames(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	result := make([]*domain.LeaderboardEntry, 0, len(accounts))
	for _, account := range accounts {
		name, ok := names[account.UserID]
		if !ok {
			name = "Unknown"
		}
		result = append(result, &domain.LeaderboardEntry{
			UserID:   account.UserID.String(),
			UserName: name,
			Points:   account.Points,
			Level:    account.Level,
		})
	}

	return result, nil
}
