package reward

import (
	"context"

	"FoodLoop-Backend/domain"
	"FoodLoop-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RewardRepository interface {
		GetAvailableRewards(ctx context.Context) ([]*entities.Reward, error)
		GetRewardByID(ctx context.Context, id uuid.UUID) (*entities.Reward, error)
		GetAccountsByPoints(ctx context.Context) ([]*entities.Reward, error)
		GetUserNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error)
	}

	rewardRepository struct {
		db *gorm.DB
	}
)

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &rewardRepository{
		db: db,
	}
}

// GetAvailableRewards returns redeemable catalog rows; per-user points
// accounts are never part of the catalog.
func (r *rewardRepository) GetAvailableRewards(ctx context.Context) ([]*entities.Reward, error) {
	var rewards []*entities.Reward
	if err := r.db.WithContext(ctx).
		Where("is_available = ? AND name <> ?", true, domain.PointsAccountName).
		Order("cost ASC").
		Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepository) GetRewardByID(ctx context.Context, id uuid.UUID) (*entities.Reward, error) {
	var reward entities.Reward
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *rewardRepository) GetAccountsByPoints(ctx context.Context) ([]*entities.Reward, error) {
	var accounts []*entities.Reward
	if err := r.db.WithContext(ctx).
		Where("name = ?", domain.PointsAccountName).
		Order("points DESC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *rewardRepository) GetUserNames(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]string, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&users).Error; err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.Name
	}
	return names, nil
}
