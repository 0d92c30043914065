package usecase

import (
	"context"

	"pingme/internal/domain/entity"
	"pingme/internal/domain/repository"
	"pingme/pkg/logger"
)

// AchievementUseCase keeps per-user message counters and awards milestone
// achievements. Everything here is best-effort: failures are logged and
// swallowed so they never interfere with message delivery.
type AchievementUseCase struct {
	userRepo repository.UserRepository
}

func NewAchievementUseCase(userRepo repository.UserRepository) *AchievementUseCase {
	return &AchievementUseCase{
		userRepo: userRepo,
	}
}

// RecordMessageSent increments the sender's message counter and awards any
// newly reached tiers. Awarding is idempotent: a tier already held is never
// granted twice.
func (uc *AchievementUseCase) RecordMessageSent(ctx context.Context, senderID string) {
	user, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		logger.Warn("Achievement update skipped, failed to load user %s: %v", senderID, err)
		return
	}

	user.Stats.MessagesSent++

	for _, tier := range entity.MessageAchievementTiers {
		if user.Stats.MessagesSent >= tier.Count && !user.HasAchievement(tier.ID) {
			user.Achievements = append(user.Achievements, tier.ID)
			logger.Info("User %s earned achievement %s (%s)", senderID, tier.ID, tier.Title)
		}
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to persist achievement update for %s: %v", senderID, err)
	}
}
