package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMessageSentIncrementsCounter(t *testing.T) {
	userRepo := newFakeUserRepo(testUser("u1", "Alice"))
	uc := NewAchievementUseCase(userRepo)

	uc.RecordMessageSent(context.Background(), "u1")
	uc.RecordMessageSent(context.Background(), "u1")

	user, err := userRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), user.Stats.MessagesSent)
	assert.Empty(t, user.Achievements)
}

func TestRecordMessageSentAwardsTier(t *testing.T) {
	alice := testUser("u1", "Alice")
	alice.Stats.MessagesSent = 9
	userRepo := newFakeUserRepo(alice)
	uc := NewAchievementUseCase(userRepo)

	uc.RecordMessageSent(context.Background(), "u1")

	user, err := userRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), user.Stats.MessagesSent)
	assert.Equal(t, []string{"MSG_10"}, user.Achievements)
}

func TestRecordMessageSentIdempotentAward(t *testing.T) {
	alice := testUser("u1", "Alice")
	alice.Stats.MessagesSent = 10
	alice.Achievements = []string{"MSG_10"}
	userRepo := newFakeUserRepo(alice)
	uc := NewAchievementUseCase(userRepo)

	uc.RecordMessageSent(context.Background(), "u1")

	user, err := userRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"MSG_10"}, user.Achievements)
}

func TestRecordMessageSentBackfillsSkippedTiers(t *testing.T) {
	alice := testUser("u1", "Alice")
	alice.Stats.MessagesSent = 99
	userRepo := newFakeUserRepo(alice)
	uc := NewAchievementUseCase(userRepo)

	uc.RecordMessageSent(context.Background(), "u1")

	user, err := userRepo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"MSG_10", "MSG_100"}, user.Achievements)
}

func TestRecordMessageSentUnknownUser(t *testing.T) {
	uc := NewAchievementUseCase(newFakeUserRepo())
	assert.NotPanics(t, func() {
		uc.RecordMessageSent(context.Background(), "ghost")
	})
}
