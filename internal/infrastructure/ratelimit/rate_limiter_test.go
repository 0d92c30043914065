package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should pass", i)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestSendMessageBudget(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := rl.Allow("u1", "send_message")
		assert.True(t, allowed, "message %d should pass", i)
	}

	allowed, _ := rl.Allow("u1", "send_message")
	assert.False(t, allowed)

	// Another user has their own budget.
	allowed, _ = rl.Allow("u2", "send_message")
	assert.True(t, allowed)
}

func TestDistinctActionsHaveDistinctBuckets(t *testing.T) {
	rl := NewRateLimiter()

	for i := 0; i < 10; i++ {
		rl.Allow("u1", "send_message")
	}

	allowed, _ := rl.Allow("u1", "upload_media")
	assert.True(t, allowed)
}
