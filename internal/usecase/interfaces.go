package usecase

import (
	"context"
	"time"
)

// FirebaseAuthClient is the slice of the identity provider the usecases
// depend on.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, error)
}

// MessageSentRecorder observes successful message sends for achievement
// bookkeeping. Implementations must be best-effort: a send never fails
// because the recorder did.
type MessageSentRecorder interface {
	RecordMessageSent(ctx context.Context, senderID string)
}

// RateLimiter gates repeated actions per user.
type RateLimiter interface {
	Allow(userID, action string) (bool, time.Duration)
}
