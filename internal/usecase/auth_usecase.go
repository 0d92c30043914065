package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"pingme/internal/domain/entity"
	"pingme/internal/domain/repository"
	"pingme/pkg/errors"
	"pingme/pkg/logger"
)

const defaultProfileTheme = "primary"

type AuthUseCase struct {
	firebaseAuth FirebaseAuthClient
	userRepo     repository.UserRepository
	jwtSecret    []byte
	ticketTTL    time.Duration
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func NewAuthUseCase(
	firebaseAuth FirebaseAuthClient,
	userRepo repository.UserRepository,
	jwtSecret string,
	ticketTTLSeconds int64,
) *AuthUseCase {
	return &AuthUseCase{
		firebaseAuth: firebaseAuth,
		userRepo:     userRepo,
		jwtSecret:    []byte(jwtSecret),
		ticketTTL:    time.Duration(ticketTTLSeconds) * time.Second,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if _, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, errors.Conflict("Email already registered")
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.FullName)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uid,
		Email:        input.Email,
		FullName:     input.FullName,
		ProfileTheme: defaultProfileTheme,
		Privacy: entity.PrivacySettings{
			ShowOnlineStatus: true,
			ReadReceipts:     true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Internal("Failed to save user profile", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Account created but sign-in failed", err)
	}

	logger.Info("User registered: %s", uid)
	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	token, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, errors.Internal("Signed in but profile is missing", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.firebaseAuth.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke session", err)
	}
	return nil
}

func (uc *AuthUseCase) GetCurrentUser(ctx context.Context, uid string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, uid)
}

// IssueWSTicket mints a short-lived token an authenticated client presents
// when opening the websocket, where the Authorization header is not
// available.
func (uc *AuthUseCase) IssueWSTicket(uid string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(uc.ticketTTL)),
	}

	ticket, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return "", errors.Internal("Failed to issue websocket ticket", err)
	}
	return ticket, nil
}

// VerifyWSTicket validates a websocket ticket and returns its user ID.
func (uc *AuthUseCase) VerifyWSTicket(ticket string) (string, error) {
	parsed, err := jwt.ParseWithClaims(ticket, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return "", errors.Unauthorized("Invalid websocket ticket", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.Unauthorized("Invalid websocket ticket", nil)
	}
	return claims.Subject, nil
}
