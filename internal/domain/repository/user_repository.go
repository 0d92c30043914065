package repository

import (
	"context"

	"pingme/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error

	// SearchByName finds users whose full name starts with the query,
	// excluding excludeID from the results.
	SearchByName(ctx context.Context, query, excludeID string, limit int) ([]*entity.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
}
