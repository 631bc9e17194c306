package repository

import (
	"context"
	"errors"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/domain/entity"
)

// ErrEmailTaken is returned by Create when the email is already registered.
// Uniqueness is enforced by the store itself, so two concurrent signups with
// the same email resolve with the second write failing.
var ErrEmailTaken = errors.New("email already exists")

// ErrNotFound is returned when no user matches the lookup.
var ErrNotFound = errors.New("user not found")

// UserRepository defines the credential store boundary.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
}
