package users

import (
	"context"
)

type Repository interface {
	// Create stores user and assigns its ID. A taken username or email
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
