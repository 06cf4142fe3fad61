package user

import "context"

// Repository defines data access for users.
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context, role string) ([]*User, error)
	UpdateRole(ctx context.Context, id string, role string) error
}
