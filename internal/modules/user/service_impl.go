package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Roles understood by the permission table. Kept as strings in this package
// to avoid an import cycle with auth; auth owns the closed enumeration.
var knownRoles = map[string]bool{
	"admin":    true,
	"staff":    true,
	"customer": true,
}

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) RegisterUser(ctx context.Context, email, password, firstName, lastName, role string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	role = strings.ToLower(role)
	if role == "" {
		role = "customer"
	}
	if !knownRoles[role] {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *service) ListUsers(ctx context.Context, role string) ([]*User, error) {
	return s.repo.ListUsers(ctx, strings.ToLower(role))
}

func (s *service) ChangeRole(ctx context.Context, id string, role string) error {
	role = strings.ToLower(role)
	if !knownRoles[role] {
		return fmt.Errorf("unknown role %q", role)
	}
	return s.repo.UpdateRole(ctx, id, role)
}
