package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/printshophq/printshop-backend/internal/modules/user"
)

// ErrTooManyAttempts is returned while an email is in its login cool-down.
var ErrTooManyAttempts = errors.New("too many failed attempts, try again later")

// ErrInvalidCredentials is returned for a bad email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

type service struct {
	userRepo user.Repository
	secret   []byte
	tokenTTL time.Duration
	limiter  *loginLimiter
}

// NewService creates a new auth service.
func NewService(userRepo user.Repository, secret string, maxFailures int, cooldown time.Duration) Service {
	return &service{
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: 24 * time.Hour,
		limiter:  newLoginLimiter(maxFailures, cooldown),
	}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if !s.limiter.Allow(email) {
		return "", ErrTooManyAttempts
	}

	u, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		s.limiter.Fail(email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.limiter.Fail(email)
		return "", ErrInvalidCredentials
	}
	s.limiter.Reset(email)

	expirationTime := time.Now().Add(s.tokenTTL)
	claims := &Claims{
		Email: u.Email,
		Role:  u.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
