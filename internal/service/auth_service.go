package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bandbook/internal/auth"
	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login and token issuance.
type AuthService interface {
	Register(ctx context.Context, name, email, password string, avatarURL *string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
	}
}

// Register creates a USER account with a hashed password and returns
// the user together with a freshly issued session token. The role is
// always USER; admins exist only via seeding or role changes.
func (s *authService) Register(ctx context.Context, name, email, password string, avatarURL *string) (*model.User, string, error) {
	email = SanitizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
		AvatarURL:    avatarURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// A missing user and a wrong password are indistinguishable to callers.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, SanitizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

// SanitizeEmail normalizes email input (trim + lowercase).
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
