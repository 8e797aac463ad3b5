package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "bandbook/internal/errors"
	"bandbook/internal/model"
	"bandbook/internal/pagination"
	"bandbook/internal/repository"
)

// UserPage is a paginated user listing for the admin panel.
type UserPage struct {
	Items      []model.User `json:"items"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"totalPages"`
}

// ProfilePatch carries profile update fields; nil means unchanged.
type ProfilePatch struct {
	Name      *string
	AvatarURL *string // non-nil empty string clears the avatar
}

// UserService handles profile and role management.
type UserService interface {
	UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*model.User, error)
	List(ctx context.Context, params pagination.Params) (*UserPage, error)
	// ChangeRole sets another user's role. Actors cannot change their
	// own role, admins included.
	ChangeRole(ctx context.Context, actorID, targetID uint, role model.Role) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, apperrors.ErrNameEmpty
		}
		user.Name = trimmed
	}
	if patch.AvatarURL != nil {
		if trimmed := strings.TrimSpace(*patch.AvatarURL); trimmed == "" {
			user.AvatarURL = nil
		} else {
			user.AvatarURL = &trimmed
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, params pagination.Params) (*UserPage, error) {
	users, total, err := s.users.List(ctx, params.Offset(), params.PageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &UserPage{
		Items:      users,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Total:      total,
		TotalPages: pagination.TotalPages(total, params.PageSize),
	}, nil
}

func (s *userService) ChangeRole(ctx context.Context, actorID, targetID uint, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if actorID == targetID {
		return nil, apperrors.ErrSelfRoleChange
	}
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	// Setting the role the user already has is a successful no-op.
	if target.Role == role {
		return target, nil
	}
	user, err := s.users.UpdateRole(ctx, targetID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return user, nil
}
