package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/todo-task-api/internal/model"
	"github.com/iliyamo/todo-task-api/internal/store"
	"github.com/iliyamo/todo-task-api/internal/utils"
)

const minPasswordLen = 6

// AuthService enforces registration and login rules and drives the avatar
// lifecycle. Passwords are bcrypt-hashed with the configured cost.
type AuthService struct {
	users      store.UserRepository
	files      Uploader
	bcryptCost int
	logger     *zap.Logger
}

func NewAuthService(users store.UserRepository, files Uploader, bcryptCost int, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, files: files, bcryptCost: bcryptCost, logger: logger}
}

// Register validates the credentials, hashes the password and inserts the
// user. A blank name defaults to the email local part. An avatar that fails
// to upload is logged and dropped, same as task attachments.
func (s *AuthService) Register(ctx context.Context, email, password, name string, avatar *Attachment) (*model.User, error) {
	email = store.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewValidationError("email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, NewValidationError("password must be at least 6 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	var avatarURL *string
	if avatar != nil {
		ref, err := s.files.Store(avatar.Content, avatar.FileName)
		if err != nil {
			s.logger.Warn("storing avatar failed, registering without it",
				zap.String("file", avatar.FileName), zap.Error(err))
		} else {
			avatarURL = &ref
		}
	}
	return s.users.Insert(ctx, email, hash, name, avatarURL)
}

// Login authenticates by normalized email and password. Any mismatch,
// unknown email included, yields the same ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, ErrUnauthorized
	}
	return u, nil
}

// GetUser returns the user with the given id.
func (s *AuthService) GetUser(ctx context.Context, id int) (*model.User, error) {
	return s.users.Get(ctx, id)
}

// UpdateProfile replaces the name when non-blank and, when a new avatar is
// supplied, stores it and releases the previous file. The old avatar delete
// is best-effort.
func (s *AuthService) UpdateProfile(ctx context.Context, id int, name string, avatar *Attachment) (*model.User, error) {
	var avatarURL *string
	if avatar != nil {
		ref, err := s.files.Store(avatar.Content, avatar.FileName)
		if err != nil {
			s.logger.Warn("storing avatar failed, keeping previous one",
				zap.String("file", avatar.FileName), zap.Error(err))
		} else {
			avatarURL = &ref
		}
	}
	var oldAvatar *string
	u, err := s.users.Update(ctx, id, func(u *model.User) {
		if n := strings.TrimSpace(name); n != "" {
			u.Name = n
		}
		if avatarURL != nil {
			oldAvatar = u.AvatarURL
			u.AvatarURL = avatarURL
		}
	})
	if err != nil {
		// The upload is orphaned when the user does not exist; remove it.
		if avatarURL != nil {
			_ = s.files.Delete(*avatarURL)
		}
		return nil, err
	}
	if oldAvatar != nil {
		if err := s.files.Delete(*oldAvatar); err != nil {
			s.logger.Warn("deleting replaced avatar failed",
				zap.Int("user_id", id), zap.String("ref", *oldAvatar), zap.Error(err))
		}
	}
	return u, nil
}
