package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/todo-task-api/internal/model"
)

// UserRepository is the storage contract for user accounts.
type UserRepository interface {
	Insert(ctx context.Context, email, passwordHash, name string, avatarURL *string) (*model.User, error)
	Get(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, id int, mutate func(*model.User)) (*model.User, error)
}

// UserStore keeps users in a mutex-guarded in-memory slice. There is no
// delete operation: accounts live for the lifetime of the process.
type UserStore struct {
	mu     sync.RWMutex
	users  []*model.User
	nextID int
}

var _ UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{nextID: 1}
}

// Insert stores a new user. The email is normalized before the uniqueness
// check so addresses differing only in case collide.
func (s *UserStore) Insert(_ context.Context, email, passwordHash, name string, avatarURL *string) (*model.User, error) {
	email = NormalizeEmail(email)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailExists
		}
	}
	u := &model.User{
		ID:           s.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		AvatarURL:    avatarURL,
		CreatedAt:    time.Now().UTC(),
	}
	s.nextID++
	s.users = append(s.users, u)
	cpy := *u
	return &cpy, nil
}

// Get returns a copy of the user with the given id.
func (s *UserStore) Get(_ context.Context, id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByEmail returns a copy of the user with the given normalized email.
func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = NormalizeEmail(email)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, ErrUserNotFound
}

// Update applies mutate under the write lock and returns a copy of the
// result. Id, email and creation time are restored afterwards; profile
// updates may only touch name and avatar.
func (s *UserStore) Update(_ context.Context, id int, mutate func(*model.User)) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			origID, origEmail, origCreated := u.ID, u.Email, u.CreatedAt
			mutate(u)
			u.ID, u.Email, u.CreatedAt = origID, origEmail, origCreated
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, ErrUserNotFound
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
