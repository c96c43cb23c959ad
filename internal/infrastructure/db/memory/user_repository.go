package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/squadbase/player-catalog/internal/core/domain"
)

// UserRepository keeps user accounts in process memory. Used with the flat
// snapshot backend, where no durable user collection exists; accounts do not
// survive a restart.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	next  int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}

	r.next++
	created := *user
	created.ID = strconv.Itoa(r.next)
	r.users[created.Username] = created

	out := created
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := user
	return &out, nil
}
