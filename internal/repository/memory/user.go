// Package memory holds process-local repository implementations backed by
// plain Go slices.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/user-registry/internal/domain"
)

var _ domain.UserRepository = (*UserRepository)(nil)

// UserRepository implements domain.UserRepository in process memory. Users
// are kept in insertion order and never updated or removed.
type UserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewUserRepository returns an empty UserRepository.
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Save appends a copy of user. It panics if the email is already stored.
func (r *UserRepository) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(user.Email) >= 0 {
		panic(&domain.ContractViolation{Op: "save user " + user.Email, Err: domain.ErrUserAlreadyExists})
	}
	r.users = append(r.users, *user.Clone())
	return nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(email)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	return r.users[i].Clone(), nil
}

func (r *UserRepository) GetAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// Len returns the number of stored users.
func (r *UserRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// indexOf is a linear scan; callers must hold r.mu.
func (r *UserRepository) indexOf(email string) int {
	for i := range r.users {
		if r.users[i].Email == email {
			return i
		}
	}
	return -1
}
