package repository

import (
	"context"
	"sync"

	"loginapp/internal/entities"
)

type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]entities.User
	nextID int64
}

// NewMemoryUserRepository creates a process-local repository with the same
// matching rules as the Postgres one. Used when no database is configured.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:  make(map[int64]entities.User),
		nextID: 1,
	}
}

func (r *memoryUserRepository) Save(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	saved := entities.User{
		ID:           user.ID,
		Email:        cloneString(user.Email),
		UserPassword: cloneString(user.UserPassword),
	}
	if _, exists := r.users[saved.ID]; saved.ID == 0 || !exists {
		saved.ID = r.nextID
		r.nextID++
	}
	r.users[saved.ID] = saved

	return copyUser(saved), nil
}

func (r *memoryUserRepository) FindByEmail(ctx context.Context, email *string) (*entities.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if email == nil {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *entities.User
	for _, u := range r.users {
		if u.Email == nil || *u.Email != *email {
			continue
		}
		if found == nil || u.ID < found.ID {
			found = copyUser(u)
		}
	}
	return found, nil
}

func copyUser(u entities.User) *entities.User {
	return &entities.User{
		ID:           u.ID,
		Email:        cloneString(u.Email),
		UserPassword: cloneString(u.UserPassword),
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
