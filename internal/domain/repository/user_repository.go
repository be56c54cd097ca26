package repository

import (
	"context"
	"errors"
	"fmt"

	"taskdeck/internal/common"
	"taskdeck/internal/domain/model"
	"taskdeck/internal/platform/storage"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type fileUserRepository struct {
	users *storage.Collection[model.User]
}

func NewFileUserRepository(users *storage.Collection[model.User]) UserRepository {
	return &fileUserRepository{users: users}
}

// Create appends the user, rejecting duplicate usernames. The uniqueness
// check and the append happen under the same collection lock.
func (r *fileUserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.users.Update(func(records []model.User) ([]model.User, error) {
		for _, u := range records {
			if u.Username == user.Username {
				return nil, fmt.Errorf("username %q already taken: %w", user.Username, common.ErrConflict)
			}
		}
		return append(records, *user), nil
	})
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return err
		}
		return fmt.Errorf("fileUserRepository.Create: %w", common.ErrInternalServer)
	}
	return nil
}

func (r *fileUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users.Load() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fileUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range r.users.Load() {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}
