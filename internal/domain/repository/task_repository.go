package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"taskdeck/internal/common"
	"taskdeck/internal/domain/model"
	"taskdeck/internal/platform/storage"
)

// TaskPatch carries a partial update; nil fields keep their prior values.
type TaskPatch struct {
	Name     *string
	Complete *bool
}

type TaskRepository interface {
	List(ctx context.Context) ([]model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, id string, patch TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id string) error
}

type fileTaskRepository struct {
	tasks *storage.Collection[model.Task]
}

func NewFileTaskRepository(tasks *storage.Collection[model.Task]) TaskRepository {
	return &fileTaskRepository{tasks: tasks}
}

func (r *fileTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	return r.tasks.Load(), nil
}

// Create appends the task. Ids derive from the creation instant, so two
// creations in the same millisecond would collide; the id is bumped under
// the lock until it is unique.
func (r *fileTaskRepository) Create(ctx context.Context, task *model.Task) error {
	err := r.tasks.Update(func(records []model.Task) ([]model.Task, error) {
		id, _ := strconv.ParseInt(task.ID, 10, 64)
		for hasTaskID(records, task.ID) {
			id++
			task.ID = strconv.FormatInt(id, 10)
		}
		return append(records, *task), nil
	})
	if err != nil {
		return fmt.Errorf("fileTaskRepository.Create: %w", common.ErrInternalServer)
	}
	return nil
}

func hasTaskID(records []model.Task, id string) bool {
	for _, t := range records {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Update applies the patch under the collection lock so the read-modify-write
// cannot interleave with another mutation.
func (r *fileTaskRepository) Update(ctx context.Context, id string, patch TaskPatch) (*model.Task, error) {
	var updated model.Task
	err := r.tasks.Update(func(records []model.Task) ([]model.Task, error) {
		for i := range records {
			if records[i].ID != id {
				continue
			}
			if patch.Name != nil {
				records[i].Name = *patch.Name
			}
			if patch.Complete != nil {
				records[i].Complete = *patch.Complete
			}
			updated = records[i]
			return records, nil
		}
		return nil, fmt.Errorf("task %s: %w", id, common.ErrNotFound)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("fileTaskRepository.Update: %w", common.ErrInternalServer)
	}
	return &updated, nil
}

func (r *fileTaskRepository) Delete(ctx context.Context, id string) error {
	err := r.tasks.Update(func(records []model.Task) ([]model.Task, error) {
		remaining := make([]model.Task, 0, len(records))
		for _, t := range records {
			if t.ID != id {
				remaining = append(remaining, t)
			}
		}
		if len(remaining) == len(records) {
			return nil, fmt.Errorf("task %s: %w", id, common.ErrNotFound)
		}
		return remaining, nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("fileTaskRepository.Delete: %w", common.ErrInternalServer)
	}
	return nil
}
