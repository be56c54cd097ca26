package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/common"
	"taskdeck/internal/domain/model"
	"taskdeck/internal/domain/repository"
)

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type UpdateTaskRequest struct {
	Name     *string `json:"name"`
	Complete *bool   `json:"complete"`
}

// List returns every task in insertion order; filtering is a client concern.
func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.List(ctx)
}

func (s *TaskService) Create(ctx context.Context, name string) (*model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("task name is required: %w", common.ErrBadRequest)
	}

	now := time.Now().UnixMilli()
	task := &model.Task{
		ID:        strconv.FormatInt(now, 10),
		Name:      name,
		Complete:  false,
		CreatedAt: now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update; omitted fields keep their prior values.
func (s *TaskService) Update(ctx context.Context, id string, req UpdateTaskRequest) (*model.Task, error) {
	patch := repository.TaskPatch{Complete: req.Complete}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return nil, fmt.Errorf("task name must not be empty: %w", common.ErrBadRequest)
		}
		patch.Name = &trimmed
	}
	return s.taskRepo.Update(ctx, id, patch)
}

func (s *TaskService) Remove(ctx context.Context, id string) error {
	return s.taskRepo.Delete(ctx, id)
}
