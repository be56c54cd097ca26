package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	serverapi "taskdeck/internal/api"
	"taskdeck/internal/app/service"
	"taskdeck/internal/common"
	"taskdeck/internal/common/security"
	"taskdeck/internal/domain/model"
	"taskdeck/internal/domain/repository"
	"taskdeck/internal/platform/storage"
)

// The client is exercised against the real router, not stubs.
func newClientAndServer(t *testing.T) *Client {
	t.Helper()
	dir := t.TempDir()

	tokenAuth := security.NewTokenAuth([]byte("test-secret"), time.Hour)
	taskRepo := repository.NewFileTaskRepository(storage.NewCollection[model.Task](filepath.Join(dir, "tasks.json")))
	userRepo := repository.NewFileUserRepository(storage.NewCollection[model.User](filepath.Join(dir, "users.json")))

	router := serverapi.NewRouter(tokenAuth, service.NewAuthService(userRepo, tokenAuth), service.NewTaskService(taskRepo))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func TestClientAuthAndTaskRoundTrip(t *testing.T) {
	c := newClientAndServer(t)
	ctx := context.Background()

	id, err := c.Register(ctx, "ana", "x")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == "" {
		t.Error("expected a user id from register")
	}

	token, err := c.Login(ctx, "ana", "x")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || c.Token() != token {
		t.Fatalf("login should install the token, got %q", c.Token())
	}

	task, err := c.CreateTask(ctx, "buy milk")
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	complete := true
	updated, err := c.UpdateTask(ctx, task.ID, TaskUpdate{Complete: &complete})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if !updated.Complete || updated.Name != "buy milk" {
		t.Fatalf("unexpected updated task: %+v", updated)
	}

	name := "buy oat milk"
	renamed, err := c.UpdateTask(ctx, task.ID, TaskUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateTask rename: %v", err)
	}
	if renamed.Name != "buy oat milk" || !renamed.Complete {
		t.Fatalf("rename must not reset complete: %+v", renamed)
	}

	tasks, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("unexpected list: %+v", tasks)
	}

	if err := c.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	tasks, err = c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks after delete: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %+v", tasks)
	}
}

func TestClientErrorMapping(t *testing.T) {
	c := newClientAndServer(t)
	ctx := context.Background()

	// Unauthenticated list
	if _, err := c.ListTasks(ctx); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("unauthenticated list error = %v, want ErrUnauthorized", err)
	}

	if _, err := c.Register(ctx, "ana", "x"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := c.Register(ctx, "ana", "x"); !errors.Is(err, common.ErrConflict) {
		t.Errorf("duplicate register error = %v, want ErrConflict", err)
	}
	if _, err := c.Login(ctx, "ana", "wrong"); !errors.Is(err, common.ErrUnauthorized) {
		t.Errorf("bad password error = %v, want ErrUnauthorized", err)
	}

	if _, err := c.Login(ctx, "ana", "x"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := c.CreateTask(ctx, "   "); !errors.Is(err, common.ErrBadRequest) {
		t.Errorf("blank name error = %v, want ErrBadRequest", err)
	}
	complete := true
	if _, err := c.UpdateTask(ctx, "no-such-id", TaskUpdate{Complete: &complete}); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
	if err := c.DeleteTask(ctx, "no-such-id"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("unknown delete error = %v, want ErrNotFound", err)
	}
}

func TestClientTokenEvictionOn401(t *testing.T) {
	c := newClientAndServer(t)
	ctx := context.Background()

	c.SetToken("not.a.real.token")
	if _, err := c.ListTasks(ctx); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("garbage token error = %v, want ErrUnauthorized", err)
	}
}
