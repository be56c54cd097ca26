package ui

import (
	"errors"
	"fmt"
	"testing"

	clientapi "taskdeck/internal/client/api"
	"taskdeck/internal/client/session"
	"taskdeck/internal/client/state"
	"taskdeck/internal/common"
	"taskdeck/internal/domain/model"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sess, err := session.NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}
	return New(clientapi.New("http://localhost:0"), sess)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartsUnauthenticatedWithoutToken(t *testing.T) {
	m := newTestModel(t)
	if m.screen != screenAuth {
		t.Fatal("fresh model should start on the auth screen")
	}
}

func TestStoredTokenRestoresSessionWithoutExpiryCheck(t *testing.T) {
	sess, err := session.NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}
	// Even a long-expired token counts; the server decides via 401.
	if err := sess.SaveToken("stale.but.present"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	client := clientapi.New("http://localhost:0")
	m := New(client, sess)
	if m.screen != screenTasks {
		t.Fatal("stored token should restore the task screen")
	}
	if client.Token() != "stale.but.present" {
		t.Errorf("client token = %q", client.Token())
	}
}

func TestFilterKeyCycles(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenTasks

	next, _ := m.Update(key("f"))
	m = next.(Model)
	if m.filter != state.FilterPending {
		t.Fatalf("filter = %q, want pending", m.filter)
	}

	next, _ = m.Update(key("f"))
	m = next.(Model)
	if m.filter != state.FilterComplete {
		t.Fatalf("filter = %q, want complete", m.filter)
	}
}

func TestErrorClearingRespectsSequence(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(requestFailed{err: errors.New("boom")})
	m = next.(Model)
	if m.errMsg != "boom" {
		t.Fatalf("errMsg = %q, want boom", m.errMsg)
	}
	if cmd == nil {
		t.Fatal("expected a clear timer command")
	}

	// A stale timer from an earlier error must not wipe a newer one.
	next, _ = m.Update(clearErrorMsg{seq: m.errSeq - 1})
	m = next.(Model)
	if m.errMsg != "boom" {
		t.Fatal("stale clear removed a live error")
	}

	next, _ = m.Update(clearErrorMsg{seq: m.errSeq})
	m = next.(Model)
	if m.errMsg != "" {
		t.Fatalf("errMsg = %q, want cleared", m.errMsg)
	}
}

func TestUnauthorizedOnTaskScreenEvictsSession(t *testing.T) {
	sess, err := session.NewStoreAt(t.TempDir())
	if err != nil {
		t.Fatalf("NewStoreAt: %v", err)
	}
	if err := sess.SaveToken("expired.token"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}

	client := clientapi.New("http://localhost:0")
	m := New(client, sess)

	next, _ := m.Update(requestFailed{err: fmt.Errorf("listing tasks: %w", common.ErrUnauthorized)})
	m = next.(Model)

	if m.screen != screenAuth {
		t.Fatal("401 should force the auth screen")
	}
	if client.Token() != "" {
		t.Error("401 should clear the client token")
	}
	if token, _ := sess.LoadToken(); token != "" {
		t.Error("401 should clear the persisted token")
	}
}

func TestEditIsExclusive(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenTasks
	m.tasks = []model.Task{
		{ID: "1", Name: "first"},
		{ID: "2", Name: "second"},
	}

	next, _ := m.Update(key("e"))
	m = next.(Model)
	if m.editingID != "1" {
		t.Fatalf("editingID = %q, want 1", m.editingID)
	}

	// Leave edit mode via esc, move down, edit again: the previous edit's
	// in-progress value is gone.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.editingID != "" {
		t.Fatal("esc should cancel the edit")
	}

	next, _ = m.Update(key("j"))
	m = next.(Model)
	next, _ = m.Update(key("e"))
	m = next.(Model)
	if m.editingID != "2" {
		t.Fatalf("editingID = %q, want 2", m.editingID)
	}
	if m.editInput.Value() != "second" {
		t.Fatalf("edit field = %q, want the fresh row value", m.editInput.Value())
	}
}

func TestBlankNewTaskIsRejectedLocally(t *testing.T) {
	m := newTestModel(t)
	m.screen = screenTasks

	next, _ := m.Update(key("a"))
	m = next.(Model)
	if !m.adding {
		t.Fatal("'a' should enter add mode")
	}

	m.newInput.SetValue("   ")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if m.errMsg == "" {
		t.Error("expected a validation error for a blank task")
	}
	if !m.adding {
		t.Error("add mode should stay open after a rejected submit")
	}
}
