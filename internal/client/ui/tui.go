// Package ui is the terminal frontend: an auth screen and a task table over
// the REST API. Every mutation is request-then-full-refetch; nothing is
// patched locally before the server confirms.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	clientapi "taskdeck/internal/client/api"
	"taskdeck/internal/client/session"
	"taskdeck/internal/client/state"
	"taskdeck/internal/common"
	"taskdeck/internal/domain/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Errors auto-clear after this window.
const errorDisplayWindow = 3 * time.Second

type screen int

const (
	screenAuth screen = iota
	screenTasks
)

type (
	tasksLoadedMsg  struct{ tasks []model.Task }
	loggedInMsg     struct{ token string }
	registeredMsg   struct{}
	mutationDoneMsg struct{}
	requestFailed   struct{ err error }
	clearErrorMsg   struct{ seq int }
)

type Model struct {
	client *clientapi.Client
	sess   *session.Store

	screen screen

	// Auth screen
	loginMode     bool
	usernameInput textinput.Model
	passwordInput textinput.Model
	authFocus     int

	// Task screen
	tasks           []model.Task
	filter          state.Filter
	cursor          int
	adding          bool
	newInput        textinput.Model
	editingID       string
	editInput       textinput.Model
	confirmDeleteID string

	status   string
	errMsg   string
	errSeq   int
	quitting bool
}

func New(client *clientapi.Client, sess *session.Store) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64
	password.Width = 32

	newTask := textinput.New()
	newTask.Placeholder = "what needs doing?"
	newTask.CharLimit = 128
	newTask.Width = 48

	edit := textinput.New()
	edit.CharLimit = 128
	edit.Width = 48

	m := Model{
		client:        client,
		sess:          sess,
		loginMode:     true,
		usernameInput: username,
		passwordInput: password,
		newInput:      newTask,
		editInput:     edit,
		filter:        state.FilterAll,
	}

	// A stored token counts as a session without any local expiry check; if
	// it is stale the first request comes back 401 and evicts it.
	if token, err := sess.LoadToken(); err == nil && token != "" {
		client.SetToken(token)
		m.screen = screenTasks
	} else {
		m.usernameInput.Focus()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenTasks {
		return m.fetchTasks()
	}
	return textinput.Blink
}

// --- Commands ---

func (m Model) fetchTasks() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		tasks, err := client.ListTasks(context.Background())
		if err != nil {
			return requestFailed{err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func (m Model) submitAuth() tea.Cmd {
	client := m.client
	login := m.loginMode
	username := m.usernameInput.Value()
	password := m.passwordInput.Value()
	return func() tea.Msg {
		if login {
			token, err := client.Login(context.Background(), username, password)
			if err != nil {
				return requestFailed{err}
			}
			return loggedInMsg{token: token}
		}
		if _, err := client.Register(context.Background(), username, password); err != nil {
			return requestFailed{err}
		}
		return registeredMsg{}
	}
}

func (m Model) createTask(name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if _, err := client.CreateTask(context.Background(), name); err != nil {
			return requestFailed{err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) updateTask(id string, update clientapi.TaskUpdate) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if _, err := client.UpdateTask(context.Background(), id, update); err != nil {
			return requestFailed{err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) deleteTask(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), id); err != nil {
			return requestFailed{err}
		}
		return mutationDoneMsg{}
	}
}

func (m Model) cacheTasks(tasks []model.Task) tea.Cmd {
	sess := m.sess
	return func() tea.Msg {
		// Legacy write-through cache; never read back during a session.
		_ = sess.CacheTasks(tasks)
		return nil
	}
}

func (m *Model) showError(text string) tea.Cmd {
	m.errMsg = text
	m.errSeq++
	seq := m.errSeq
	return tea.Tick(errorDisplayWindow, func(time.Time) tea.Msg {
		return clearErrorMsg{seq: seq}
	})
}

func (m *Model) logout(reason string) tea.Cmd {
	_ = m.sess.ClearToken()
	m.client.SetToken("")
	m.tasks = nil
	m.cursor = 0
	m.adding = false
	m.editingID = ""
	m.confirmDeleteID = ""
	m.screen = screenAuth
	m.loginMode = true
	m.authFocus = 0
	m.passwordInput.Reset()
	m.passwordInput.Blur()
	m.usernameInput.Focus()
	if reason != "" {
		return tea.Batch(m.showError(reason), textinput.Blink)
	}
	return textinput.Blink
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		m.tasks = msg.tasks
		if rows := len(state.ComputeView(m.tasks, m.filter).Rows); m.cursor >= rows && rows > 0 {
			m.cursor = rows - 1
		} else if rows == 0 {
			m.cursor = 0
		}
		return m, m.cacheTasks(msg.tasks)

	case loggedInMsg:
		if err := m.sess.SaveToken(msg.token); err != nil {
			return m, m.showError("Could not persist session: " + err.Error())
		}
		m.screen = screenTasks
		m.status = ""
		m.usernameInput.Reset()
		m.passwordInput.Reset()
		return m, m.fetchTasks()

	case registeredMsg:
		// No auto-login after register; flip back to the login form.
		m.loginMode = true
		m.status = "Registered successfully. Please log in."
		m.passwordInput.Reset()
		return m, nil

	case mutationDoneMsg:
		return m, m.fetchTasks()

	case requestFailed:
		if errors.Is(msg.err, common.ErrUnauthorized) && m.screen == screenTasks {
			return m, m.logout("Session expired, please log in again")
		}
		return m, m.showError(msg.err.Error())

	case clearErrorMsg:
		if msg.seq == m.errSeq {
			m.errMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.screen == screenAuth {
			return m.updateAuth(msg)
		}
		return m.updateTasks(msg)
	}

	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.authFocus = (m.authFocus + 1) % 2
		if m.authFocus == 0 {
			m.passwordInput.Blur()
			return m, m.usernameInput.Focus()
		}
		m.usernameInput.Blur()
		return m, m.passwordInput.Focus()

	case "ctrl+t":
		m.loginMode = !m.loginMode
		m.status = ""
		m.errMsg = ""
		return m, nil

	case "enter":
		if strings.TrimSpace(m.usernameInput.Value()) == "" || m.passwordInput.Value() == "" {
			return m, m.showError("Username and password are required")
		}
		m.status = ""
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	if m.authFocus == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Input modes come first; navigation keys must not leak into them.
	if m.adding {
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(m.newInput.Value())
			if name == "" {
				return m, m.showError("Cannot add an empty task")
			}
			m.adding = false
			m.newInput.Reset()
			m.newInput.Blur()
			return m, m.createTask(name)
		case "esc":
			m.adding = false
			m.newInput.Reset()
			m.newInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.newInput, cmd = m.newInput.Update(msg)
		return m, cmd
	}

	if m.editingID != "" {
		switch msg.String() {
		case "enter":
			name := strings.TrimSpace(m.editInput.Value())
			if name == "" {
				return m, m.showError("Task name must not be empty")
			}
			id := m.editingID
			m.editingID = ""
			m.editInput.Blur()
			return m, m.updateTask(id, clientapi.TaskUpdate{Name: &name})
		case "esc":
			m.editingID = ""
			m.editInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		return m, cmd
	}

	if m.confirmDeleteID != "" {
		switch msg.String() {
		case "y":
			id := m.confirmDeleteID
			m.confirmDeleteID = ""
			return m, m.deleteTask(id)
		case "n", "esc":
			m.confirmDeleteID = ""
			return m, nil
		}
		return m, nil
	}

	vm := state.ComputeView(m.tasks, m.filter)

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(vm.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case "a":
		m.adding = true
		m.newInput.Reset()
		return m, tea.Batch(m.newInput.Focus(), textinput.Blink)

	case "e":
		if m.cursor >= len(vm.Rows) {
			return m, nil
		}
		row := vm.Rows[m.cursor]
		// Edit mode is exclusive: starting a new edit discards any
		// in-progress one before the field opens.
		m.editingID = row.ID
		m.editInput.SetValue(row.Name)
		return m, tea.Batch(m.editInput.Focus(), textinput.Blink)

	case " ":
		if m.cursor >= len(vm.Rows) {
			return m, nil
		}
		row := vm.Rows[m.cursor]
		complete := !row.Complete
		return m, m.updateTask(row.ID, clientapi.TaskUpdate{Complete: &complete})

	case "d":
		if m.cursor >= len(vm.Rows) {
			return m, nil
		}
		m.confirmDeleteID = vm.Rows[m.cursor].ID
		return m, nil

	case "f":
		m.filter = m.filter.Next()
		m.cursor = 0
		return m, nil

	case "1":
		m.filter = state.FilterAll
		m.cursor = 0
		return m, nil
	case "2":
		m.filter = state.FilterPending
		m.cursor = 0
		return m, nil
	case "3":
		m.filter = state.FilterComplete
		m.cursor = 0
		return m, nil

	case "r":
		return m, m.fetchTasks()

	case "ctrl+l":
		return m, m.logout("")
	}

	return m, nil
}

// --- View ---

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	header := HeaderStyle.Render(" TASKDECK ") + "\n"

	if m.screen == screenAuth {
		return header + m.viewAuth()
	}
	return header + m.viewTasks()
}

func (m Model) viewAuth() string {
	title := "Log In"
	action := "log in"
	toggleHint := "no account? ctrl+t to register"
	if !m.loginMode {
		title = "Register"
		action = "register"
		toggleHint = "have an account? ctrl+t to log in"
	}

	subHeader := SubHeaderStyle.Render(title) + "\n"

	content := LabelStyle.Render("Username") + m.usernameInput.View() + "\n" +
		LabelStyle.Render("Password") + m.passwordInput.View()

	if m.status != "" {
		content += "\n\n" + StatusTextStyle.Render(m.status)
	}
	if m.errMsg != "" {
		content += "\n\n" + ErrorTextStyle.Render("✘ "+m.errMsg)
	}

	body := CardStyle.Render(content)
	footer := FooterStyle.Render(fmt.Sprintf("▸ Enter: %s • Tab: switch field • %s • Ctrl+C: exit", action, toggleHint))

	return subHeader + body + "\n" + footer
}

func (m Model) viewTasks() string {
	vm := state.ComputeView(m.tasks, m.filter)

	subHeader := SubHeaderStyle.Render("Tasks — filter: ") + FilterStyle.Render(string(m.filter)) + "\n"

	var b strings.Builder
	if vm.EmptyMessage != "" {
		b.WriteString(MutedStyle.Render(vm.EmptyMessage))
	}
	for i, row := range vm.Rows {
		marker := "  "
		if i == m.cursor {
			marker = SelectedStyle.Render("▸ ")
		}

		checkbox := "[ ]"
		if row.Complete {
			checkbox = "[x]"
		}

		name := PendingStyle.Render(row.Name)
		if row.Complete {
			name = DoneStyle.Render(row.Name)
		}
		if row.ID == m.editingID {
			name = m.editInput.View()
		}

		created := MutedStyle.Render(row.CreatedAt.Format("Jan 2 2006 15:04"))

		b.WriteString(fmt.Sprintf("%s%s %s  %s", marker, checkbox, name, created))
		if i < len(vm.Rows)-1 {
			b.WriteString("\n")
		}
	}

	body := CardStyle.Render(b.String())

	plural := "s"
	if vm.PendingCount == 1 {
		plural = ""
	}
	counter := SubHeaderStyle.Render(fmt.Sprintf("%d task%s pending", vm.PendingCount, plural))

	var extra string
	if m.adding {
		extra = "\n" + CardStyle.Render(LabelStyle.Render("New task")+m.newInput.View())
	}
	if m.confirmDeleteID != "" {
		extra += "\n" + ConfirmStyle.Render("Delete this task permanently? (y/n)")
	}
	if m.errMsg != "" {
		extra += "\n" + ErrorTextStyle.Render("✘ "+m.errMsg)
	}

	footer := FooterStyle.Render("▸ a: add • e: edit • Space: toggle • d: delete • f/1/2/3: filter • r: refresh • Ctrl+L: logout • q: quit")

	return subHeader + body + "\n" + counter + extra + "\n" + footer
}
