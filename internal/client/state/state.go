// Package state computes what the task screen shows from the in-memory task
// list and the active filter. It has no terminal coupling so the view logic
// is testable on its own.
package state

import (
	"time"

	"taskdeck/internal/domain/model"
)

// Filter is pure view state; it is never sent to the server.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterPending  Filter = "pending"
	FilterComplete Filter = "complete"
)

// Next cycles all -> pending -> complete -> all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterPending
	case FilterPending:
		return FilterComplete
	default:
		return FilterAll
	}
}

type Row struct {
	ID        string
	Name      string
	Complete  bool
	CreatedAt time.Time
}

type ViewModel struct {
	Rows         []Row
	PendingCount int
	TotalCount   int
	EmptyMessage string
}

// Matches reports whether a task is visible under the filter.
func (f Filter) Matches(t model.Task) bool {
	switch f {
	case FilterPending:
		return !t.Complete
	case FilterComplete:
		return t.Complete
	default:
		return true
	}
}

// ComputeView is recomputed from the full list on every render; it never
// mutates its input.
func ComputeView(tasks []model.Task, filter Filter) ViewModel {
	vm := ViewModel{TotalCount: len(tasks)}

	for _, t := range tasks {
		if !t.Complete {
			vm.PendingCount++
		}
		if filter.Matches(t) {
			vm.Rows = append(vm.Rows, Row{
				ID:        t.ID,
				Name:      t.Name,
				Complete:  t.Complete,
				CreatedAt: time.UnixMilli(t.CreatedAt),
			})
		}
	}

	if len(vm.Rows) == 0 {
		if vm.TotalCount == 0 {
			vm.EmptyMessage = "No tasks yet. Add one to get started."
		} else {
			vm.EmptyMessage = "No tasks match this filter."
		}
	}
	return vm
}
