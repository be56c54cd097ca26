// Package storage persists collections as single pretty-printed JSON array
// files, rewritten wholesale on every mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
)

// Collection is a JSON-array file holding every record of one entity type.
// The mutex serializes whole read-modify-write sequences so concurrent
// mutations on the same collection cannot lose updates.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

func NewCollection[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Load returns every record in insertion order. A missing file is an empty
// collection; any other read failure is logged and also degrades to empty,
// so reads never fail outright.
func (c *Collection[T]) Load() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Update runs fn on the current records under the collection lock and, if fn
// succeeds, rewrites the file with its result.
func (c *Collection[T]) Update(fn func(records []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated, err := fn(c.load())
	if err != nil {
		return err
	}
	return c.save(updated)
}

func (c *Collection[T]) load() []T {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("Error reading %s: %v", c.path, err)
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Error parsing %s: %v", c.path, err)
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	return records
}

func (c *Collection[T]) save(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.path, err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		log.Printf("Error writing %s: %v", c.path, err)
		return fmt.Errorf("write %s: %w", c.path, err)
	}
	return nil
}
