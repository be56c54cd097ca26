package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c := NewCollection[record](filepath.Join(t.TempDir(), "missing.json"))
	if got := c.Load(); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d records", len(got))
	}
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := NewCollection[record](path)
	if got := c.Load(); len(got) != 0 {
		t.Fatalf("expected degraded empty collection, got %d records", len(got))
	}
}

func TestSaveLoadRoundTripPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	c := NewCollection[record](path)

	want := []record{{"3", "c"}, {"1", "a"}, {"2", "b"}}
	if err := c.Update(func([]record) ([]record, error) { return want, nil }); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := c.Load()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveIsPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	c := NewCollection[record](path)

	if err := c.Update(func([]record) ([]record, error) {
		return []record{{"1", "a"}}, nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("expected indented output, got %q", string(data))
	}
}

func TestUpdateErrorLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	c := NewCollection[record](path)

	if err := c.Update(func([]record) ([]record, error) {
		return []record{{"1", "a"}}, nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := c.Update(func([]record) ([]record, error) {
		return nil, fmt.Errorf("boom")
	}); err == nil {
		t.Fatal("expected error from failed update")
	}

	if got := c.Load(); len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected original record to survive, got %+v", got)
	}
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	c := NewCollection[record](path)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := c.Update(func(records []record) ([]record, error) {
				return append(records, record{ID: fmt.Sprintf("%d", n)}), nil
			})
			if err != nil {
				t.Errorf("update %d: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	if got := c.Load(); len(got) != writers {
		t.Fatalf("lost updates: expected %d records, got %d", writers, len(got))
	}
}
