// Package seed loads the mock users, checklists and tasks the service
// starts with.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"checksync/model"
	"checksync/store"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultFixture []byte

type fixture struct {
	Users      []model.User      `yaml:"users"`
	Checklists []model.Checklist `yaml:"checklists"`
	Tasks      []model.Task      `yaml:"tasks"`
}

// Default returns the built-in fixture. Timestamps missing from the fixture
// are set to now.
func Default(now time.Time) (store.State, error) {
	return Parse(defaultFixture, now)
}

// Load reads a fixture file, or the built-in one when path is empty.
func Load(path string, now time.Time) (store.State, error) {
	if path == "" {
		return Default(now)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return store.State{}, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b, now)
}

func Parse(b []byte, now time.Time) (store.State, error) {
	var f fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return store.State{}, fmt.Errorf("decode seed: %w", err)
	}

	checklists := make(map[string]bool, len(f.Checklists))
	for i := range f.Checklists {
		c := &f.Checklists[i]
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
		checklists[c.ID] = true
	}
	tasks := make(map[string]bool, len(f.Tasks))
	for i := range f.Tasks {
		t := &f.Tasks[i]
		if !checklists[t.ChecklistID] {
			return store.State{}, fmt.Errorf("seed task %s: unknown checklist %q", t.ID, t.ChecklistID)
		}
		if (t.CompletedBy == "") != (t.CompletedAt == nil) {
			return store.State{}, fmt.Errorf("seed task %s: completedBy and completedAt must be set together", t.ID)
		}
		if t.Priority == "" {
			t.Priority = model.PriorityMedium
		}
		if !t.Priority.Valid() {
			return store.State{}, fmt.Errorf("seed task %s: bad priority %q", t.ID, t.Priority)
		}
		if t.AssignedTo == nil {
			t.AssignedTo = []string{}
		}
		t.Position = i
		tasks[t.ID] = true
	}

	return store.State{
		Users:      f.Users,
		Checklists: f.Checklists,
		Tasks:      f.Tasks,
	}, nil
}
