package store

import (
	"context"
	"sync"

	"checksync/model"
)

// Observer is told about every committed change in commit order. Readers
// are not blocked while observers run.
type Observer interface {
	Observe(ctx context.Context, ch Change)
}

type ObserverFunc func(ctx context.Context, ch Change)

func (f ObserverFunc) Observe(ctx context.Context, ch Change) { f(ctx, ch) }

// Reducer is any function that derives the next State.
type Reducer func(s State) (State, Change, error)

// Store owns the current State. Apply is the only way to replace it.
type Store struct {
	mu        sync.RWMutex
	state     State
	env       Env
	observers []Observer
	committed uint64

	// Observers run for commit n only after commit n-1 was published.
	order     sync.Mutex
	turn      *sync.Cond
	published uint64
}

func New(initial State, env Env, observers ...Observer) *Store {
	s := &Store{state: initial, env: env, observers: observers}
	s.turn = sync.NewCond(&s.order)
	return s
}

// Observe registers o for changes committed after this call.
func (s *Store) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

func (s *Store) Env() Env { return s.env }

// Snapshot returns the current State. Callers must not modify its slices.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Apply runs fn against the current State and commits the result. A failed
// or empty change leaves the State as it was and notifies nobody.
func (s *Store) Apply(ctx context.Context, fn Reducer) (Change, error) {
	s.mu.Lock()
	next, ch, err := fn(s.state)
	if err != nil {
		s.mu.Unlock()
		return ch, err
	}
	if ch.Empty() {
		s.mu.Unlock()
		return ch, nil
	}
	s.state = next
	seq := s.committed
	s.committed++
	observers := s.observers
	s.mu.Unlock()

	s.order.Lock()
	for s.published != seq {
		s.turn.Wait()
	}
	s.order.Unlock()
	defer s.advance()

	for _, o := range observers {
		o.Observe(ctx, ch)
	}
	return ch, nil
}

func (s *Store) advance() {
	s.order.Lock()
	s.published++
	s.order.Unlock()
	s.turn.Broadcast()
}

func (s *Store) ToggleTask(ctx context.Context, actor model.User, taskID string) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return ToggleTask(st, s.env, actor, taskID)
	})
}

func (s *Store) AddTask(ctx context.Context, actor model.User, task model.Task) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return AddTask(st, s.env, actor, task)
	})
}

func (s *Store) AddChecklist(ctx context.Context, actor model.User, c model.Checklist) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return AddChecklist(st, s.env, actor, c)
	})
}

func (s *Store) UpdateTask(ctx context.Context, actor model.User, taskID string, patch TaskPatch) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return UpdateTask(st, s.env, actor, taskID, patch)
	})
}

func (s *Store) UpdateChecklist(ctx context.Context, checklistID string, patch ChecklistPatch) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return UpdateChecklist(st, s.env, checklistID, patch)
	})
}

func (s *Store) AddComment(ctx context.Context, actor model.User, taskID, text string) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return AddComment(st, s.env, actor, taskID, text)
	})
}

func (s *Store) Simulate(ctx context.Context, collaborator model.User, taskID string) (Change, error) {
	return s.Apply(ctx, func(st State) (State, Change, error) {
		return Simulate(st, s.env, collaborator, taskID)
	})
}
