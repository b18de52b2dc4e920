// scheduler/scheduler.go
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"checksync/config"
	"checksync/store"

	"github.com/robfig/cron/v3"
)

// Simulator plays a random collaborator who now and then toggles a random
// task, so the activity feed and notifications move on their own.
type Simulator struct {
	store       *store.Store
	actingUser  string
	probability float64
	log         *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator(st *store.Store, cfg config.SimulatorConfig, rng *rand.Rand, log *slog.Logger) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{
		store:       st,
		actingUser:  cfg.ActingUser,
		probability: cfg.Probability,
		rng:         rng,
		log:         log,
	}
}

// Tick fires with the configured probability. The chosen collaborator is
// never the acting user; when the draw lands on them the tick does nothing.
func (s *Simulator) Tick(ctx context.Context) (store.Change, bool, error) {
	snap := s.store.Snapshot()
	if len(snap.Tasks) == 0 || len(snap.Users) == 0 {
		return store.Change{}, false, nil
	}

	s.mu.Lock()
	fire := s.rng.Float64() < s.probability
	task := snap.Tasks[s.rng.IntN(len(snap.Tasks))]
	user := snap.Users[s.rng.IntN(len(snap.Users))]
	s.mu.Unlock()

	if !fire || user.ID == s.actingUser {
		return store.Change{}, false, nil
	}
	ch, err := s.store.Simulate(ctx, user, task.ID)
	if err != nil {
		return store.Change{}, false, fmt.Errorf("simulate %s on %s: %w", user.ID, task.ID, err)
	}
	return ch, true, nil
}

type Scheduler struct {
	cron *cron.Cron
}

// StartScheduler runs sim on spec until Stop is called.
func StartScheduler(spec string, sim *Simulator) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		ch, fired, err := sim.Tick(context.Background())
		if err != nil {
			sim.log.Error("simulator tick failed", "err", err)
			return
		}
		if fired {
			sim.log.Info("simulated collaborator", "user", ch.Activity.UserID, "task", ch.Task.ID, "type", ch.Activity.Type)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("add cron job %q: %w", spec, err)
	}

	c.Start()
	sim.log.Info("scheduler started", "spec", spec)
	return &Scheduler{cron: c}, nil
}

// Stop prevents further ticks and waits for a running one to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
