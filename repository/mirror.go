// Package repository mirrors the in-memory store into a SQL database with
// gorm so the state survives restarts when a durable DSN is configured.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"checksync/model"
	"checksync/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Mirror writes every committed change through to the database. The
// in-memory store stays authoritative; write failures are logged only.
type Mirror struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewMirror(db *gorm.DB, log *slog.Logger) *Mirror {
	if log == nil {
		log = slog.Default()
	}
	return &Mirror{db: db, log: log}
}

// Migrate creates or updates the tables.
func (m *Mirror) Migrate() error {
	if err := m.db.AutoMigrate(
		&model.User{},
		&model.Checklist{},
		&model.Task{},
		&model.Comment{},
		&model.Activity{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// Observe implements store.Observer.
func (m *Mirror) Observe(ctx context.Context, ch store.Change) {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ch.Checklist != nil {
			if err := upsert(tx, ch.Checklist); err != nil {
				return fmt.Errorf("checklist %s: %w", ch.Checklist.ID, err)
			}
		}
		if ch.Task != nil {
			if err := upsert(tx, ch.Task); err != nil {
				return fmt.Errorf("task %s: %w", ch.Task.ID, err)
			}
		}
		if ch.Comment != nil {
			if err := tx.Create(ch.Comment).Error; err != nil {
				return fmt.Errorf("comment %s: %w", ch.Comment.ID, err)
			}
		}
		if ch.Activity != nil {
			if err := tx.Create(ch.Activity).Error; err != nil {
				return fmt.Errorf("activity %s: %w", ch.Activity.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		m.log.Error("mirror write failed", "err", err)
	}
}

func upsert(tx *gorm.DB, v any) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(v).Error
}

// Empty reports whether no users have been stored yet.
func (m *Mirror) Empty(ctx context.Context) (bool, error) {
	var n int64
	if err := m.db.WithContext(ctx).Model(&model.User{}).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n == 0, nil
}

// Seed stores a whole state, typically the seed fixture on first start.
func (m *Mirror) Seed(ctx context.Context, s store.State) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(s.Users) > 0 {
			if err := upsert(tx, &s.Users); err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if len(s.Checklists) > 0 {
			if err := upsert(tx, &s.Checklists); err != nil {
				return fmt.Errorf("seed checklists: %w", err)
			}
		}
		if len(s.Tasks) > 0 {
			if err := upsert(tx, &s.Tasks); err != nil {
				return fmt.Errorf("seed tasks: %w", err)
			}
		}
		return nil
	})
}

// Load reads the full state back. Activities come newest first and are
// limited to store.MaxActivities.
func (m *Mirror) Load(ctx context.Context) (store.State, error) {
	db := m.db.WithContext(ctx)
	var s store.State

	if err := db.Order("user_id").Find(&s.Users).Error; err != nil {
		return store.State{}, fmt.Errorf("load users: %w", err)
	}
	if err := db.Order("created_at DESC").Order("checklist_id").Find(&s.Checklists).Error; err != nil {
		return store.State{}, fmt.Errorf("load checklists: %w", err)
	}
	if err := db.Order("position").Find(&s.Tasks).Error; err != nil {
		return store.State{}, fmt.Errorf("load tasks: %w", err)
	}
	if err := db.Order("created_at").Find(&s.Comments).Error; err != nil {
		return store.State{}, fmt.Errorf("load comments: %w", err)
	}
	if err := db.Order("timestamp DESC").Limit(store.MaxActivities).Find(&s.Activities).Error; err != nil {
		return store.State{}, fmt.Errorf("load activities: %w", err)
	}
	return s, nil
}
