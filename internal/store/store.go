// Package store persists messages and owns their identity and timestamps.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"msgboard/internal/model"
)

// ErrNotFound is returned when no message has the requested id.
var ErrNotFound = errors.New("message not found")

// Store provides CRUD access to the messages table.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a Store on top of an open ORM session.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp returns the current time as it will be persisted.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// ListAll returns every message, oldest first. Equal created_at values are
// ordered by id.
func (s *Store) ListAll(ctx context.Context) ([]model.Message, error) {
	msgs := []model.Message{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// GetByID returns the message with the given id, or ErrNotFound.
func (s *Store) GetByID(ctx context.Context, id int64) (model.Message, error) {
	var msg model.Message
	err := s.db.WithContext(ctx).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Message{}, ErrNotFound
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("get message %d: %w", id, err)
	}
	return msg, nil
}

// Create inserts a new message. created_at and updated_at are the same instant.
func (s *Store) Create(ctx context.Context, body, username string) (model.Message, error) {
	now := s.timestamp()
	msg := model.Message{
		Body:      body,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&msg).Error
	})
	if err != nil {
		return model.Message{}, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

// Update replaces the body of an existing message and refreshes updated_at.
// username and created_at are left untouched.
func (s *Store) Update(ctx context.Context, id int64, body string) (model.Message, error) {
	var msg model.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&msg, id).Error; err != nil {
			return err
		}

		now := s.timestamp()
		// updated_at never moves backwards, even if the clock does.
		if now.Before(msg.UpdatedAt) {
			now = msg.UpdatedAt
		}

		if err := tx.Model(&model.Message{}).Where("id = ?", id).Updates(map[string]any{
			"body":       body,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}

		msg.Body = body
		msg.UpdatedAt = now
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Message{}, ErrNotFound
	}
	if err != nil {
		return model.Message{}, fmt.Errorf("update message %d: %w", id, err)
	}
	return msg, nil
}

// Delete permanently removes a message.
func (s *Store) Delete(ctx context.Context, id int64) error {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Message{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		return fmt.Errorf("delete message %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
