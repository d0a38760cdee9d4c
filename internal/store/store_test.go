package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgboard/internal/config"
	"msgboard/internal/database"
)

// stepClock returns start, then advances by step on every call.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{next: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// createTestStore opens a migrated SQLite database in a temp dir.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(ctx))
	return New(db.Gorm, opts...)
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	s := createTestStore(t, WithClock(newStepClock(epoch, time.Second).Now))
	ctx := context.Background()

	msg, err := s.Create(ctx, "hi", "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(1), msg.ID)
	assert.Equal(t, "hi", msg.Body)
	assert.Equal(t, "alice", msg.Username)
	assert.Equal(t, epoch, msg.CreatedAt)
	assert.Equal(t, msg.CreatedAt, msg.UpdatedAt)

	second, err := s.Create(ctx, "again", "bob")
	require.NoError(t, err)
	assert.Greater(t, second.ID, msg.ID)
}

func TestCreate_AcceptsEmptyStrings(t *testing.T) {
	s := createTestStore(t)

	msg, err := s.Create(context.Background(), "", "")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Empty(t, msg.Body)
}

func TestGetByID(t *testing.T) {
	s := createTestStore(t, WithClock(newStepClock(epoch, time.Second).Now))
	ctx := context.Background()

	created, err := s.Create(ctx, "hi", "alice")
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetByID_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAll_Empty(t *testing.T) {
	s := createTestStore(t)

	msgs, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestListAll_OrderedByCreatedAtThenID(t *testing.T) {
	times := []time.Time{
		epoch.Add(2 * time.Second),
		epoch,
		epoch.Add(2 * time.Second),
		epoch.Add(500 * time.Millisecond),
	}
	i := 0
	s := createTestStore(t, WithClock(func() time.Time {
		now := times[i]
		i++
		return now
	}))
	ctx := context.Background()

	for _, body := range []string{"c", "a", "d", "b"} {
		_, err := s.Create(ctx, body, "alice")
		require.NoError(t, err)
	}

	msgs, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	var bodies []string
	for i, m := range msgs {
		bodies = append(bodies, m.Body)
		if i > 0 {
			assert.False(t, m.CreatedAt.Before(msgs[i-1].CreatedAt), "created_at must be non-decreasing")
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, bodies)
	assert.Less(t, msgs[2].ID, msgs[3].ID, "ties are broken by id")
}

func TestUpdate_ChangesOnlyBodyAndUpdatedAt(t *testing.T) {
	s := createTestStore(t, WithClock(newStepClock(epoch, time.Second).Now))
	ctx := context.Background()

	created, err := s.Create(ctx, "hi", "alice")
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, "hello")
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "hello", updated.Body)
	assert.Equal(t, created.Username, updated.Username)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	stored, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)
}

func TestUpdate_UpdatedAtNeverMovesBackwards(t *testing.T) {
	times := []time.Time{epoch, epoch.Add(-time.Hour)}
	i := 0
	s := createTestStore(t, WithClock(func() time.Time {
		now := times[i]
		i++
		return now
	}))
	ctx := context.Background()

	created, err := s.Create(ctx, "hi", "alice")
	require.NoError(t, err)

	updated, err := s.Update(ctx, created.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
}

func TestUpdate_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Update(context.Background(), 42, "hello")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, "bye", "alice")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, created.ID), ErrNotFound)
}

func TestDelete_DoesNotReuseIDs(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := s.Create(ctx, "one", "alice")
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, first.ID))

	second, err := s.Create(ctx, "two", "alice")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCanceledContext(t *testing.T) {
	s := createTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Create(ctx, "hi", "alice")
	assert.Error(t, err)
}
