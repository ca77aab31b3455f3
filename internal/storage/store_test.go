package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db, nil)
}

func TestUserRoundTripAndLookup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	day := civil.Date{Year: 2026, Month: time.March, Day: 4}
	alice := &User{ID: "u1", Username: "Alice", Email: "alice@example.com", XP: 120, LastActiveDate: day, CreatedAt: time.Now()}
	bob := &User{ID: "u2", Username: "alice@example.com", Email: "bob@example.com", CreatedAt: time.Now().Add(time.Second), LastActiveDate: day}
	require.NoError(t, s.SaveUser(ctx, alice))
	require.NoError(t, s.SaveUser(ctx, bob))

	got, err := s.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 120, got.XP)
	assert.Equal(t, day, got.LastActiveDate)
	assert.Nil(t, got.LastStreakDate)

	byName, err := s.FindUser(ctx, "ALICE")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, "u1", byName.ID)

	// An email match outranks a username that happens to look like an email.
	byEmail, err := s.FindUser(ctx, "Alice@Example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "u1", byEmail.ID)

	missing, err := s.FindUser(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
}

func TestMalformedRecordsFallBackToEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.DB().ExecContext(ctx, `INSERT INTO records (bucket, key, data) VALUES ('users', 'bad', '{nope'), ('quests', 'bad', '[{')`)
	require.NoError(t, err)

	u, err := s.GetUser(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, u)

	quests, err := s.GetQuests(ctx, "bad")
	require.NoError(t, err)
	assert.Empty(t, quests)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAtomicRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.Atomic(ctx, func(tx *Store) error {
		if err := tx.SaveQuests(ctx, "u1", []Quest{{ID: "q1", Title: "Write report"}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	quests, err := s.GetQuests(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, quests)

	err = s.Atomic(ctx, func(tx *Store) error {
		return tx.Atomic(ctx, func(inner *Store) error {
			return inner.SaveQuests(ctx, "u1", []Quest{{ID: "q1", Title: "Write report"}})
		})
	})
	require.NoError(t, err)

	quests, err = s.GetQuests(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, quests, 1)
	assert.Equal(t, "q1", quests[0].ID)
}

func TestMessagesAndSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMessages(ctx, "u1", []SystemMessage{{ID: "m1", Message: "SYSTEM STABILIZED", Type: "success"}}))
	msgs, err := s.GetMessages(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, s.ClearMessages(ctx, "u1"))
	msgs, err = s.GetMessages(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	id, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SetCurrentSession(ctx, "u1"))
	id, err = s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	require.NoError(t, s.ClearCurrentSession(ctx))
	id, err = s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}
