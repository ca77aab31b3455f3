package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcane/internal/storage"
)

func addQuest(t *testing.T, svc *Service, sess Session, in NewQuest) *storage.Quest {
	t.Helper()
	q, err := svc.AddQuest(context.Background(), sess, in)
	require.NoError(t, err)
	return q
}

func TestAwardedXP(t *testing.T) {
	assert.Equal(t, 50, AwardedXP(50, false, false))
	assert.Equal(t, 25, AwardedXP(50, false, true))
	assert.Equal(t, 5, AwardedXP(10, false, true))
	assert.Equal(t, 0, AwardedXP(50, true, false))
	assert.Equal(t, 0, AwardedXP(50, true, true))
}

func TestCompleteQuestAwardsXP(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	q := addQuest(t, svc, sess, NewQuest{Title: "Submit report"})
	require.Equal(t, 50, q.XP)

	res, err := svc.CompleteQuest(ctx, sess, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, res.XPAwarded)
	assert.False(t, res.Blocked)
	assert.False(t, res.LevelUp)
	assert.Equal(t, 1, res.Streak)

	u := getUser(t, svc, sess)
	assert.Equal(t, 50, u.XP)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, "QUEST COMPLETED +50 XP", messageTexts(t, svc, sess)[0])

	_, err = svc.CompleteQuest(ctx, sess, q.ID)
	assert.ErrorIs(t, err, ErrQuestCompleted)
	_, err = svc.CompleteQuest(ctx, sess, "missing")
	assert.ErrorIs(t, err, ErrQuestNotFound)
	_, err = svc.CompleteQuest(ctx, Session{UserID: "ghost"}, q.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// Failed attempts leave XP alone.
	assert.Equal(t, 50, getUser(t, svc, sess).XP)
}

func TestCompleteQuestLevelUp(t *testing.T) {
	svc, _ := newTestService(t)
	sess := newTestUser(t, svc)
	mutateUser(t, svc, sess, func(u *storage.User) { u.XP = 80 })

	q := addQuest(t, svc, sess, NewQuest{Title: "Submit report"})
	res, err := svc.CompleteQuest(context.Background(), sess, q.ID)
	require.NoError(t, err)
	assert.True(t, res.LevelUp)
	assert.Equal(t, 1, res.LevelBefore)
	assert.Equal(t, 2, res.LevelAfter)
	assert.Equal(t, "Awakened", RankOf(getUser(t, svc, sess).XP).Name)

	msgs := messageTexts(t, svc, sess)
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Equal(t, "LEVEL UP! NOW LEVEL 2", msgs[0])
	assert.Equal(t, "QUEST COMPLETED +50 XP", msgs[1])
}

func TestCompleteQuestWhileLocked(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)
	mutateUser(t, svc, sess, func(u *storage.User) {
		u.XPLocked = true
		u.ConsecutiveMissedDays = 1
	})

	first := addQuest(t, svc, sess, NewQuest{Title: "Submit report"})
	second := addQuest(t, svc, sess, NewQuest{Title: "Buy milk"})

	res, err := svc.CompleteQuest(ctx, sess, first.ID)
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Zero(t, res.XPAwarded)
	assert.False(t, res.Stabilized)
	assert.Equal(t, msgXPBlocked, messageTexts(t, svc, sess)[0])

	u := getUser(t, svc, sess)
	assert.Zero(t, u.XP)
	assert.True(t, u.XPLocked)

	done, err := svc.Quest(ctx, sess, first.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	res, err = svc.CompleteQuest(ctx, sess, second.ID)
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.True(t, res.Stabilized)

	u = getUser(t, svc, sess)
	assert.False(t, u.XPLocked)
	assert.Zero(t, u.ConsecutiveMissedDays)
	assert.Equal(t, msgStabilized, messageTexts(t, svc, sess)[0])
}

func TestCompleteQuestWhileReduced(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)
	mutateUser(t, svc, sess, func(u *storage.User) { u.XPReduced = true })

	q := addQuest(t, svc, sess, NewQuest{Title: "Submit report"})
	addQuest(t, svc, sess, NewQuest{Title: "Buy milk"})

	res, err := svc.CompleteQuest(ctx, sess, q.ID)
	require.NoError(t, err)
	assert.True(t, res.Reduced)
	assert.Equal(t, 25, res.XPAwarded)
	assert.False(t, res.Stabilized)

	u := getUser(t, svc, sess)
	assert.Equal(t, 25, u.XP)
	assert.True(t, u.XPReduced)
}

func TestCompleteQuestStreak(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	complete := func(title string) *CompleteResult {
		t.Helper()
		q := addQuest(t, svc, sess, NewQuest{Title: title})
		res, err := svc.CompleteQuest(ctx, sess, q.ID)
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, 1, complete("Buy milk").Streak)
	assert.Equal(t, 1, complete("Buy bread").Streak, "a day counts once")

	clock.advanceDays(1)
	assert.Equal(t, 2, complete("Buy eggs").Streak)

	clock.advanceDays(2)
	assert.Equal(t, 1, complete("Buy rice").Streak, "a gap restarts the streak")
	assert.Equal(t, svc.Today(), getUser(t, svc, sess).LastActiveDate)
}

func TestCompleteRecurringQuest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	daily := addQuest(t, svc, sess, NewQuest{Title: "Morning workout", Recurring: true, IsDaily: true})
	res, err := svc.CompleteQuest(ctx, sess, daily.ID)
	require.NoError(t, err)
	require.NotEmpty(t, res.NextQuestID)

	next, err := svc.Quest(ctx, sess, res.NextQuestID)
	require.NoError(t, err)
	assert.False(t, next.Completed)
	assert.Equal(t, date(2026, 3, 11), next.DueDate)
	assert.Equal(t, daily.XP, next.XP)
	assert.Equal(t, daily.Title, next.Title)

	weekly := addQuest(t, svc, sess, NewQuest{Title: "Team meeting", Recurring: true, RecurringDays: []int{1}})
	res, err = svc.CompleteQuest(ctx, sess, weekly.ID)
	require.NoError(t, err)
	next, err = svc.Quest(ctx, sess, res.NextQuestID)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 16), next.DueDate)

	once := addQuest(t, svc, sess, NewQuest{Title: "Buy milk"})
	res, err = svc.CompleteQuest(ctx, sess, once.ID)
	require.NoError(t, err)
	assert.Empty(t, res.NextQuestID)

	quests, err := svc.Quests(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, quests, 5)
}
