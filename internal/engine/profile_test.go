package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcane/internal/storage"
)

func earned(ms []Milestone) map[string]bool {
	out := make(map[string]bool, len(ms))
	for _, m := range ms {
		out[m.ID] = m.Earned
	}
	return out
}

func TestMilestoneChecker(t *testing.T) {
	u := storage.User{XP: 850, Streak: 7, XPReduced: true}
	quests := make([]storage.Quest, 12)
	for i := range 10 {
		quests[i].Completed = true
	}

	c := NewMilestoneChecker(u, quests)
	got := earned(c.Milestones())
	assert.True(t, got["first_quest"])
	assert.True(t, got["productive"])
	assert.False(t, got["relentless"])
	assert.True(t, got["awakened"])
	assert.True(t, got["reaper"])
	assert.False(t, got["sovereign"])
	assert.True(t, got["week_streak"])
	assert.False(t, got["stable"])
	assert.Equal(t, 5, c.CountEarned())
}

func TestStatusAndProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)
	mutateUser(t, svc, sess, func(u *storage.User) { u.XP = 70 })

	q := addQuest(t, svc, sess, NewQuest{Title: "Submit report"})
	addQuest(t, svc, sess, NewQuest{Title: "Buy milk"})
	tomorrow := svc.Today().AddDays(1)
	addQuest(t, svc, sess, NewQuest{Title: "Relax", DueDate: &tomorrow})
	_, err := svc.CompleteQuest(ctx, sess, q.ID)
	require.NoError(t, err)

	st, err := svc.Status(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 120, st.User.XP)
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, "Awakened", st.Rank.Name)
	assert.True(t, st.HasNextRank)
	assert.Equal(t, "Branded", st.NextRank.Name)
	assert.Equal(t, 2, st.TodayTotal)
	assert.Equal(t, 1, st.TodayCompleted)

	p, err := svc.Profile(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CompletedQuests)
	assert.Equal(t, 50, p.XPFromQuests)
	assert.Len(t, p.Ladder, len(Ranks))
	assert.True(t, earned(p.Milestones)["first_quest"])
	// first quest, Awakened, stable
	assert.Equal(t, 3, p.Earned)

	_, err = svc.Status(ctx, Session{UserID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
