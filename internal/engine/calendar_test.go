package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arcane/internal/storage"
)

func TestSummarizeDay(t *testing.T) {
	day := date(2026, time.March, 10)
	quests := []storage.Quest{
		{ID: "a", XP: 50, Completed: true, DueDate: day},
		{ID: "b", XP: 30, DueDate: day},
		{ID: "c", XP: 10, DueDate: day.AddDays(1)},
		{ID: "d", XP: 10, Completed: true, DueDate: day.AddDays(2)},
	}

	got := SummarizeDay(quests, day)
	assert.Equal(t, DayPartial, got.Status)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 1, got.Completed)
	assert.Equal(t, 50, got.XP)

	assert.Equal(t, DayIncomplete, SummarizeDay(quests, day.AddDays(1)).Status)
	assert.Equal(t, DayComplete, SummarizeDay(quests, day.AddDays(2)).Status)
	assert.Equal(t, DayNone, SummarizeDay(quests, day.AddDays(3)).Status)

	month := MonthCalendar(quests, 2026, time.March)
	require.Len(t, month, 31)
	assert.Equal(t, got, month[9])
	assert.Equal(t, DayNone, month[0].Status)
	assert.Len(t, MonthCalendar(nil, 2028, time.February), 29)
}

func TestServiceCalendar(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	q := addQuest(t, svc, sess, NewQuest{Title: "Buy milk"})
	_, err := svc.CompleteQuest(ctx, sess, q.ID)
	require.NoError(t, err)

	days, err := svc.Calendar(ctx, sess, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, DayComplete, days[9].Status)
	assert.Equal(t, 30, days[9].XP)
}
