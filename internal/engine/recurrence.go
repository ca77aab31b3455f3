package engine

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"arcane/internal/storage"
)

// civilWeekday maps a date to time.Weekday numbering (0 = Sunday).
func civilWeekday(d civil.Date) int {
	return int(d.In(time.UTC).Weekday())
}

// NextOccurrence returns the due date of the next instance of a recurring
// quest after from. Daily quests and quests without weekdays repeat every
// day; otherwise the next listed weekday is used.
func NextOccurrence(q storage.Quest, from civil.Date) (civil.Date, bool) {
	if !q.Recurring {
		return civil.Date{}, false
	}
	if q.IsDaily || len(q.RecurringDays) == 0 {
		return from.AddDays(1), true
	}
	for i := 1; i <= 7; i++ {
		d := from.AddDays(i)
		if slices.Contains(q.RecurringDays, civilWeekday(d)) {
			return d, true
		}
	}
	return civil.Date{}, false
}

// rollForward builds the next open instance of a completed recurring quest,
// keeping its fixed XP.
func (s *Service) rollForward(q storage.Quest) (storage.Quest, bool) {
	from := q.DueDate
	if today := s.Today(); today.After(from) {
		from = today
	}
	due, ok := NextOccurrence(q, from)
	if !ok {
		return storage.Quest{}, false
	}
	next := q
	next.ID = newID()
	next.Completed = false
	next.DueDate = due
	next.CreatedAt = s.now().UTC()
	next.RecurringDays = slices.Clone(q.RecurringDays)
	return next, true
}
