package engine

import (
	"context"
	"time"

	"cloud.google.com/go/civil"

	"arcane/internal/storage"
)

type DayStatus string

const (
	DayNone       DayStatus = "none"
	DayIncomplete DayStatus = "incomplete"
	DayPartial    DayStatus = "partial"
	DayComplete   DayStatus = "complete"
)

// QuestDay summarizes the quests due on one date.
type QuestDay struct {
	Date      civil.Date
	Status    DayStatus
	Total     int
	Completed int
	XP        int
}

// SummarizeDay builds the summary for day. XP counts completed quests only.
func SummarizeDay(quests []storage.Quest, day civil.Date) QuestDay {
	out := QuestDay{Date: day, Status: DayNone}
	for _, q := range QuestsDueOn(quests, day) {
		out.Total++
		if q.Completed {
			out.Completed++
			out.XP += q.XP
		}
	}
	switch {
	case out.Total == 0:
		out.Status = DayNone
	case out.Completed == out.Total:
		out.Status = DayComplete
	case out.Completed > 0:
		out.Status = DayPartial
	default:
		out.Status = DayIncomplete
	}
	return out
}

// MonthCalendar summarizes every day of the given month.
func MonthCalendar(quests []storage.Quest, year int, month time.Month) []QuestDay {
	first := civil.Date{Year: year, Month: month, Day: 1}
	var out []QuestDay
	for d := first; d.Month == month; d = d.AddDays(1) {
		out = append(out, SummarizeDay(quests, d))
	}
	return out
}

func (s *Service) Calendar(ctx context.Context, sess Session, year int, month time.Month) ([]QuestDay, error) {
	quests, err := s.store.GetQuests(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	return MonthCalendar(quests, year, month), nil
}
