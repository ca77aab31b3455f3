package engine

import (
	"iter"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

// MinPlanTitleLength drops stray fragments like "x" or "1." from pasted plans.
const MinPlanTitleLength = 3

var planBullet = regexp.MustCompile(`^[-*•\d.)\s]+`)

// QuestDraft is a quest that has been classified but not stored yet.
type QuestDraft struct {
	Title       string
	Description string
	Priority    Priority
	XP          int
	Completed   bool
	DueDate     civil.Date
	Recurring   bool
}

// PlanDrafts yields one draft per usable line of planText, in order.
func PlanDrafts(planText string, today civil.Date) iter.Seq[QuestDraft] {
	return func(yield func(QuestDraft) bool) {
		for line := range strings.Lines(planText) {
			if strings.TrimSpace(line) == "" {
				continue
			}
			title := strings.TrimSpace(planBullet.ReplaceAllString(line, ""))
			if utf8.RuneCountInString(title) < MinPlanTitleLength {
				continue
			}
			p := DeterminePriority(title, "")
			draft := QuestDraft{
				Title:     title,
				Priority:  p,
				XP:        XPForPriority(p),
				Completed: false,
				DueDate:   today,
				Recurring: false,
			}
			if !yield(draft) {
				return
			}
		}
	}
}

func ParsePlanIntoQuests(planText string, today civil.Date) []QuestDraft {
	return slices.Collect(PlanDrafts(planText, today))
}
