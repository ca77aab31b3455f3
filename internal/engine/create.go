package engine

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"arcane/internal/storage"
)

type NewQuest struct {
	Title       string
	Description string
	// DueDate defaults to today.
	DueDate       *civil.Date
	Recurring     bool
	RecurringDays []int
	IsDaily       bool
}

func validateWeekdays(days []int) error {
	for _, d := range days {
		if d < 0 || d > 6 {
			return InvalidWeekdayError{Day: d}
		}
	}
	return nil
}

func (s *Service) newQuest(d QuestDraft) storage.Quest {
	return storage.Quest{
		ID:          newID(),
		Title:       d.Title,
		Description: d.Description,
		Priority:    string(d.Priority),
		XP:          d.XP,
		Completed:   d.Completed,
		DueDate:     d.DueDate,
		CreatedAt:   s.now().UTC(),
		Recurring:   d.Recurring,
	}
}

// AddQuest classifies and stores a manually entered quest. Its XP is fixed
// here and never recalculated.
func (s *Service) AddQuest(ctx context.Context, sess Session, in NewQuest) (*storage.Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if err := validateWeekdays(in.RecurringDays); err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Description)
	due := s.Today()
	if in.DueDate != nil {
		due = *in.DueDate
	}

	p := DeterminePriority(title, desc)
	q := s.newQuest(QuestDraft{
		Title:       title,
		Description: desc,
		Priority:    p,
		XP:          XPForPriority(p),
		DueDate:     due,
		Recurring:   in.Recurring,
	})
	q.RecurringDays = in.RecurringDays
	q.IsDaily = in.IsDaily

	err = s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		return s.storeQuests(ctx, tx, sess.UserID, q)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// AddPlan parses planText and stores every resulting quest.
func (s *Service) AddPlan(ctx context.Context, sess Session, planText string) ([]storage.Quest, error) {
	var created []storage.Quest
	for d := range PlanDrafts(planText, s.Today()) {
		created = append(created, s.newQuest(d))
	}
	if len(created) == 0 {
		return nil, nil
	}

	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		return s.storeQuests(ctx, tx, sess.UserID, created...)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) storeQuests(ctx context.Context, tx *storage.Store, userID string, add ...storage.Quest) error {
	u, err := tx.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	quests, err := tx.GetQuests(ctx, userID)
	if err != nil {
		return err
	}
	quests = append(quests, add...)
	if err := tx.SaveQuests(ctx, userID, quests); err != nil {
		return err
	}
	for _, q := range add {
		if _, err := s.appendMessage(ctx, tx, userID, fmt.Sprintf("SYSTEM ASSIGNED +%d XP", q.XP), MessageInfo); err != nil {
			return err
		}
	}
	return nil
}

// Quests returns all of the session user's quests in creation order.
func (s *Service) Quests(ctx context.Context, sess Session) ([]storage.Quest, error) {
	return s.store.GetQuests(ctx, sess.UserID)
}

// Quest looks up one quest; ErrQuestNotFound when absent.
func (s *Service) Quest(ctx context.Context, sess Session, id string) (*storage.Quest, error) {
	quests, err := s.store.GetQuests(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	idx := questIndex(quests, id)
	if idx < 0 {
		return nil, ErrQuestNotFound
	}
	return &quests[idx], nil
}
