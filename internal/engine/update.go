package engine

import (
	"context"
	"strings"

	"cloud.google.com/go/civil"

	"arcane/internal/storage"
)

// QuestPatch lists the editable quest fields. Priority and XP are fixed at
// creation; completion only goes through CompleteQuest.
type QuestPatch struct {
	Title         *string
	Description   *string
	DueDate       *civil.Date
	Recurring     *bool
	RecurringDays *[]int
	IsDaily       *bool
}

func (s *Service) UpdateQuest(ctx context.Context, sess Session, id string, patch QuestPatch) (*storage.Quest, error) {
	var title string
	if patch.Title != nil {
		t, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		title = t
	}
	if patch.RecurringDays != nil {
		if err := validateWeekdays(*patch.RecurringDays); err != nil {
			return nil, err
		}
	}

	var updated storage.Quest
	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		quests, err := tx.GetQuests(ctx, sess.UserID)
		if err != nil {
			return err
		}
		idx := questIndex(quests, id)
		if idx < 0 {
			return ErrQuestNotFound
		}
		q := &quests[idx]
		if patch.Title != nil {
			q.Title = title
		}
		if patch.Description != nil {
			q.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.DueDate != nil {
			q.DueDate = *patch.DueDate
		}
		if patch.Recurring != nil {
			q.Recurring = *patch.Recurring
		}
		if patch.RecurringDays != nil {
			q.RecurringDays = *patch.RecurringDays
		}
		if patch.IsDaily != nil {
			q.IsDaily = *patch.IsDaily
		}
		updated = *q
		return tx.SaveQuests(ctx, sess.UserID, quests)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Service) DeleteQuest(ctx context.Context, sess Session, id string) error {
	return s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		quests, err := tx.GetQuests(ctx, sess.UserID)
		if err != nil {
			return err
		}
		idx := questIndex(quests, id)
		if idx < 0 {
			return ErrQuestNotFound
		}
		quests = append(quests[:idx], quests[idx+1:]...)
		return tx.SaveQuests(ctx, sess.UserID, quests)
	})
}
