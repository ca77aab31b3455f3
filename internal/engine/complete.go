package engine

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"arcane/internal/storage"
)

const msgXPBlocked = "XP GAIN BLOCKED — SYSTEM LOCKED"

type CompleteResult struct {
	QuestID     string
	XPAwarded   int
	Blocked     bool
	Reduced     bool
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
	Streak      int
	Stabilized  bool
	// NextQuestID is the follow-up instance created for a recurring quest.
	NextQuestID string
}

// AwardedXP is what completing a quest worth questXP pays out: nothing while
// locked, half (rounded down) while reduced.
func AwardedXP(questXP int, locked, reduced bool) int {
	switch {
	case locked:
		return 0
	case reduced:
		return questXP / 2
	default:
		return questXP
	}
}

// advanceStreak counts today toward the streak once.
func advanceStreak(u *storage.User, today civil.Date) {
	if u.LastStreakDate != nil {
		switch DaysBetween(*u.LastStreakDate, today) {
		case 0:
			if u.Streak > 0 {
				return
			}
		case 1:
			u.Streak++
			u.LastStreakDate = &today
			return
		}
	}
	u.Streak = 1
	u.LastStreakDate = &today
}

// CompleteQuest marks a quest done and pays out XP according to the user's
// penalty state. A recurring quest gets its next instance scheduled.
// Afterwards it tries to stabilize, so finishing the last quest of the day
// clears a lock.
func (s *Service) CompleteQuest(ctx context.Context, sess Session, questID string) (*CompleteResult, error) {
	var res *CompleteResult
	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		u, err := s.loadUser(ctx, tx, sess.UserID)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrUserNotFound
		}
		quests, err := tx.GetQuests(ctx, sess.UserID)
		if err != nil {
			return err
		}
		idx := questIndex(quests, questID)
		if idx < 0 {
			return ErrQuestNotFound
		}
		if quests[idx].Completed {
			return ErrQuestCompleted
		}
		quests[idx].Completed = true
		q := quests[idx]

		today := s.Today()
		r := &CompleteResult{
			QuestID:     q.ID,
			LevelBefore: LevelOf(u.XP),
			Reduced:     u.XPReduced,
		}
		if next, ok := s.rollForward(q); ok {
			quests = append(quests, next)
			r.NextQuestID = next.ID
		}
		if err := tx.SaveQuests(ctx, sess.UserID, quests); err != nil {
			return err
		}

		if u.XPLocked {
			r.Blocked = true
			r.LevelAfter = r.LevelBefore
			r.Streak = u.Streak
			if _, err := s.appendMessage(ctx, tx, u.ID, msgXPBlocked, MessageDanger); err != nil {
				return err
			}
			s.log.Info("quest completed while locked", zap.String("user", u.ID), zap.String("quest", q.ID))
		} else {
			r.XPAwarded = AwardedXP(q.XP, false, u.XPReduced)
			u.XP += r.XPAwarded
			u.LastActiveDate = today
			advanceStreak(u, today)
			if err := s.saveUser(ctx, tx, u); err != nil {
				return err
			}
			r.LevelAfter = u.Level
			r.LevelUp = r.LevelAfter > r.LevelBefore
			r.Streak = u.Streak

			if _, err := s.appendMessage(ctx, tx, u.ID, fmt.Sprintf("QUEST COMPLETED +%d XP", r.XPAwarded), MessageSuccess); err != nil {
				return err
			}
			if r.LevelUp {
				if _, err := s.appendMessage(ctx, tx, u.ID, fmt.Sprintf("LEVEL UP! NOW LEVEL %d", r.LevelAfter), MessageSuccess); err != nil {
					return err
				}
			}
			s.log.Info("quest completed",
				zap.String("user", u.ID),
				zap.String("quest", q.ID),
				zap.Int("xp_awarded", r.XPAwarded),
				zap.Int("level", r.LevelAfter))
		}

		r.Stabilized, err = s.stabilize(ctx, tx, u, quests)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
