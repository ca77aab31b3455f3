package engine

import (
	"context"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"arcane/internal/storage"
)

const (
	// LockAfterMissedDays locks XP gain once this many days were skipped in a row.
	LockAfterMissedDays = 1
	// ReduceAfterMissedDays halves XP gain once this many days were skipped in a row.
	ReduceAfterMissedDays = 2
)

const (
	msgStreakReset = "STREAK RESET"
	msgXPLocked    = "XP GAIN LOCKED"
	msgXPReduced   = "XP VALUE REDUCED"
	msgStabilized  = "SYSTEM STABILIZED"
)

// PenaltyOutcome is the result of one penalty check. XPLocked and XPReduced
// are the flags after the check, whether or not it changed them.
type PenaltyOutcome struct {
	DiffDays     int
	Transitioned bool
	StreakReset  bool
	XPLocked     bool
	XPReduced    bool
	MissedDays   int
}

// EvaluatePenalty applies the missed-day rules to u as of today and returns
// the outcome together with the updated user. One idle calendar day is
// grace; only a fully skipped day counts as missed.
func EvaluatePenalty(u storage.User, today civil.Date) (PenaltyOutcome, storage.User) {
	out := PenaltyOutcome{
		XPLocked:   u.XPLocked,
		XPReduced:  u.XPReduced,
		MissedDays: u.ConsecutiveMissedDays,
	}
	if !u.LastActiveDate.IsValid() {
		return out, u
	}
	out.DiffDays = DaysBetween(u.LastActiveDate, today)
	if out.DiffDays <= 1 {
		return out, u
	}

	missed := u.ConsecutiveMissedDays + out.DiffDays - 1
	if missed >= LockAfterMissedDays {
		out.StreakReset = true
		out.XPLocked = true
	}
	if missed >= ReduceAfterMissedDays {
		out.XPReduced = true
	}
	out.Transitioned = true
	out.MissedDays = missed

	u.Streak = 0
	u.ConsecutiveMissedDays = missed
	u.XPLocked = out.XPLocked
	u.XPReduced = out.XPReduced
	u.LastActiveDate = today
	return out, u
}

// RunPenaltyCheck evaluates and persists the penalty state for the session
// user. Unknown users get a zero outcome. Running it twice on the same day
// is a no-op the second time.
func (s *Service) RunPenaltyCheck(ctx context.Context, sess Session) (PenaltyOutcome, error) {
	var out PenaltyOutcome
	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		var err error
		out, err = s.runPenaltyCheck(ctx, tx, sess.UserID)
		return err
	})
	return out, err
}

func (s *Service) runPenaltyCheck(ctx context.Context, tx *storage.Store, userID string) (PenaltyOutcome, error) {
	u, err := s.loadUser(ctx, tx, userID)
	if err != nil || u == nil {
		return PenaltyOutcome{}, err
	}

	out, next := EvaluatePenalty(*u, s.Today())
	if !out.Transitioned {
		return out, nil
	}
	if err := s.saveUser(ctx, tx, &next); err != nil {
		return PenaltyOutcome{}, err
	}
	s.log.Info("penalty applied",
		zap.String("user", userID),
		zap.Int("diff_days", out.DiffDays),
		zap.Int("missed_days", out.MissedDays),
		zap.Bool("locked", out.XPLocked),
		zap.Bool("reduced", out.XPReduced))

	if out.StreakReset {
		if _, err := s.appendMessage(ctx, tx, userID, msgStreakReset, MessageDanger); err != nil {
			return PenaltyOutcome{}, err
		}
	}
	if out.XPLocked {
		if _, err := s.appendMessage(ctx, tx, userID, msgXPLocked, MessageDanger); err != nil {
			return PenaltyOutcome{}, err
		}
	}
	if out.XPReduced {
		if _, err := s.appendMessage(ctx, tx, userID, msgXPReduced, MessageDanger); err != nil {
			return PenaltyOutcome{}, err
		}
	}
	return out, nil
}

// QuestsDueOn filters quests by due date, keeping their order.
func QuestsDueOn(quests []storage.Quest, day civil.Date) []storage.Quest {
	var out []storage.Quest
	for _, q := range quests {
		if q.DueDate == day {
			out = append(out, q)
		}
	}
	return out
}

// AllComplete reports whether every quest is completed. An empty day counts
// as complete.
func AllComplete(quests []storage.Quest) bool {
	for _, q := range quests {
		if !q.Completed {
			return false
		}
	}
	return true
}

// TryStabilize clears the lock and reduction once every quest due today is
// done. It reports whether stabilization happened.
func (s *Service) TryStabilize(ctx context.Context, sess Session) (bool, error) {
	var stabilized bool
	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		u, err := s.loadUser(ctx, tx, sess.UserID)
		if err != nil || u == nil {
			return err
		}
		quests, err := tx.GetQuests(ctx, sess.UserID)
		if err != nil {
			return err
		}
		stabilized, err = s.stabilize(ctx, tx, u, quests)
		return err
	})
	return stabilized, err
}

func (s *Service) stabilize(ctx context.Context, tx *storage.Store, u *storage.User, quests []storage.Quest) (bool, error) {
	if !u.XPLocked && !u.XPReduced {
		return false, nil
	}
	if !AllComplete(QuestsDueOn(quests, s.Today())) {
		return false, nil
	}

	u.XPLocked = false
	u.XPReduced = false
	u.ConsecutiveMissedDays = 0
	if err := s.saveUser(ctx, tx, u); err != nil {
		return false, err
	}
	if _, err := s.appendMessage(ctx, tx, u.ID, msgStabilized, MessageSuccess); err != nil {
		return false, err
	}
	s.log.Info("system stabilized", zap.String("user", u.ID))
	return true, nil
}
