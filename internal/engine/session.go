package engine

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"arcane/internal/storage"
)

const msgDailyInitialized = "DAILY QUEST INITIALIZED"

// Register creates a user. Usernames and emails are unique ignoring case.
func (s *Service) Register(ctx context.Context, username, email string) (*storage.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, ErrUsernameRequired
	}

	u := &storage.User{
		ID:             newID(),
		Username:       username,
		Email:          email,
		XP:             0,
		Level:          1,
		Streak:         0,
		LastActiveDate: s.Today(),
		CreatedAt:      s.now().UTC(),
	}
	err := s.store.Atomic(ctx, func(tx *storage.Store) error {
		users, err := tx.ListUsers(ctx)
		if err != nil {
			return err
		}
		for _, other := range users {
			if strings.EqualFold(other.Username, username) {
				return UserExistsError{Field: "username", Value: username}
			}
			if email != "" && strings.EqualFold(other.Email, email) {
				return UserExistsError{Field: "email", Value: email}
			}
		}
		return s.saveUser(ctx, tx, u)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", zap.String("user", u.ID), zap.String("username", u.Username))
	return u, nil
}

// Login resolves identifier (email or username) and makes that user the
// current session. There is no credential check.
func (s *Service) Login(ctx context.Context, identifier string) (Session, *storage.User, error) {
	u, err := s.store.FindUser(ctx, identifier)
	if err != nil {
		return Session{}, nil, err
	}
	if u == nil {
		return Session{}, nil, ErrUserNotFound
	}
	if err := s.store.SetCurrentSession(ctx, u.ID); err != nil {
		return Session{}, nil, err
	}
	u.Level = LevelOf(u.XP)
	return Session{UserID: u.ID}, u, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearCurrentSession(ctx)
}

// CurrentSession returns the persisted session, or ErrNoSession when nobody
// is logged in or the user record is gone.
func (s *Service) CurrentSession(ctx context.Context) (Session, error) {
	id, err := s.store.CurrentSession(ctx)
	if err != nil {
		return Session{}, err
	}
	if id == "" {
		return Session{}, ErrNoSession
	}
	u, err := s.store.GetUser(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if u == nil {
		return Session{}, ErrNoSession
	}
	return Session{UserID: id}, nil
}

// User returns the session user with its level recomputed.
func (s *Service) User(ctx context.Context, sess Session) (*storage.User, error) {
	u, err := s.loadUser(ctx, s.store, sess.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type SessionReport struct {
	Penalty       PenaltyOutcome
	Stabilized    bool
	NoQuestsToday bool
}

// StartSession runs the day-boundary checks: penalties first, then
// stabilization, then a notice when nothing is scheduled for today.
func (s *Service) StartSession(ctx context.Context, sess Session) (*SessionReport, error) {
	rep := &SessionReport{}
	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		var err error
		rep.Penalty, err = s.runPenaltyCheck(ctx, tx, sess.UserID)
		if err != nil {
			return err
		}

		u, err := s.loadUser(ctx, tx, sess.UserID)
		if err != nil || u == nil {
			return err
		}
		quests, err := tx.GetQuests(ctx, sess.UserID)
		if err != nil {
			return err
		}
		rep.Stabilized, err = s.stabilize(ctx, tx, u, quests)
		if err != nil {
			return err
		}
		if len(QuestsDueOn(quests, s.Today())) == 0 {
			rep.NoQuestsToday = true
			if _, err := s.appendMessage(ctx, tx, sess.UserID, msgDailyInitialized, MessageInfo); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rep, nil
}
