package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"arcane/internal/storage"
)

type Service struct {
	store *storage.Store
	log   *zap.Logger
	now   func() time.Time
	loc   *time.Location
	locks userLocks
}

type Option func(*Service)

// WithClock overrides the wall clock; tests pin it to a fixed day.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the time zone that decides where one day ends.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func NewService(store *storage.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("engine")
	return s
}

func (s *Service) Store() *storage.Store { return s.store }

// Today is the current calendar day in the service's time zone.
func (s *Service) Today() civil.Date { return Today(s.now(), s.loc) }

// userLocks hands out one mutex per user so a read-modify-write on a user's
// records never interleaves with another in this process. The storage
// transaction covers other processes.
type userLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = map[string]*sync.Mutex{}
	}
	m, ok := l.m[userID]
	if !ok {
		m = &sync.Mutex{}
		l.m[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// transact runs fn for one user under that user's lock and inside one
// storage transaction.
func (s *Service) transact(ctx context.Context, userID string, fn func(tx *storage.Store) error) error {
	unlock := s.locks.lock(userID)
	defer unlock()
	return s.store.Atomic(ctx, fn)
}

// loadUser reads a user and recomputes the derived level. A nil user means
// the id is unknown.
func (s *Service) loadUser(ctx context.Context, st *storage.Store, userID string) (*storage.User, error) {
	u, err := st.GetUser(ctx, userID)
	if err != nil || u == nil {
		return nil, err
	}
	if _, ok := FindRank(u.XP); !ok {
		s.log.Warn("stored xp is outside the rank table",
			zap.String("user", u.ID),
			zap.Int("xp", u.XP))
	}
	u.Level = LevelOf(u.XP)
	return u, nil
}

func (s *Service) saveUser(ctx context.Context, st *storage.Store, u *storage.User) error {
	u.Level = LevelOf(u.XP)
	return st.SaveUser(ctx, u)
}

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrTitleRequired
	}
	return t, nil
}

func newID() string { return uuid.NewString() }

func questIndex(quests []storage.Quest, id string) int {
	for i := range quests {
		if quests[i].ID == id {
			return i
		}
	}
	return -1
}
