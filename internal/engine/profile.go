package engine

import (
	"context"

	"cloud.google.com/go/civil"

	"arcane/internal/storage"
)

type Status struct {
	User           storage.User
	Level          int
	Rank           RankTier
	NextRank       RankTier
	HasNextRank    bool
	Progress       Progress
	TodayTotal     int
	TodayCompleted int
}

func buildStatus(u storage.User, quests []storage.Quest, today civil.Date) Status {
	next, ok := NextRankOf(u.XP)
	st := Status{
		User:        u,
		Level:       LevelOf(u.XP),
		Rank:        RankOf(u.XP),
		NextRank:    next,
		HasNextRank: ok,
		Progress:    XPProgress(u.XP),
	}
	for _, q := range QuestsDueOn(quests, today) {
		st.TodayTotal++
		if q.Completed {
			st.TodayCompleted++
		}
	}
	return st
}

// Status is the dashboard read model for the session user.
func (s *Service) Status(ctx context.Context, sess Session) (*Status, error) {
	u, err := s.User(ctx, sess)
	if err != nil {
		return nil, err
	}
	quests, err := s.store.GetQuests(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}
	st := buildStatus(*u, quests, s.Today())
	return &st, nil
}

// Milestone is a badge derived from the user's record.
type Milestone struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

type Profile struct {
	Status
	Ladder          []RankStep
	CompletedQuests int
	XPFromQuests    int
	Milestones      []Milestone
	Earned          int
}

// MilestoneChecker works out which milestones a user has earned.
type MilestoneChecker struct {
	user   storage.User
	quests []storage.Quest
}

func NewMilestoneChecker(user storage.User, quests []storage.Quest) *MilestoneChecker {
	return &MilestoneChecker{user: user, quests: quests}
}

func (c *MilestoneChecker) Milestones() []Milestone {
	return []Milestone{
		c.questCount("first_quest", "First Quest", "Complete 1 quest", "✓", 1),
		c.questCount("productive", "Productive", "Complete 10 quests", "📋", 10),
		c.questCount("relentless", "Relentless", "Complete 50 quests", "🏅", 50),

		c.rank("awakened", "Awakened", "Reach the Awakened rank", "🌱", "Awakened"),
		c.rank("reaper", "Reaper", "Reach the Reaper rank", "💀", "Reaper"),
		c.rank("sovereign", "Black Sovereign", "Reach the final rank", "👑", "Black Sovereign"),

		c.streak("week_streak", "Unbroken", "Hold a 7 day streak", "🔥", 7),
		{ID: "stable", Name: "Stable", Description: "No active lock or reduction", Icon: "🛡", Earned: !c.user.XPLocked && !c.user.XPReduced},
	}
}

func (c *MilestoneChecker) CountEarned() int {
	n := 0
	for _, m := range c.Milestones() {
		if m.Earned {
			n++
		}
	}
	return n
}

func (c *MilestoneChecker) questCount(id, name, desc, icon string, count int) Milestone {
	done := 0
	for _, q := range c.quests {
		if q.Completed {
			done++
		}
	}
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: done >= count}
}

func (c *MilestoneChecker) rank(id, name, desc, icon, rankName string) Milestone {
	earned := false
	for _, r := range Ranks {
		if r.Name == rankName {
			earned = c.user.XP >= r.MinXP
			break
		}
	}
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *MilestoneChecker) streak(id, name, desc, icon string, days int) Milestone {
	return Milestone{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.user.Streak >= days}
}

// Profile is the profile-page read model: ladder, totals and milestones.
// XPFromQuests sums the nominal XP of completed quests, not what was paid
// out under penalties.
func (s *Service) Profile(ctx context.Context, sess Session) (*Profile, error) {
	u, err := s.User(ctx, sess)
	if err != nil {
		return nil, err
	}
	quests, err := s.store.GetQuests(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	checker := NewMilestoneChecker(*u, quests)
	p := &Profile{
		Status:     buildStatus(*u, quests, s.Today()),
		Ladder:     RankLadder(u.XP),
		Milestones: checker.Milestones(),
		Earned:     checker.CountEarned(),
	}
	for _, q := range quests {
		if q.Completed {
			p.CompletedQuests++
			p.XPFromQuests += q.XP
		}
	}
	return p, nil
}
