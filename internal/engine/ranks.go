package engine

import "math"

const (
	// OpenEnded marks the upper bound of the final tier.
	OpenEnded = math.MaxInt

	// XPPerLevel is the flat level width: every 100 XP is one level.
	XPPerLevel = 100

	// openEndedWidth is the nominal width shown for the final tier's progress bar.
	openEndedWidth = 500
)

type RankTier struct {
	Name  string
	MinXP int
	MaxXP int
}

func (r RankTier) IsOpenEnded() bool { return r.MaxXP == OpenEnded }

// Ranks is the ladder, ascending and contiguous from 0.
var Ranks = []RankTier{
	{Name: "Null", MinXP: 0, MaxXP: 99},
	{Name: "Awakened", MinXP: 100, MaxXP: 299},
	{Name: "Branded", MinXP: 300, MaxXP: 499},
	{Name: "Warden", MinXP: 500, MaxXP: 799},
	{Name: "Reaper", MinXP: 800, MaxXP: 1099},
	{Name: "Harbinger", MinXP: 1100, MaxXP: 1399},
	{Name: "Overlord", MinXP: 1400, MaxXP: 1699},
	{Name: "Voidborne", MinXP: 1700, MaxXP: 1999},
	{Name: "Black Sovereign", MinXP: 2000, MaxXP: OpenEnded},
}

func rankIndex(xp int) int {
	for i, r := range Ranks {
		if xp >= r.MinXP && xp <= r.MaxXP {
			return i
		}
	}
	return -1
}

// FindRank returns the tier containing xp. ok is false only when xp is
// outside the table, which means the stored XP is corrupt.
func FindRank(xp int) (RankTier, bool) {
	i := rankIndex(xp)
	if i < 0 {
		return RankTier{}, false
	}
	return Ranks[i], true
}

// RankOf returns the tier containing xp, or the lowest tier when none does.
func RankOf(xp int) RankTier {
	if r, ok := FindRank(xp); ok {
		return r
	}
	return Ranks[0]
}

// NextRankOf returns the tier after the current one; ok is false at the top.
func NextRankOf(xp int) (RankTier, bool) {
	i := rankIndex(xp)
	if i < 0 {
		i = 0
	}
	if i == len(Ranks)-1 {
		return RankTier{}, false
	}
	return Ranks[i+1], true
}

// LevelOf is floor(xp/100)+1. Negative XP counts as zero.
func LevelOf(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

type Progress struct {
	Current    int
	Max        int
	Percentage float64
}

// XPProgress reports progress through the current tier. The open-ended tier
// uses a nominal width of 500 so the bar still moves.
func XPProgress(xp int) Progress {
	tier := RankOf(xp)
	current := xp - tier.MinXP
	max := openEndedWidth
	if !tier.IsOpenEnded() {
		max = tier.MaxXP - tier.MinXP + 1
	}
	pct := float64(current) / float64(max) * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return Progress{Current: current, Max: max, Percentage: pct}
}

// RankStep is one row of the rank ladder as seen by a user.
type RankStep struct {
	Tier     RankTier
	Current  bool
	Unlocked bool
}

func RankLadder(xp int) []RankStep {
	current := RankOf(xp)
	out := make([]RankStep, 0, len(Ranks))
	for _, r := range Ranks {
		out = append(out, RankStep{
			Tier:     r,
			Current:  r.Name == current.Name,
			Unlocked: xp >= r.MinXP,
		})
	}
	return out
}
