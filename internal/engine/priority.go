package engine

import "strings"

var highPriorityKeywords = []string{
	"urgent", "critical", "important", "deadline", "asap", "emergency",
	"must", "required", "essential", "priority", "exam", "interview",
	"presentation", "meeting", "submit", "final", "project", "workout",
	"exercise", "training", "study", "learn", "master",
}

var lowPriorityKeywords = []string{
	"optional", "maybe", "someday", "whenever", "leisure", "relax",
	"fun", "entertainment", "browse", "watch", "play", "chill",
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// DeterminePriority classifies quest text by keyword. Matches are plain
// substrings, and high keywords win over low ones.
func DeterminePriority(title, description string) Priority {
	text := strings.ToLower(title + " " + description)
	if containsAny(text, highPriorityKeywords) {
		return PriorityHigh
	}
	if containsAny(text, lowPriorityKeywords) {
		return PriorityLow
	}
	return PriorityMedium
}

// XPForPriority returns the XP a quest of the given priority is worth.
func XPForPriority(p Priority) int {
	switch p {
	case PriorityHigh:
		return 50
	case PriorityMedium:
		return 30
	default:
		return 10
	}
}
