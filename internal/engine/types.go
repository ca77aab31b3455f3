package engine

import "strings"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority parses user input (h/m/l or the full name).
func ParsePriority(input string) (Priority, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "h", "high":
		return PriorityHigh, true
	case "m", "med", "medium":
		return PriorityMedium, true
	case "l", "low":
		return PriorityLow, true
	default:
		return "", false
	}
}

type MessageType string

const (
	MessageInfo    MessageType = "info"
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
	MessageDanger  MessageType = "danger"
)

func (t MessageType) IsValid() bool {
	switch t {
	case MessageInfo, MessageSuccess, MessageWarning, MessageDanger:
		return true
	default:
		return false
	}
}

// Session identifies the user a call acts for. It carries no state of its
// own; the store stays the source of truth.
type Session struct {
	UserID string
}
