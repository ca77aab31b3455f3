package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Arcane theme (CLI + board). Reusable styles and a few glyphs.

const (
	IconQuest   = "⚔"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconCrown   = "👑"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconLock    = "🔒"
	IconLoop    = "🔁"
	IconScroll  = "📜"
	IconFlame   = "🔥"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cVoid    = lipgloss.Color("93")  // violet
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Void  = lipgloss.NewStyle().Bold(true).Foreground(cVoid)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
	BadgeLocked  = lipgloss.NewStyle().Bold(true).Foreground(cBad).Render(IconLock + " LOCKED")
	BadgeReduced = lipgloss.NewStyle().Bold(true).Foreground(cWarn).Render("½ REDUCED")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// MessageText styles a system message by its type (info, success, warning,
// danger).
func MessageText(typ string, text string) string {
	switch strings.ToLower(typ) {
	case "success":
		return Good.Render(text)
	case "warning":
		return Warn.Render(text)
	case "danger":
		return Bad.Render(text)
	default:
		return H2.Render(text)
	}
}

func PriorityText(priority string) string {
	switch strings.ToLower(priority) {
	case "high":
		return Bad.Render("high")
	case "medium":
		return Warn.Render("medium")
	case "low":
		return Muted.Render("low")
	default:
		return Muted.Render(priority)
	}
}

// DayText renders a calendar day status.
func DayText(status string, label string) string {
	switch status {
	case "complete":
		return Good.Render(label)
	case "partial":
		return Warn.Render(label)
	case "incomplete":
		return Bad.Render(label)
	default:
		return Muted.Render(label)
	}
}

func QuestIcon(completed bool, recurring bool) string {
	if completed {
		return IconDone
	}
	if recurring {
		return IconLoop
	}
	return IconQuest
}

// RankText colors a rank name by its position on the ladder; the top tiers
// get the darker palette.
func RankText(name string, index int, total int) string {
	switch {
	case index >= total-1:
		return Gold.Render(name)
	case index >= total-3:
		return Void.Render(name)
	case index > 0:
		return H2.Render(name)
	default:
		return Muted.Render(name)
	}
}

// ProgressBar draws a fixed-width bar for a 0-100 percentage.
func ProgressBar(percentage int, width int) string {
	if width < 3 {
		width = 3
	}
	percentage = max(0, min(100, percentage))
	filled := percentage * width / 100
	return "[" + Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled)) + "]"
}
