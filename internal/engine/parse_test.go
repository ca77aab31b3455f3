package engine

import (
	"testing"
	"time"
)

func TestParsePlanIntoQuests(t *testing.T) {
	today := date(2026, time.March, 10)
	drafts := ParsePlanIntoQuests("- Buy milk\n\n* 2. Exam prep\nx", today)
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts, want 2: %+v", len(drafts), drafts)
	}
	if drafts[0].Title != "Buy milk" || drafts[1].Title != "Exam prep" {
		t.Fatalf("titles=%q,%q", drafts[0].Title, drafts[1].Title)
	}
	for _, d := range drafts {
		if d.Completed || d.Recurring || d.DueDate != today {
			t.Fatalf("draft defaults wrong: %+v", d)
		}
	}
	if drafts[0].Priority != PriorityMedium || drafts[0].XP != 30 {
		t.Fatalf("Buy milk classified %s/%d", drafts[0].Priority, drafts[0].XP)
	}
	if drafts[1].Priority != PriorityHigh || drafts[1].XP != 50 {
		t.Fatalf("Exam prep classified %s/%d", drafts[1].Priority, drafts[1].XP)
	}
}

func TestParsePlanStripsBulletsAndNumbering(t *testing.T) {
	today := date(2026, time.March, 10)
	in := "1. Plan sprint\r\n2) Relax\n   • Call mom  \n\t\t\n-- ok\n3."
	drafts := ParsePlanIntoQuests(in, today)
	want := []string{"Plan sprint", "Relax", "Call mom"}
	if len(drafts) != len(want) {
		t.Fatalf("got %d drafts, want %d: %+v", len(drafts), len(want), drafts)
	}
	for i, d := range drafts {
		if d.Title != want[i] {
			t.Fatalf("draft %d title=%q, want %q", i, d.Title, want[i])
		}
	}
}

func TestParsePlanEmpty(t *testing.T) {
	if got := ParsePlanIntoQuests("", date(2026, time.March, 10)); len(got) != 0 {
		t.Fatalf("empty plan produced %d drafts", len(got))
	}
	if got := ParsePlanIntoQuests("\n \n\t", date(2026, time.March, 10)); len(got) != 0 {
		t.Fatalf("blank plan produced %d drafts", len(got))
	}
}

func TestPlanDraftsStopsEarly(t *testing.T) {
	n := 0
	for range PlanDrafts("alpha\nbeta\ngamma", date(2026, time.March, 10)) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("iterated %d, want 2", n)
	}
}
