package engine

import (
	"context"
	"testing"
	"time"

	"arcane/internal/storage"
)

func TestEvaluatePenaltyTransitions(t *testing.T) {
	today := date(2026, time.March, 10)
	base := storage.User{ID: "u", Streak: 4, LastActiveDate: today}

	out, next := EvaluatePenalty(base, today)
	if out.Transitioned || out.XPLocked || next.Streak != 4 {
		t.Fatalf("same day should not transition: %+v", out)
	}

	base.LastActiveDate = today.AddDays(-1)
	out, next = EvaluatePenalty(base, today)
	if out.Transitioned || next.Streak != 4 || next.LastActiveDate != base.LastActiveDate {
		t.Fatalf("one idle day is grace: %+v %+v", out, next)
	}

	base.LastActiveDate = today.AddDays(-2)
	out, next = EvaluatePenalty(base, today)
	if !out.Transitioned || !out.StreakReset || !out.XPLocked || out.XPReduced {
		t.Fatalf("one missed day: %+v", out)
	}
	if next.Streak != 0 || next.ConsecutiveMissedDays != 1 || next.LastActiveDate != today {
		t.Fatalf("one missed day user: %+v", next)
	}

	base.LastActiveDate = today.AddDays(-3)
	base.ConsecutiveMissedDays = 1
	out, next = EvaluatePenalty(base, today)
	if !out.XPLocked || !out.XPReduced || out.MissedDays != 3 {
		t.Fatalf("cumulative missed days: %+v", out)
	}
	if !next.XPReduced || next.ConsecutiveMissedDays != 3 {
		t.Fatalf("cumulative user: %+v", next)
	}

	base.LastActiveDate = today.AddDays(2)
	if out, _ := EvaluatePenalty(base, today); out.Transitioned {
		t.Fatalf("clock skew must not penalize: %+v", out)
	}
}

func TestRunPenaltyCheckPersistsAndIsIdempotent(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)
	mutateUser(t, svc, sess, func(u *storage.User) { u.Streak = 5 })

	clock.advanceDays(2)
	out, err := svc.RunPenaltyCheck(ctx, sess)
	if err != nil {
		t.Fatalf("RunPenaltyCheck: %v", err)
	}
	if !out.Transitioned || !out.XPLocked || out.XPReduced {
		t.Fatalf("outcome=%+v", out)
	}
	u := getUser(t, svc, sess)
	if u.Streak != 0 || !u.XPLocked || u.ConsecutiveMissedDays != 1 || u.LastActiveDate != svc.Today() {
		t.Fatalf("user after penalty=%+v", u)
	}
	msgs := messageTexts(t, svc, sess)
	if !containsText(msgs, "STREAK RESET") || !containsText(msgs, "XP GAIN LOCKED") || containsText(msgs, "XP VALUE REDUCED") {
		t.Fatalf("messages=%v", msgs)
	}

	again, err := svc.RunPenaltyCheck(ctx, sess)
	if err != nil {
		t.Fatalf("RunPenaltyCheck again: %v", err)
	}
	if again.Transitioned || !again.XPLocked {
		t.Fatalf("second check same day=%+v", again)
	}
	if n := len(messageTexts(t, svc, sess)); n != len(msgs) {
		t.Fatalf("second check added messages: %d -> %d", len(msgs), n)
	}

	// One more skipped day pushes the running count past the reduction threshold.
	clock.advanceDays(2)
	out, err = svc.RunPenaltyCheck(ctx, sess)
	if err != nil {
		t.Fatalf("RunPenaltyCheck: %v", err)
	}
	if !out.XPReduced || out.MissedDays != 2 {
		t.Fatalf("outcome=%+v", out)
	}
}

func TestPenaltyCheckUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	out, err := svc.RunPenaltyCheck(context.Background(), Session{UserID: "ghost"})
	if err != nil {
		t.Fatalf("RunPenaltyCheck: %v", err)
	}
	if out != (PenaltyOutcome{}) {
		t.Fatalf("unknown user outcome=%+v, want zero", out)
	}
	ok, err := svc.TryStabilize(context.Background(), Session{UserID: "ghost"})
	if err != nil || ok {
		t.Fatalf("TryStabilize ghost=%v,%v", ok, err)
	}
}

func TestTryStabilize(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	ok, err := svc.TryStabilize(ctx, sess)
	if err != nil || ok {
		t.Fatalf("stable user stabilized=%v err=%v", ok, err)
	}

	mutateUser(t, svc, sess, func(u *storage.User) {
		u.XPLocked = true
		u.XPReduced = true
		u.ConsecutiveMissedDays = 3
	})
	q, err := svc.AddQuest(ctx, sess, NewQuest{Title: "Clean desk"})
	if err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	tomorrow := svc.Today().AddDays(1)
	if _, err := svc.AddQuest(ctx, sess, NewQuest{Title: "Later thing", DueDate: &tomorrow}); err != nil {
		t.Fatalf("AddQuest tomorrow: %v", err)
	}

	ok, err = svc.TryStabilize(ctx, sess)
	if err != nil || ok {
		t.Fatalf("pending quest today, stabilized=%v err=%v", ok, err)
	}

	mutateQuests(t, svc, sess, func(qs []storage.Quest) {
		for i := range qs {
			if qs[i].ID == q.ID {
				qs[i].Completed = true
			}
		}
	})
	ok, err = svc.TryStabilize(ctx, sess)
	if err != nil || !ok {
		t.Fatalf("all of today done, stabilized=%v err=%v", ok, err)
	}
	u := getUser(t, svc, sess)
	if u.XPLocked || u.XPReduced || u.ConsecutiveMissedDays != 0 {
		t.Fatalf("user after stabilize=%+v", u)
	}
	if msgs := messageTexts(t, svc, sess); msgs[0] != "SYSTEM STABILIZED" {
		t.Fatalf("newest message=%q", msgs[0])
	}
}

func TestAllComplete(t *testing.T) {
	if !AllComplete(nil) {
		t.Fatalf("empty day counts as complete")
	}
	if AllComplete([]storage.Quest{{Completed: true}, {Completed: false}}) {
		t.Fatalf("partial day is not complete")
	}
}

func TestStartSession(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	rep, err := svc.StartSession(ctx, sess)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !rep.NoQuestsToday || rep.Penalty.Transitioned || rep.Stabilized {
		t.Fatalf("fresh session report=%+v", rep)
	}
	if msgs := messageTexts(t, svc, sess); msgs[0] != "DAILY QUEST INITIALIZED" {
		t.Fatalf("newest message=%q", msgs[0])
	}

	clock.advanceDays(3)
	if _, err := svc.AddQuest(ctx, sess, NewQuest{Title: "Stretch"}); err != nil {
		t.Fatalf("AddQuest: %v", err)
	}
	rep, err = svc.StartSession(ctx, sess)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !rep.Penalty.XPLocked || !rep.Penalty.XPReduced || rep.Stabilized || rep.NoQuestsToday {
		t.Fatalf("missed days report=%+v", rep)
	}
	msgs := messageTexts(t, svc, sess)
	for _, want := range []string{"STREAK RESET", "XP GAIN LOCKED", "XP VALUE REDUCED"} {
		if !containsText(msgs, want) {
			t.Fatalf("missing %q in %v", want, msgs)
		}
	}
}

func TestStartSessionStabilizesEmptyDay(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	sess := newTestUser(t, svc)

	clock.advanceDays(2)
	rep, err := svc.StartSession(ctx, sess)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !rep.Penalty.Transitioned || !rep.Stabilized {
		t.Fatalf("report=%+v", rep)
	}
	u := getUser(t, svc, sess)
	if u.XPLocked || u.Streak != 0 {
		t.Fatalf("user=%+v", u)
	}
}

func mutateQuests(t *testing.T, svc *Service, sess Session, fn func(qs []storage.Quest)) {
	t.Helper()
	ctx := context.Background()
	qs, err := svc.Store().GetQuests(ctx, sess.UserID)
	if err != nil {
		t.Fatalf("get quests: %v", err)
	}
	fn(qs)
	if err := svc.Store().SaveQuests(ctx, sess.UserID, qs); err != nil {
		t.Fatalf("save quests: %v", err)
	}
}
