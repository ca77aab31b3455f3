package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"

	"arcane/internal/engine"
	"arcane/internal/storage"
	"arcane/internal/ui"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	path := cfg.DBPath
	if path == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	svc := engine.NewService(storage.NewStore(db, logger),
		engine.WithLogger(logger),
		engine.WithLocation(loc))
	return svc, cleanup, nil
}

// activeSession resolves the logged-in user and applies any missed-day
// penalties before the command runs. New penalties are reported on w.
func activeSession(ctx context.Context, svc *engine.Service, w io.Writer) (engine.Session, error) {
	sess, err := svc.CurrentSession(ctx)
	if err != nil {
		return engine.Session{}, err
	}
	out, err := svc.RunPenaltyCheck(ctx, sess)
	if err != nil {
		return engine.Session{}, err
	}
	printPenalty(w, out)
	return sess, nil
}

func printPenalty(w io.Writer, out engine.PenaltyOutcome) {
	if !out.Transitioned {
		return
	}
	fmt.Fprintln(w, ui.Bad.Render(fmt.Sprintf("%s %d missed day(s). Streak reset.", ui.IconWarn, out.MissedDays)))
	if out.XPLocked {
		fmt.Fprintln(w, ui.BadgeLocked+" "+ui.Muted.Render("finish every quest due today to stabilize"))
	}
	if out.XPReduced {
		fmt.Fprintln(w, ui.BadgeReduced+" "+ui.Muted.Render("XP gains are halved until stabilized"))
	}
}

// resolveQuest accepts a full quest id or a unique prefix of one.
func resolveQuest(ctx context.Context, svc *engine.Service, sess engine.Session, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("quest id is required")
	}
	quests, err := svc.Quests(ctx, sess)
	if err != nil {
		return "", err
	}
	var match string
	for _, q := range quests {
		if q.ID == ref {
			return q.ID, nil
		}
		if strings.HasPrefix(q.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("quest id %q is ambiguous", ref)
			}
			match = q.ID
		}
	}
	if match == "" {
		return "", engine.ErrQuestNotFound
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func parseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}
