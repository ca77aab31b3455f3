package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
)

func (s *Store) GetUser(ctx context.Context, id string) (*User, error) {
	u, ok, err := getJSON[User](ctx, s, bucketUsers, id)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SaveUser(ctx context.Context, u *User) error {
	if u == nil || u.ID == "" {
		return errors.New("user save: id is required")
	}
	return s.putJSON(ctx, bucketUsers, u.ID, u)
}

// ListUsers returns every decodable user, oldest first.
func (s *Store) ListUsers(ctx context.Context) ([]User, error) {
	raw, err := s.listRaw(ctx, bucketUsers)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(raw))
	for _, r := range raw {
		var u User
		if err := json.Unmarshal(r.Data, &u); err != nil {
			s.log.Warn("skipping malformed user record", zap.String("key", r.Key), zap.Error(err))
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// FindUser resolves an email or username, case-insensitively. Email matches
// win over username matches.
func (s *Store) FindUser(ctx context.Context, identifier string) (*User, error) {
	ident := strings.TrimSpace(identifier)
	if ident == "" {
		return nil, nil
	}
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email != "" && strings.EqualFold(users[i].Email, ident) {
			return &users[i], nil
		}
	}
	for i := range users {
		if strings.EqualFold(users[i].Username, ident) {
			return &users[i], nil
		}
	}
	return nil, nil
}
