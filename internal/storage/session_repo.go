package storage

import "context"

type sessionRecord struct {
	UserID string `json:"userId"`
}

// CurrentSession returns the user id of the persisted session, or "" when
// nobody is logged in.
func (s *Store) CurrentSession(ctx context.Context) (string, error) {
	rec, _, err := getJSON[sessionRecord](ctx, s, bucketSession, sessionKey)
	if err != nil {
		return "", err
	}
	return rec.UserID, nil
}

func (s *Store) SetCurrentSession(ctx context.Context, userID string) error {
	return s.putJSON(ctx, bucketSession, sessionKey, sessionRecord{UserID: userID})
}

func (s *Store) ClearCurrentSession(ctx context.Context) error {
	return s.deleteRecord(ctx, bucketSession, sessionKey)
}
