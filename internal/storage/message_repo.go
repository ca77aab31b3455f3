package storage

import "context"

// GetMessages returns the stored log as written (newest first).
func (s *Store) GetMessages(ctx context.Context, userID string) ([]SystemMessage, error) {
	msgs, _, err := getJSON[[]SystemMessage](ctx, s, bucketMessages, userID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []SystemMessage{}
	}
	return msgs, nil
}

func (s *Store) SaveMessages(ctx context.Context, userID string, msgs []SystemMessage) error {
	if msgs == nil {
		msgs = []SystemMessage{}
	}
	return s.putJSON(ctx, bucketMessages, userID, msgs)
}

func (s *Store) ClearMessages(ctx context.Context, userID string) error {
	return s.deleteRecord(ctx, bucketMessages, userID)
}
