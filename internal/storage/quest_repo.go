package storage

import "context"

// GetQuests returns the user's quests in insertion order. Missing or
// malformed lists read as empty.
func (s *Store) GetQuests(ctx context.Context, userID string) ([]Quest, error) {
	quests, _, err := getJSON[[]Quest](ctx, s, bucketQuests, userID)
	if err != nil {
		return nil, err
	}
	if quests == nil {
		quests = []Quest{}
	}
	return quests, nil
}

func (s *Store) SaveQuests(ctx context.Context, userID string, quests []Quest) error {
	if quests == nil {
		quests = []Quest{}
	}
	return s.putJSON(ctx, bucketQuests, userID, quests)
}
