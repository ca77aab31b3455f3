package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	bucketUsers    = "users"
	bucketQuests   = "quests"
	bucketMessages = "messages"
	bucketSession  = "session"

	sessionKey = "current"
)

type rawRecord struct {
	Key  string
	Data []byte
}

func (s *Store) readRaw(ctx context.Context, bucket, key string) ([]byte, error) {
	row := s.q.QueryRowContext(ctx, `SELECT data FROM records WHERE bucket = ? AND key = ?`, bucket, key)
	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("record get %s/%s: %w", bucket, key, err)
	}
	return []byte(data), nil
}

// getJSON loads one record. A record that fails to decode is logged and
// reported as missing; the caller falls back to its empty default.
func getJSON[T any](ctx context.Context, s *Store, bucket, key string) (T, bool, error) {
	var zero T
	data, err := s.readRaw(ctx, bucket, key)
	if err != nil || data == nil {
		return zero, false, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.Warn("malformed record, using empty default",
			zap.String("bucket", bucket),
			zap.String("key", key),
			zap.Error(err))
		return zero, false, nil
	}
	return v, true, nil
}

func (s *Store) putJSON(ctx context.Context, bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s/%s: %w", bucket, key, err)
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO records (bucket, key, data, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(bucket, key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, bucket, key, string(data))
	if err != nil {
		return fmt.Errorf("record put %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) deleteRecord(ctx context.Context, bucket, key string) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM records WHERE bucket = ? AND key = ?`, bucket, key); err != nil {
		return fmt.Errorf("record delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

func (s *Store) listRaw(ctx context.Context, bucket string) ([]rawRecord, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT key, data FROM records WHERE bucket = ? ORDER BY key ASC`, bucket)
	if err != nil {
		return nil, fmt.Errorf("record list %s: %w", bucket, err)
	}
	defer rows.Close()

	var out []rawRecord
	for rows.Next() {
		var r rawRecord
		var data string
		if err := rows.Scan(&r.Key, &data); err != nil {
			return nil, fmt.Errorf("record scan %s: %w", bucket, err)
		}
		r.Data = []byte(data)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("record rows %s: %w", bucket, err)
	}
	return out, nil
}
