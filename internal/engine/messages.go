package engine

import (
	"context"

	"arcane/internal/storage"
)

// MessageLogCapacity bounds each user's system message log.
const MessageLogCapacity = 20

// AppendMessage puts m in front of log and drops whatever no longer fits.
// The input slice is not modified.
func AppendMessage(log []storage.SystemMessage, m storage.SystemMessage) []storage.SystemMessage {
	n := len(log) + 1
	if n > MessageLogCapacity {
		n = MessageLogCapacity
	}
	out := make([]storage.SystemMessage, 0, n)
	out = append(out, m)
	for _, old := range log {
		if len(out) == n {
			break
		}
		out = append(out, old)
	}
	return out
}

func (s *Service) appendMessage(ctx context.Context, st *storage.Store, userID, text string, typ MessageType) (storage.SystemMessage, error) {
	if !typ.IsValid() {
		typ = MessageInfo
	}
	msg := storage.SystemMessage{
		ID:        newID(),
		Message:   text,
		Type:      string(typ),
		Timestamp: s.now().UTC(),
	}
	log, err := st.GetMessages(ctx, userID)
	if err != nil {
		return storage.SystemMessage{}, err
	}
	if err := st.SaveMessages(ctx, userID, AppendMessage(log, msg)); err != nil {
		return storage.SystemMessage{}, err
	}
	return msg, nil
}

// AddMessage appends one entry to the session user's log.
func (s *Service) AddMessage(ctx context.Context, sess Session, text string, typ MessageType) (storage.SystemMessage, error) {
	var msg storage.SystemMessage
	err := s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		var err error
		msg, err = s.appendMessage(ctx, tx, sess.UserID, text, typ)
		return err
	})
	return msg, err
}

// Messages returns the log newest first.
func (s *Service) Messages(ctx context.Context, sess Session) ([]storage.SystemMessage, error) {
	return s.store.GetMessages(ctx, sess.UserID)
}

func (s *Service) ClearMessages(ctx context.Context, sess Session) error {
	return s.transact(ctx, sess.UserID, func(tx *storage.Store) error {
		return tx.ClearMessages(ctx, sess.UserID)
	})
}
