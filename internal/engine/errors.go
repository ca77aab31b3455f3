package engine

import (
	"errors"
	"fmt"
)

var (
	ErrQuestNotFound    = errors.New("quest not found")
	ErrQuestCompleted   = errors.New("quest already completed")
	ErrUserNotFound     = errors.New("user not found")
	ErrNoSession        = errors.New("no active session; run `arc login <name>` first")
	ErrTitleRequired    = errors.New("title is required")
	ErrUsernameRequired = errors.New("username is required")
)

// UserExistsError is returned by Register when the username or email is taken.
type UserExistsError struct {
	Field string
	Value string
}

func (e UserExistsError) Error() string {
	return fmt.Sprintf("%s '%s' is already registered", e.Field, e.Value)
}

// InvalidWeekdayError reports a recurring day outside 0 (Sunday) to 6 (Saturday).
type InvalidWeekdayError struct {
	Day int
}

func (e InvalidWeekdayError) Error() string {
	return fmt.Sprintf("invalid recurring day %d (want 0-6)", e.Day)
}
