package domain

import "time"

// User represents a trader known to the bot.
type User struct {
	ID                 int64
	TelegramID         int64
	FirstName          string
	LastName           string
	Username           string
	DefaultCommunityID string
	CreatedAt          time.Time
	LastActiveAt       time.Time
}
