package domain

import (
	"time"
)

// Alias maps a chat user to the ladder profiles they registered, so "my"
// queries can be answered without repeating profile ids.
type Alias struct {
	ID         string
	ChatUser   string
	ProfileIDs []ProfileID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
