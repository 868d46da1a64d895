package domain

import (
	"strings"
	"time"
)

// Event is an inbound message from a chat the account is in.
// ChatID uses the Bot API form (-100... for channels and supergroups).
type Event struct {
	ChatID         int64
	MessageID      int
	Text           string
	SenderName     string
	SenderUsername string
	Date           time.Time
}

// Sender returns the best human-readable sender label
func (e Event) Sender() string {
	name := strings.TrimSpace(e.SenderName)
	switch {
	case e.SenderUsername != "" && name != "":
		return name + " @" + e.SenderUsername
	case e.SenderUsername != "":
		return "@" + e.SenderUsername
	case name != "":
		return name
	default:
		return "unknown"
	}
}
