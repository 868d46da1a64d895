package domain

import "time"

// Hit is a message that matched a keyword and was delivered to the operator
type Hit struct {
	ID         int64     `db:"id"`
	ChannelID  int64     `db:"channel_id"`
	GroupTitle string    `db:"group_title"`
	MessageID  int       `db:"message_id"`
	Keyword    string    `db:"keyword"`
	Sender     string    `db:"sender"`
	Text       string    `db:"text"`
	Link       string    `db:"link"`
	Date       time.Time `db:"date"`
	CreatedAt  time.Time `db:"created_at"`
}
