package domain

import "time"

// Keyword is a single-word trigger. Minus keywords veto an otherwise positive match.
type Keyword struct {
	ID        int64     `db:"id"`
	Text      string    `db:"keyword"`
	Minus     bool      `db:"minus_word"`
	CreatedAt time.Time `db:"created_at"`
}

// Polarity returns which keyword list k belongs to.
func (k *Keyword) Polarity() Polarity {
	if k.Minus {
		return PolarityMinus
	}
	return PolaritySearch
}
