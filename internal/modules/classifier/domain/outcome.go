package domain

import "fmt"

// ScriptTag names the Unicode script a letter belongs to (e.g. "Latin", "Cyrillic").
type ScriptTag string

// Outcome is the verdict of the classification pipeline for one message.
// It holds either a matched keyword or an ignore reason, never both.
type Outcome struct {
	matched bool
	keyword string
	reason  IgnoreReason
}

// Matched builds a positive outcome for keyword.
func Matched(keyword string) Outcome {
	return Outcome{matched: true, keyword: keyword}
}

// Ignored builds a negative outcome.
func Ignored(reason IgnoreReason) Outcome {
	return Outcome{reason: reason}
}

// IsMatched reports whether the message should be forwarded.
func (o Outcome) IsMatched() bool {
	return o.matched
}

// Keyword returns the matched keyword. ok is false for ignored outcomes.
func (o Outcome) Keyword() (keyword string, ok bool) {
	if !o.IsMatched() {
		return "", false
	}
	return o.keyword, true
}

// Reason returns why the message was ignored. ok is false for matched outcomes.
func (o Outcome) Reason() (reason IgnoreReason, ok bool) {
	if o.IsMatched() {
		return "", false
	}
	return o.reason, true
}

func (o Outcome) String() string {
	if o.IsMatched() {
		return fmt.Sprintf("Matched(%q)", o.keyword)
	}
	return fmt.Sprintf("Ignored(%s)", o.reason)
}
