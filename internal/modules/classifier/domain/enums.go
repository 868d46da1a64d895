//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// IgnoreReason explains why a message was not forwarded
// ENUM(no_match,suppressed_by_minus_word,suspected_evasion)
type IgnoreReason string
