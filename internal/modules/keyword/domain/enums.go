//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Polarity selects search keywords or minus keywords
// ENUM(search,minus)
type Polarity string
