package domain_test

import (
	"testing"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
)

func TestKeyword_Polarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kw   domain.Keyword
		want domain.Polarity
	}{
		{name: "search word", kw: domain.Keyword{Text: "golang"}, want: domain.PolaritySearch},
		{name: "minus word", kw: domain.Keyword{Text: "junior", Minus: true}, want: domain.PolarityMinus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.kw.Polarity(); got != tt.want {
				t.Errorf("Polarity() = %q, want %q", got, tt.want)
			}
		})
	}
}
