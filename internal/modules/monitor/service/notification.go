package service

import (
	"fmt"
	"html"
	"strings"

	groupDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
)

// Telegram rejects messages over 4096 characters; the rest of the template fits in the difference.
const maxQuotedText = 3500

// FormatNotification renders the HTML message sent to the operator for a hit
func FormatNotification(group *groupDomain.Group, keyword string, ev domain.Event, permalink string) string {
	text := []rune(ev.Text)
	quoted := ev.Text
	if len(text) > maxQuotedText {
		quoted = string(text[:maxQuotedText]) + "…"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Group: %s\n", html.EscapeString(group.Title))
	fmt.Fprintf(&b, "Keyword: <b>%s</b>\n", html.EscapeString(keyword))
	fmt.Fprintf(&b, "Sender: %s\n", html.EscapeString(ev.Sender()))
	fmt.Fprintf(&b, "Text: %s", html.EscapeString(quoted))
	if permalink != "" {
		fmt.Fprintf(&b, "\n\n<a href=\"%s\">Open message</a>", html.EscapeString(permalink))
	}
	return b.String()
}
