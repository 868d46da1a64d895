package mtproto

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/samber/oops"
)

// terminalCode asks for the login code on the terminal. It is only used the
// first time, before a session file exists.
func terminalCode(in io.Reader, out io.Writer) auth.CodeAuthenticatorFunc {
	return func(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
		fmt.Fprint(out, color.CyanString("Enter the login code Telegram sent to your account: "))

		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			return "", oops.With("context", "failed to read login code").Wrap(err)
		}

		code := strings.TrimSpace(line)
		if code == "" {
			return "", oops.Errorf("empty login code")
		}
		return code, nil
	}
}
