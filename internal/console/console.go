// Package console renders notifications and navigation for the terminal front end.
package console

import (
	"fmt"
	"io"
	"sync"

	"siack/internal/apperr"
	"siack/internal/session"

	"go.uber.org/zap"
)

// Console prints modal messages and remembers the page the flows navigated to.
type Console struct {
	mu   sync.Mutex
	out  io.Writer
	page string
	log  *zap.Logger
}

func New(out io.Writer, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{out: out, page: "/", log: log}
}

func (c *Console) Notify(title, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "[%s] %s\n", title, message)
}

func (c *Console) Navigate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debug("navigate", zap.String("from", c.page), zap.String("to", path))
	c.page = path
	fmt.Fprintf(c.out, "-> %s\n", path)
}

// Page returns the last navigation target.
func (c *Console) Page() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// FieldErrors prints each field-scoped error on its own line.
func (c *Console) FieldErrors(errs apperr.FieldErrors) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fe := range errs {
		fmt.Fprintf(c.out, "  ! %s\n", fe.Message)
	}
}

// Session prints the session view used by the whoami command.
func (c *Console) Session(snap session.Snapshot, roleLabel string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !snap.LoggedIn() || snap.Profile == nil {
		fmt.Fprintln(c.out, "로그인되어 있지 않습니다.")
		return
	}
	p := snap.Profile
	fmt.Fprintf(c.out, "%s (%s)\n", p.Username, roleLabel)
	fmt.Fprintf(c.out, "  닉네임        %s\n", p.Nickname)
	fmt.Fprintf(c.out, "  이메일        %s\n", p.Email)
	fmt.Fprintf(c.out, "  휴대전화번호  %s\n", p.Phone)
	if p.StatusMessage != "" {
		fmt.Fprintf(c.out, "  상태 메시지   %s\n", p.StatusMessage)
	}
	if p.ProfileImageURL != "" {
		fmt.Fprintf(c.out, "  프로필 이미지 %s\n", p.ProfileImageURL)
	}
}
