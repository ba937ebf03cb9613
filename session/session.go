package session

import (
	"context"
	"time"

	"github.com/fundwit/go-commons/types"
)

type Session struct {
	Context context.Context `json:"-"`

	Token    string   `json:"token"`
	Identity Identity `json:"identity"`

	SigningTime time.Time `json:"-"`
}

type Identity struct {
	ID       types.ID `json:"id"`
	Name     string   `json:"name"`
	Nickname string   `json:"nickname"`
}

func (s *Session) Clone() Session {
	return Session{Context: s.Context, Token: s.Token, Identity: s.Identity, SigningTime: s.SigningTime}
}

// Ctx is the request context, background when the session was built outside a request.
func (s *Session) Ctx() context.Context {
	if s == nil || s.Context == nil {
		return context.Background()
	}
	return s.Context
}

// UserID is zero for an anonymous session.
func (s *Session) UserID() types.ID {
	if s == nil {
		return 0
	}
	return s.Identity.ID
}
