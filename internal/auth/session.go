package auth

import (
	"context"

	"Storefront/internal/kv"
)

const sessionKeyPrefix = "user:"

// Session is the signed-in identity record other services observe. Only the
// auth service writes it; everyone else reads presence.
type Session struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// SessionStore persists session records through the KV adapter. A session
// exists from login until signout; token expiry alone does not remove it.
type SessionStore struct {
	KV kv.Store
}

func (s *SessionStore) Put(ctx context.Context, sess Session) error {
	return s.KV.Write(ctx, sessionKeyPrefix+sess.UID, sess)
}

func (s *SessionStore) Get(ctx context.Context, uid string) (Session, bool) {
	var sess Session
	ok := s.KV.Read(ctx, sessionKeyPrefix+uid, &sess)
	return sess, ok
}

func (s *SessionStore) Delete(ctx context.Context, uid string) error {
	return s.KV.Delete(ctx, sessionKeyPrefix+uid)
}
