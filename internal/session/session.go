// Package session owns the authentication state of the client: the
// persisted bearer token and the identity decoded from it. Every other
// component reads identity through here; nothing else touches the
// credential store.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Authenticator posts credentials and returns the issued token. The
// api package's auth client implements it.
type Authenticator interface {
	Login(ctx context.Context, login, password string) (string, error)
}

// Store holds the current session. Safe for concurrent use; identity
// changes are pushed to subscribers so navigation can react without
// polling.
type Store struct {
	auth   Authenticator
	tokens TokenStore
	log    zerolog.Logger

	mu      sync.RWMutex
	token   string
	current *Identity
	subs    map[int]chan *Identity
	nextSub int
}

func NewStore(auth Authenticator, tokens TokenStore, log zerolog.Logger) *Store {
	return &Store{
		auth:   auth,
		tokens: tokens,
		log:    log.With().Str("component", "session").Logger(),
		subs:   make(map[int]chan *Identity),
	}
}

// Login exchanges credentials for a token, persists it and publishes
// the decoded identity. The prior session, if any, is replaced only
// once the exchange succeeds; a failed login leaves it untouched.
func (s *Store) Login(ctx context.Context, login, password string) (*Identity, error) {
	token, err := s.auth.Login(ctx, login, password)
	if err != nil {
		return nil, err
	}
	token = CleanToken(token)
	id, err := DecodeIdentity(token)
	if err != nil {
		return nil, fmt.Errorf("decode issued token: %w", err)
	}
	if err := s.tokens.Write(token); err != nil {
		// A session that does not survive restart is still a session.
		s.log.Warn().Err(err).Msg("persist token failed")
	}

	s.mu.Lock()
	s.token = token
	s.current = id
	s.mu.Unlock()
	s.publish(id)
	s.log.Info().Str("user", id.Email).Str("role", string(id.Role)).Msg("logged in")
	return id, nil
}

// Logout drops the persisted token and publishes a nil identity. It
// never calls the server.
func (s *Store) Logout() {
	s.clear()
	s.publish(nil)
	s.log.Info().Msg("logged out")
}

// Restore loads any persisted token at startup. A missing, malformed
// or expired token leaves the session empty; Restore never fails.
func (s *Store) Restore() *Identity {
	raw, err := s.tokens.Read()
	if err != nil {
		s.log.Warn().Err(err).Msg("credential store read failed")
		return nil
	}
	token := CleanToken(raw)
	if token == "" {
		return nil
	}
	id, err := DecodeIdentity(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("persisted token rejected")
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.current = id
	s.mu.Unlock()
	s.publish(id)
	s.log.Info().Str("user", id.Email).Msg("session restored")
	return id
}

// Current returns the last published identity, or nil when logged out.
func (s *Store) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the raw bearer token for the HTTP gateway ("" when
// there is no session).
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe returns a channel that receives the identity on every
// login, logout and restore, and a func that cancels the subscription.
func (s *Store) Subscribe() (<-chan *Identity, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan *Identity, 8)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Store) clear() {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn().Err(err).Msg("credential store clear failed")
	}
	s.mu.Lock()
	s.token = ""
	s.current = nil
	s.mu.Unlock()
}

func (s *Store) publish(id *Identity) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- id:
		default:
			// Slow subscriber; it will catch up via Current.
		}
	}
}
