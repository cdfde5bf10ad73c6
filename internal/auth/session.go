package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "khattak_mart_auth"

// Sessions is an in-memory set of admin session tokens with expiry.
// Restarting the process logs everyone out.
type Sessions struct {
	mu     sync.Mutex
	ttl    time.Duration
	tokens map[string]time.Time
	now    func() time.Time
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{ttl: ttl, tokens: map[string]time.Time{}, now: time.Now}
}

func (s *Sessions) TTL() time.Duration { return s.ttl }

func (s *Sessions) Issue() string {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for t, exp := range s.tokens {
		if !now.Before(exp) {
			delete(s.tokens, t)
		}
	}
	s.tokens[token] = now.Add(s.ttl)
	return token
}

func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	if !ok {
		return false
	}
	if !s.now().Before(exp) {
		delete(s.tokens, token)
		return false
	}
	return true
}

func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
