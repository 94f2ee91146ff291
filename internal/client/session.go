package client

import "sync"

// Session holds the current bearer token for a client. Requests read the
// token from here at build time, so credentials are injected per request
// instead of being baked into a shared default header.
type Session struct {
	mu    sync.RWMutex
	token string
}

// Set stores a freshly minted token.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current token, or the empty string when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear forgets the token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Active reports whether a token is held. It says nothing about whether
// the server still accepts it.
func (s *Session) Active() bool {
	return s.Token() != ""
}
