package webfake

// Session is an in-memory session store. Setting an existing key overwrites
// it; reading a missing key returns nil.
type Session struct {
	values map[string]any
}

func newSession() *Session {
	return &Session{values: make(map[string]any)}
}

func (s *Session) Get(key string) any { return s.values[key] }

// String returns the value under key as a string, or "" when it is missing or
// not a string.
func (s *Session) String(key string) string {
	v, _ := s.values[key].(string)
	return v
}

func (s *Session) Set(key string, v any) { s.values[key] = v }

func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *Session) Delete(key string) { delete(s.values, key) }

// Count returns the number of stored keys.
func (s *Session) Count() int { return len(s.values) }
