package services

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultSessionTTL      = 2 * time.Hour
	sessionCleanupInterval = 10 * time.Minute
)

// VisitorSession is the UI state owned by one visitor
type VisitorSession struct {
	Form *ContactForm
	FAQ  *FAQAccordion
}

// VisitorStore keeps visitor sessions in memory with a sliding TTL
type VisitorStore struct {
	cache   *gocache.Cache
	ttl     time.Duration
	mu      sync.Mutex
	factory func() *VisitorSession
}

// NewVisitorStore creates a store whose sessions are built by factory on first use
func NewVisitorStore(ttl time.Duration, factory func() *VisitorSession) *VisitorStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &VisitorStore{
		cache:   gocache.New(ttl, sessionCleanupInterval),
		ttl:     ttl,
		factory: factory,
	}
}

// Get returns the visitor's session, creating it on a miss and extending its TTL
func (s *VisitorStore) Get(id string) *VisitorSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(id); ok {
		sess := v.(*VisitorSession)
		s.cache.Set(id, sess, s.ttl)
		return sess
	}
	sess := s.factory()
	s.cache.Set(id, sess, s.ttl)
	return sess
}

// Peek returns the session without creating one
func (s *VisitorStore) Peek(id string) (*VisitorSession, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*VisitorSession), true
}

// Reset drops the visitor's state
func (s *VisitorStore) Reset(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions
func (s *VisitorStore) Count() int {
	return s.cache.ItemCount()
}
