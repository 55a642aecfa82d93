package bookingsession

import (
	"context"
	"sync"
	"time"

	"github.com/MarcelSpeerschneider/beautybookingsystem/internal/domain"
)

// MemoryStore сессии в памяти процесса для запуска без Redis
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]domain.BookingSession
	now      func() time.Time
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.BookingSession),
		now:      time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, session *domain.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	if session.IsExpired(s.now()) {
		return ErrSessionNotFound
	}

	stored := *session
	stored.SelectedServiceIDs = append([]string(nil), session.SelectedServiceIDs...)
	s.sessions[session.ID] = stored
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok || session.IsExpired(s.now()) {
		delete(s.sessions, id)
		return nil, ErrSessionNotFound
	}
	session.SelectedServiceIDs = append([]string(nil), session.SelectedServiceIDs...)
	return &session, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) evictExpired() {
	now := s.now()
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
		}
	}
}
