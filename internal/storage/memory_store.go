package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
)

// MemoryStore is an in-memory Store used by tests. It round-trips every
// snapshot through JSON so callers get the same copy semantics as the
// durable backends: mutating a loaded snapshot without saving it does not
// change the stored state.
type MemoryStore struct {
	mu           sync.Mutex
	admins       []byte
	credentials  []byte
	leaderboards []byte
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func roundTripLoad(body []byte, out interface{}) error {
	if body == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// LoadAdmins loads the admin bindings collection
func (s *MemoryStore) LoadAdmins(ctx context.Context) (domain.Admins, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	admins := domain.Admins{}
	if err := roundTripLoad(s.admins, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// SaveAdmins replaces the admin bindings collection
func (s *MemoryStore) SaveAdmins(ctx context.Context, admins domain.Admins) error {
	body, err := json.Marshal(admins)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins = body
	return nil
}

// LoadCredentials loads the credential registry collection
func (s *MemoryStore) LoadCredentials(ctx context.Context) (domain.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	credentials := domain.Credentials{}
	if err := roundTripLoad(s.credentials, &credentials); err != nil {
		return nil, err
	}
	return credentials, nil
}

// SaveCredentials replaces the credential registry collection
func (s *MemoryStore) SaveCredentials(ctx context.Context, credentials domain.Credentials) error {
	body, err := json.Marshal(credentials)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = body
	return nil
}

// LoadLeaderboards loads the leaderboards collection
func (s *MemoryStore) LoadLeaderboards(ctx context.Context) (domain.Leaderboards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	leaderboards := domain.Leaderboards{}
	if err := roundTripLoad(s.leaderboards, &leaderboards); err != nil {
		return nil, err
	}
	return leaderboards, nil
}

// SaveLeaderboards replaces the leaderboards collection
func (s *MemoryStore) SaveLeaderboards(ctx context.Context, leaderboards domain.Leaderboards) error {
	body, err := json.Marshal(leaderboards)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leaderboards = body
	return nil
}

// SaveLeaderboardState replaces credentials and leaderboards together
func (s *MemoryStore) SaveLeaderboardState(ctx context.Context, credentials domain.Credentials, leaderboards domain.Leaderboards) error {
	credBody, err := json.Marshal(credentials)
	if err != nil {
		return err
	}
	boardBody, err := json.Marshal(leaderboards)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentials = credBody
	s.leaderboards = boardBody
	return nil
}
