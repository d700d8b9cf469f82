package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/logger"
)

// FileStore persists each collection as a pretty-printed JSON file in the
// data directory (admins.json, passwords.json, leaderboards.json). Files
// are human-readable and reloaded wholesale on every access; a missing file
// loads as an empty collection and appears on first save.
//
// Each file is written via temp file and rename. A crash between two saves
// can still leave the collections mutually inconsistent; that risk is
// accepted, the sqlite backend covers it.
type FileStore struct {
	dir    string
	logger *logger.Logger
}

// NewFileStore creates a FileStore rooted at dir, creating dir if needed
func NewFileStore(dir string, log *logger.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: log}, nil
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// load reads one collection file into out; a missing file leaves out untouched
func (s *FileStore) load(collection string, out interface{}) error {
	body, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("collection file not present yet", "collection", collection)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", s.path(collection), err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.path(collection), err)
	}
	return nil
}

// save replaces one collection file atomically
func (s *FileStore) save(collection string, doc interface{}) error {
	body, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	target := s.path(collection)
	tmp, err := os.CreateTemp(s.dir, collection+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", target, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", target, err)
	}

	s.logger.Debug("collection saved", "collection", collection)
	return nil
}

// LoadAdmins loads the admin bindings collection
func (s *FileStore) LoadAdmins(ctx context.Context) (domain.Admins, error) {
	admins := domain.Admins{}
	if err := s.load(collectionAdmins, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// SaveAdmins replaces the admin bindings collection
func (s *FileStore) SaveAdmins(ctx context.Context, admins domain.Admins) error {
	return s.save(collectionAdmins, admins)
}

// LoadCredentials loads the credential registry collection
func (s *FileStore) LoadCredentials(ctx context.Context) (domain.Credentials, error) {
	credentials := domain.Credentials{}
	if err := s.load(collectionCredentials, &credentials); err != nil {
		return nil, err
	}
	return credentials, nil
}

// SaveCredentials replaces the credential registry collection
func (s *FileStore) SaveCredentials(ctx context.Context, credentials domain.Credentials) error {
	return s.save(collectionCredentials, credentials)
}

// LoadLeaderboards loads the leaderboards collection
func (s *FileStore) LoadLeaderboards(ctx context.Context) (domain.Leaderboards, error) {
	leaderboards := domain.Leaderboards{}
	if err := s.load(collectionLeaderboards, &leaderboards); err != nil {
		return nil, err
	}
	return leaderboards, nil
}

// SaveLeaderboards replaces the leaderboards collection
func (s *FileStore) SaveLeaderboards(ctx context.Context, leaderboards domain.Leaderboards) error {
	return s.save(collectionLeaderboards, leaderboards)
}

// SaveLeaderboardState saves credentials then leaderboards. The file
// backend cannot make the pair atomic; callers accept the window.
func (s *FileStore) SaveLeaderboardState(ctx context.Context, credentials domain.Credentials, leaderboards domain.Leaderboards) error {
	if err := s.save(collectionCredentials, credentials); err != nil {
		return err
	}
	return s.save(collectionLeaderboards, leaderboards)
}
