package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/logger"
)

// Collection document names
const (
	collectionAdmins       = "admins"
	collectionCredentials  = "passwords"
	collectionLeaderboards = "leaderboards"
)

// DocumentStore persists the three collections as JSON documents in SQLite,
// one row per collection. Documents are loaded and replaced wholesale, same
// as the file backend, but related collections can be written in a single
// transaction.
type DocumentStore struct {
	queue  *DBQueue
	logger *logger.Logger
}

// NewDocumentStore creates a DocumentStore and ensures its schema
func NewDocumentStore(queue *DBQueue, log *logger.Logger) (*DocumentStore, error) {
	s := &DocumentStore{queue: queue, logger: log}

	err := queue.Execute(func(db *sql.DB) error {
		_, err := db.Exec(`
			CREATE TABLE IF NOT EXISTS collections (
				name TEXT PRIMARY KEY,
				body_json TEXT NOT NULL,
				updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)
		`)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// load reads one collection document into out; a missing row leaves out untouched
func (s *DocumentStore) load(ctx context.Context, name string, out interface{}) error {
	var body string
	err := s.queue.Execute(func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `SELECT body_json FROM collections WHERE name = ?`, name)
		return row.Scan(&body)
	})
	if err == sql.ErrNoRows {
		s.logger.Debug("collection not present yet", "collection", name)
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(body), out)
}

func upsertCollection(ctx context.Context, tx *sql.Tx, name string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO collections (name, body_json, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			body_json = excluded.body_json,
			updated_at = CURRENT_TIMESTAMP
	`, name, string(body))
	return err
}

// save replaces the named collection documents in one transaction
func (s *DocumentStore) save(ctx context.Context, docs map[string]interface{}) error {
	return s.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		for name, doc := range docs {
			if err := upsertCollection(ctx, tx, name, doc); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
}

// LoadAdmins loads the admin bindings collection
func (s *DocumentStore) LoadAdmins(ctx context.Context) (domain.Admins, error) {
	admins := domain.Admins{}
	if err := s.load(ctx, collectionAdmins, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// SaveAdmins replaces the admin bindings collection
func (s *DocumentStore) SaveAdmins(ctx context.Context, admins domain.Admins) error {
	return s.save(ctx, map[string]interface{}{collectionAdmins: admins})
}

// LoadCredentials loads the credential registry collection
func (s *DocumentStore) LoadCredentials(ctx context.Context) (domain.Credentials, error) {
	credentials := domain.Credentials{}
	if err := s.load(ctx, collectionCredentials, &credentials); err != nil {
		return nil, err
	}
	return credentials, nil
}

// SaveCredentials replaces the credential registry collection
func (s *DocumentStore) SaveCredentials(ctx context.Context, credentials domain.Credentials) error {
	return s.save(ctx, map[string]interface{}{collectionCredentials: credentials})
}

// LoadLeaderboards loads the leaderboards collection
func (s *DocumentStore) LoadLeaderboards(ctx context.Context) (domain.Leaderboards, error) {
	leaderboards := domain.Leaderboards{}
	if err := s.load(ctx, collectionLeaderboards, &leaderboards); err != nil {
		return nil, err
	}
	return leaderboards, nil
}

// SaveLeaderboards replaces the leaderboards collection
func (s *DocumentStore) SaveLeaderboards(ctx context.Context, leaderboards domain.Leaderboards) error {
	return s.save(ctx, map[string]interface{}{collectionLeaderboards: leaderboards})
}

// SaveLeaderboardState replaces credentials and leaderboards in one
// transaction, so leaderboard creation and deletion never persist one
// collection without the other
func (s *DocumentStore) SaveLeaderboardState(ctx context.Context, credentials domain.Credentials, leaderboards domain.Leaderboards) error {
	return s.save(ctx, map[string]interface{}{
		collectionCredentials:  credentials,
		collectionLeaderboards: leaderboards,
	})
}
