package domain

import "context"

// Store is the persistence port for the three durable collections. Each
// collection is loaded and saved wholesale: handlers read fresh, mutate the
// snapshot, and write it back, so the last writer wins.
type Store interface {
	LoadAdmins(ctx context.Context) (Admins, error)
	SaveAdmins(ctx context.Context, admins Admins) error

	LoadCredentials(ctx context.Context) (Credentials, error)
	SaveCredentials(ctx context.Context, credentials Credentials) error

	LoadLeaderboards(ctx context.Context) (Leaderboards, error)
	SaveLeaderboards(ctx context.Context, leaderboards Leaderboards) error

	// SaveLeaderboardState persists the credentials and leaderboards
	// collections as a unit. Leaderboard creation and deletion go through
	// here so no leaderboard-without-credential state is observably
	// persisted by a backend that can write both at once.
	SaveLeaderboardState(ctx context.Context, credentials Credentials, leaderboards Leaderboards) error
}

// Logger defines the logging interface used by domain services
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}
