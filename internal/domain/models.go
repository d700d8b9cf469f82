package domain

import "fmt"

// Role is the resolved privilege level of a user. It is a tagged variant
// rather than an integer discriminant: a LeaderboardAdmin always carries the
// leaderboard it is scoped to alongside the role value.
type Role string

const (
	RoleNone             Role = ""
	RoleMaster           Role = "master"
	RoleLeaderboardAdmin Role = "leaderboard_admin"
)

// Valid reports whether the role is one of the storable variants
func (r Role) Valid() bool {
	return r == RoleMaster || r == RoleLeaderboardAdmin
}

// LeaderboardRef identifies a leaderboard by chat ID and display name
type LeaderboardRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MasterRef is the sentinel reference carried by master credentials
var MasterRef = LeaderboardRef{ID: 0, Name: "all"}

// Credential maps a hashed secret to a role. Keyed in the credentials
// collection by the hex SHA-1 digest of the plaintext secret; the plaintext
// is never stored.
type Credential struct {
	Role        Role           `json:"role"`
	Leaderboard LeaderboardRef `json:"leaderboard"`
}

// AdminBinding records a user's resolved role. Keyed in the admins
// collection by Telegram user ID. A user holds at most one binding; a later
// successful /admin with a different secret overwrites it (last write wins).
type AdminBinding struct {
	Name          string         `json:"name"`
	Role          Role           `json:"role"`
	CredentialKey string         `json:"credential_key"`
	Leaderboard   LeaderboardRef `json:"leaderboard"`
}

// ScoredGroup is a named, scored entry inside a leaderboard. Key is the hex
// SHA-1 digest of the name, so equal names map to the same group. Seq
// records insertion order; the scoreboard sort keeps it for ties.
type ScoredGroup struct {
	LeaderboardID int64  `json:"leaderboard_id"`
	Key           string `json:"key"`
	Name          string `json:"name"`
	Score         int64  `json:"score"`
	Seq           int64  `json:"seq"`
}

// Leaderboard is a collection of scored groups bound to one Telegram chat
type Leaderboard struct {
	ID           int64                   `json:"id"`
	Name         string                  `json:"name"`
	SecretDigest string                  `json:"secret_digest"`
	Groups       map[string]*ScoredGroup `json:"groups"`
	NextSeq      int64                   `json:"next_seq"`
}

// Collection snapshots as loaded from and saved to the store. Each is a
// flat keyed mapping persisted wholesale.
type (
	Admins       map[int64]*AdminBinding
	Credentials  map[string]*Credential
	Leaderboards map[int64]*Leaderboard
)

// Validate checks leaderboard invariants before persisting
func (l *Leaderboard) Validate() error {
	if l.ID == 0 {
		return fmt.Errorf("%w: leaderboard chat ID must be set", ErrInvalidArgument)
	}
	if l.Name == "" {
		return fmt.Errorf("%w: leaderboard name cannot be empty", ErrInvalidArgument)
	}
	if l.SecretDigest == "" {
		return fmt.Errorf("%w: leaderboard secret digest must be set", ErrInvalidArgument)
	}
	return nil
}

// Validate checks binding invariants before persisting
func (b *AdminBinding) Validate() error {
	if !b.Role.Valid() {
		return fmt.Errorf("%w: invalid role %q", ErrInvalidArgument, string(b.Role))
	}
	if b.CredentialKey == "" {
		return fmt.Errorf("%w: credential key must be set", ErrInvalidArgument)
	}
	return nil
}
