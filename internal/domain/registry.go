package domain

import (
	"context"
	"crypto/rand"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math/big"
)

// secretCharset matches the character set the leaderboard passwords have
// always been minted from.
const secretCharset = "abcdefghijklmnopqstuvwxyzABCDEFGHIJKLMNOPQSTUVWXYZ0123456789"

const (
	minSecretLength     = 8
	defaultSecretLength = 10
	maxMintAttempts     = 1000
)

// Digest returns the deterministic hex SHA-1 digest of a plaintext secret.
// Also used to derive group keys from group names.
func Digest(secret string) string {
	sum := sha1.Sum([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// Registry resolves roles and manages credential bindings
type Registry struct {
	store  Store
	logger Logger
}

// NewRegistry creates a credential registry over the given store
func NewRegistry(store Store, logger Logger) *Registry {
	return &Registry{store: store, logger: logger}
}

// Resolve returns the user's role and bound leaderboard. Users without a
// binding resolve to RoleNone.
func (r *Registry) Resolve(ctx context.Context, userID int64) (Role, LeaderboardRef, error) {
	admins, err := r.store.LoadAdmins(ctx)
	if err != nil {
		return RoleNone, LeaderboardRef{}, err
	}

	binding, ok := admins[userID]
	if !ok {
		return RoleNone, LeaderboardRef{}, nil
	}
	return binding.Role, binding.Leaderboard, nil
}

// Bind verifies a plaintext secret against the credential registry and binds
// the user to the matching role. Any prior binding is overwritten: the last
// successful /admin wins, and the returned binding names the new role so the
// overwrite is visible to the user.
func (r *Registry) Bind(ctx context.Context, userID int64, displayName, secret string) (*AdminBinding, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: secret cannot be empty", ErrInvalidArgument)
	}

	credentials, err := r.store.LoadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	digest := Digest(secret)
	credential, ok := credentials[digest]
	if !ok {
		r.logger.Warn("bind attempt with unknown credential", "user_id", userID)
		return nil, ErrAuthenticationFailed
	}

	admins, err := r.store.LoadAdmins(ctx)
	if err != nil {
		return nil, err
	}

	binding := &AdminBinding{
		Name:          displayName,
		Role:          credential.Role,
		CredentialKey: digest,
		Leaderboard:   credential.Leaderboard,
	}
	if err := binding.Validate(); err != nil {
		return nil, err
	}

	admins[userID] = binding
	if err := r.store.SaveAdmins(ctx, admins); err != nil {
		return nil, err
	}

	r.logger.Info("admin binding stored",
		"user_id", userID,
		"role", string(binding.Role),
		"leaderboard_id", binding.Leaderboard.ID,
	)
	return binding, nil
}

// GenerateSecret mints a random printable secret whose digest is not yet
// present in the credential registry. It retries up to 1000 times at each
// length and grows the length when a level is exhausted, so digests stay
// unique as leaderboards accumulate.
func (r *Registry) GenerateSecret(ctx context.Context) (raw, digest string, err error) {
	credentials, err := r.store.LoadCredentials(ctx)
	if err != nil {
		return "", "", err
	}
	return mintSecret(credentials, defaultSecretLength)
}

// mintSecret is the uniqueness-retry loop, separated so tests can drive it
// against a prepared credential set
func mintSecret(existing Credentials, length int) (raw, digest string, err error) {
	if length < minSecretLength {
		length = minSecretLength
	}

	for {
		for attempt := 0; attempt < maxMintAttempts; attempt++ {
			candidate, err := randomSecret(length)
			if err != nil {
				return "", "", err
			}
			candidateDigest := Digest(candidate)
			if _, taken := existing[candidateDigest]; !taken {
				return candidate, candidateDigest, nil
			}
		}
		length++
	}
}

// randomSecret draws length characters from the secret charset
func randomSecret(length int) (string, error) {
	max := big.NewInt(int64(len(secretCharset)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random character: %w", err)
		}
		buf[i] = secretCharset[n.Int64()]
	}
	return string(buf), nil
}

// SeedMaster registers the master credential for the given digest if no
// credential is stored under it yet. Called once at startup.
func (r *Registry) SeedMaster(ctx context.Context, digest string) error {
	credentials, err := r.store.LoadCredentials(ctx)
	if err != nil {
		return err
	}

	if _, ok := credentials[digest]; ok {
		return nil
	}

	credentials[digest] = &Credential{
		Role:        RoleMaster,
		Leaderboard: MasterRef,
	}
	if err := r.store.SaveCredentials(ctx, credentials); err != nil {
		return err
	}

	r.logger.Info("master credential seeded")
	return nil
}
