package domain

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// noopLogger implements the Logger interface for testing
type noopLogger struct{}

func (l *noopLogger) Debug(msg string, args ...interface{}) {}
func (l *noopLogger) Info(msg string, args ...interface{})  {}
func (l *noopLogger) Warn(msg string, args ...interface{})  {}
func (l *noopLogger) Error(msg string, args ...interface{}) {}

// fakeStore implements the Store interface over plain maps for testing
type fakeStore struct {
	admins       Admins
	credentials  Credentials
	leaderboards Leaderboards
	loadErr      error
	saveErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		admins:       Admins{},
		credentials:  Credentials{},
		leaderboards: Leaderboards{},
	}
}

func (f *fakeStore) LoadAdmins(ctx context.Context) (Admins, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.admins, nil
}

func (f *fakeStore) SaveAdmins(ctx context.Context, admins Admins) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.admins = admins
	return nil
}

func (f *fakeStore) LoadCredentials(ctx context.Context) (Credentials, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.credentials, nil
}

func (f *fakeStore) SaveCredentials(ctx context.Context, credentials Credentials) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.credentials = credentials
	return nil
}

func (f *fakeStore) LoadLeaderboards(ctx context.Context) (Leaderboards, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.leaderboards, nil
}

func (f *fakeStore) SaveLeaderboards(ctx context.Context, leaderboards Leaderboards) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.leaderboards = leaderboards
	return nil
}

func (f *fakeStore) SaveLeaderboardState(ctx context.Context, credentials Credentials, leaderboards Leaderboards) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.credentials = credentials
	f.leaderboards = leaderboards
	return nil
}

func isHex(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// TestDigestProperties tests that digests are deterministic 40-character
// lowercase hex strings
func TestDigestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("digest is deterministic lowercase hex of length 40", prop.ForAll(
		func(secret string) bool {
			d1 := Digest(secret)
			d2 := Digest(secret)
			return d1 == d2 && len(d1) == 40 && isHex(d1)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestSecretCharsetHasNoAmbiguousCharacters(t *testing.T) {
	if strings.ContainsAny(secretCharset, "rR") {
		t.Errorf("secret charset must not contain 'r' or 'R', got: %s", secretCharset)
	}
}

// TestMintSecretUniqueness tests that minted secrets never collide with
// already registered digests and respect the minimum length
func TestMintSecretUniqueness(t *testing.T) {
	existing := Credentials{}

	for i := 0; i < 200; i++ {
		raw, digest, err := mintSecret(existing, defaultSecretLength)
		if err != nil {
			t.Fatalf("mintSecret failed on iteration %d: %v", i, err)
		}
		if len(raw) < minSecretLength {
			t.Fatalf("minted secret %q shorter than minimum length %d", raw, minSecretLength)
		}
		for _, c := range raw {
			if !strings.ContainsRune(secretCharset, c) {
				t.Fatalf("minted secret %q contains character %q outside the charset", raw, c)
			}
		}
		if Digest(raw) != digest {
			t.Fatalf("returned digest does not match digest of raw secret")
		}
		if _, taken := existing[digest]; taken {
			t.Fatalf("minted digest %s collides with an existing credential", digest)
		}
		existing[digest] = &Credential{Role: RoleLeaderboardAdmin}
	}
}

func TestMintSecretGrowsBelowMinimumLength(t *testing.T) {
	raw, _, err := mintSecret(Credentials{}, 1)
	if err != nil {
		t.Fatalf("mintSecret failed: %v", err)
	}
	if len(raw) < minSecretLength {
		t.Errorf("expected secret of at least %d characters, got %q", minSecretLength, raw)
	}
}

func TestBind(t *testing.T) {
	ctx := context.Background()
	masterSecret := "master-secret"
	boardSecret := "board-secret"

	newRegistry := func() (*Registry, *fakeStore) {
		store := newFakeStore()
		store.credentials[Digest(masterSecret)] = &Credential{Role: RoleMaster, Leaderboard: MasterRef}
		store.credentials[Digest(boardSecret)] = &Credential{
			Role:        RoleLeaderboardAdmin,
			Leaderboard: LeaderboardRef{ID: 100, Name: "Test Chat"},
		}
		return NewRegistry(store, &noopLogger{}), store
	}

	t.Run("empty secret is rejected", func(t *testing.T) {
		registry, _ := newRegistry()
		_, err := registry.Bind(ctx, 1, "Alice", "")
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("unknown secret fails authentication", func(t *testing.T) {
		registry, store := newRegistry()
		_, err := registry.Bind(ctx, 1, "Alice", "wrong-secret")
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Errorf("expected ErrAuthenticationFailed, got %v", err)
		}
		if len(store.admins) != 0 {
			t.Errorf("failed bind must not store a binding")
		}
	})

	t.Run("valid master secret binds master role", func(t *testing.T) {
		registry, store := newRegistry()
		binding, err := registry.Bind(ctx, 1, "Alice", masterSecret)
		if err != nil {
			t.Fatalf("Bind failed: %v", err)
		}
		if binding.Role != RoleMaster {
			t.Errorf("expected master role, got %s", binding.Role)
		}
		if binding.Name != "Alice" {
			t.Errorf("expected binding name Alice, got %s", binding.Name)
		}
		if store.admins[1] == nil {
			t.Fatalf("binding was not persisted")
		}
	})

	t.Run("rebinding overwrites the previous role", func(t *testing.T) {
		registry, store := newRegistry()
		if _, err := registry.Bind(ctx, 1, "Alice", masterSecret); err != nil {
			t.Fatalf("first Bind failed: %v", err)
		}
		binding, err := registry.Bind(ctx, 1, "Alice", boardSecret)
		if err != nil {
			t.Fatalf("second Bind failed: %v", err)
		}
		if binding.Role != RoleLeaderboardAdmin {
			t.Errorf("expected leaderboard admin role after rebind, got %s", binding.Role)
		}
		if binding.Leaderboard.ID != 100 {
			t.Errorf("expected leaderboard 100, got %d", binding.Leaderboard.ID)
		}
		if len(store.admins) != 1 {
			t.Errorf("rebind must overwrite, not add: %d bindings", len(store.admins))
		}
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	store.admins[7] = &AdminBinding{
		Name:        "Bob",
		Role:        RoleLeaderboardAdmin,
		Leaderboard: LeaderboardRef{ID: 42, Name: "Chat"},
	}
	registry := NewRegistry(store, &noopLogger{})

	role, ref, err := registry.Resolve(ctx, 7)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if role != RoleLeaderboardAdmin || ref.ID != 42 {
		t.Errorf("expected bound admin for leaderboard 42, got role=%s ref=%+v", role, ref)
	}

	role, _, err = registry.Resolve(ctx, 8)
	if err != nil {
		t.Fatalf("Resolve failed for unbound user: %v", err)
	}
	if role != RoleNone {
		t.Errorf("expected RoleNone for unbound user, got %s", role)
	}
}

func TestSeedMaster(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	registry := NewRegistry(store, &noopLogger{})
	digest := Digest("master-secret")

	if err := registry.SeedMaster(ctx, digest); err != nil {
		t.Fatalf("SeedMaster failed: %v", err)
	}
	credential := store.credentials[digest]
	if credential == nil || credential.Role != RoleMaster {
		t.Fatalf("expected seeded master credential, got %+v", credential)
	}

	// Seeding again must not replace an existing credential
	store.credentials[digest] = &Credential{Role: RoleLeaderboardAdmin, Leaderboard: LeaderboardRef{ID: 5}}
	if err := registry.SeedMaster(ctx, digest); err != nil {
		t.Fatalf("second SeedMaster failed: %v", err)
	}
	if store.credentials[digest].Role != RoleLeaderboardAdmin {
		t.Errorf("SeedMaster overwrote an existing credential")
	}
}
