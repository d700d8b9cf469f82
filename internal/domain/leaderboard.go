package domain

import (
	"context"
	"fmt"
)

// Service implements the leaderboard, group and score lifecycle over the
// persistence port. Every operation reloads the collections it touches
// before mutating, so concurrent external edits are observed with
// read-fresh, write-whole, last-writer-wins semantics.
type Service struct {
	store    Store
	registry *Registry
	logger   Logger
}

// NewService creates a leaderboard service
func NewService(store Store, registry *Registry, logger Logger) *Service {
	return &Service{store: store, registry: registry, logger: logger}
}

// ResolveTarget applies the shared role gating for group and score commands
// and returns the leaderboard ID the command operates on. A LeaderboardAdmin
// always targets the bound leaderboard. A Master targets the current chat
// and has no implicit leaderboard in a private chat.
func ResolveTarget(role Role, ref LeaderboardRef, chatID int64, private bool) (int64, error) {
	switch role {
	case RoleLeaderboardAdmin:
		return ref.ID, nil
	case RoleMaster:
		if private {
			return 0, fmt.Errorf("%w: master commands need a group chat to pick the leaderboard", ErrWrongContext)
		}
		return chatID, nil
	default:
		return 0, ErrUnauthorized
	}
}

// CreateLeaderboard creates a leaderboard bound to chatID together with the
// LeaderboardAdmin credential that unlocks it, persisting both collections
// as a unit. The raw secret is returned exactly once for private delivery
// to the requester and is never stored.
func (s *Service) CreateLeaderboard(ctx context.Context, chatID int64, title string, requesterID int64) (string, *Leaderboard, error) {
	role, _, err := s.registry.Resolve(ctx, requesterID)
	if err != nil {
		return "", nil, err
	}
	if role != RoleMaster {
		return "", nil, fmt.Errorf("%w: only a master admin can create leaderboards", ErrUnauthorized)
	}

	credentials, err := s.store.LoadCredentials(ctx)
	if err != nil {
		return "", nil, err
	}
	leaderboards, err := s.store.LoadLeaderboards(ctx)
	if err != nil {
		return "", nil, err
	}

	if _, ok := leaderboards[chatID]; ok {
		return "", nil, fmt.Errorf("%w: chat %d already has a leaderboard", ErrAlreadyExists, chatID)
	}

	raw, digest, err := mintSecret(credentials, defaultSecretLength)
	if err != nil {
		return "", nil, err
	}

	board := &Leaderboard{
		ID:           chatID,
		Name:         title,
		SecretDigest: digest,
		Groups:       map[string]*ScoredGroup{},
	}
	if err := board.Validate(); err != nil {
		return "", nil, err
	}

	leaderboards[chatID] = board
	credentials[digest] = &Credential{
		Role:        RoleLeaderboardAdmin,
		Leaderboard: LeaderboardRef{ID: chatID, Name: title},
	}

	if err := s.store.SaveLeaderboardState(ctx, credentials, leaderboards); err != nil {
		return "", nil, err
	}

	s.logger.Info("leaderboard created", "leaderboard_id", chatID, "title", title, "requester_id", requesterID)
	return raw, board, nil
}

// DeleteLeaderboard removes the leaderboard bound to chatID and its
// credential, so the old secret stops working. Admin bindings scoped to the
// deleted leaderboard are revoked in the same pass: a binding that survived
// would only resolve to a leaderboard that no longer exists.
func (s *Service) DeleteLeaderboard(ctx context.Context, chatID int64, requesterID int64) error {
	role, _, err := s.registry.Resolve(ctx, requesterID)
	if err != nil {
		return err
	}
	if role != RoleMaster {
		return fmt.Errorf("%w: only a master admin can delete leaderboards", ErrUnauthorized)
	}

	credentials, err := s.store.LoadCredentials(ctx)
	if err != nil {
		return err
	}
	leaderboards, err := s.store.LoadLeaderboards(ctx)
	if err != nil {
		return err
	}

	board, ok := leaderboards[chatID]
	if !ok {
		return fmt.Errorf("%w: no leaderboard bound to chat %d", ErrNotFound, chatID)
	}

	delete(leaderboards, chatID)
	delete(credentials, board.SecretDigest)

	admins, err := s.store.LoadAdmins(ctx)
	if err != nil {
		return err
	}
	revoked := 0
	for userID, binding := range admins {
		if binding.Role == RoleLeaderboardAdmin && binding.Leaderboard.ID == chatID {
			delete(admins, userID)
			revoked++
		}
	}
	if err := s.store.SaveAdmins(ctx, admins); err != nil {
		return err
	}

	if err := s.store.SaveLeaderboardState(ctx, credentials, leaderboards); err != nil {
		return err
	}

	s.logger.Info("leaderboard deleted",
		"leaderboard_id", chatID,
		"requester_id", requesterID,
		"bindings_revoked", revoked,
	)
	return nil
}

// GetLeaderboard loads the leaderboard bound to chatID
func (s *Service) GetLeaderboard(ctx context.Context, chatID int64) (*Leaderboard, error) {
	leaderboards, err := s.store.LoadLeaderboards(ctx)
	if err != nil {
		return nil, err
	}
	board, ok := leaderboards[chatID]
	if !ok {
		return nil, fmt.Errorf("%w: no leaderboard bound to chat %d", ErrNotFound, chatID)
	}
	return board, nil
}

// CreateGroup inserts a new group with score 0 into the leaderboard and
// returns it together with the board it landed on. The group key is derived
// from the name, so equal names collide and are rejected; the existing
// group is left untouched.
func (s *Service) CreateGroup(ctx context.Context, leaderboardID int64, name string) (*ScoredGroup, *Leaderboard, error) {
	if name == "" {
		return nil, nil, fmt.Errorf("%w: group name cannot be empty", ErrInvalidArgument)
	}

	leaderboards, err := s.store.LoadLeaderboards(ctx)
	if err != nil {
		return nil, nil, err
	}

	board, ok := leaderboards[leaderboardID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: no leaderboard bound to chat %d", ErrNotFound, leaderboardID)
	}

	key := Digest(name)
	if _, taken := board.Groups[key]; taken {
		return nil, nil, fmt.Errorf("%w: group %q already exists", ErrDuplicateGroup, name)
	}

	group := &ScoredGroup{
		LeaderboardID: leaderboardID,
		Key:           key,
		Name:          name,
		Score:         0,
		Seq:           board.NextSeq,
	}
	board.NextSeq++
	if board.Groups == nil {
		board.Groups = map[string]*ScoredGroup{}
	}
	board.Groups[key] = group

	if err := s.store.SaveLeaderboards(ctx, leaderboards); err != nil {
		return nil, nil, err
	}

	s.logger.Info("group created", "leaderboard_id", leaderboardID, "group", name)
	return group, board, nil
}

// AdjustScore applies a signed delta to the group's score and returns the
// new total. Scores have no floor and may go negative.
func (s *Service) AdjustScore(ctx context.Context, leaderboardID int64, groupKey string, delta int64) (*ScoredGroup, error) {
	return s.mutateScore(ctx, leaderboardID, groupKey, func(g *ScoredGroup) {
		g.Score += delta
	})
}

// SetScore overwrites the group's score outright (master override path)
func (s *Service) SetScore(ctx context.Context, leaderboardID int64, groupKey string, value int64) (*ScoredGroup, error) {
	return s.mutateScore(ctx, leaderboardID, groupKey, func(g *ScoredGroup) {
		g.Score = value
	})
}

func (s *Service) mutateScore(ctx context.Context, leaderboardID int64, groupKey string, mutate func(*ScoredGroup)) (*ScoredGroup, error) {
	leaderboards, err := s.store.LoadLeaderboards(ctx)
	if err != nil {
		return nil, err
	}

	board, ok := leaderboards[leaderboardID]
	if !ok {
		return nil, fmt.Errorf("%w: no leaderboard bound to chat %d", ErrNotFound, leaderboardID)
	}
	group, ok := board.Groups[groupKey]
	if !ok {
		return nil, fmt.Errorf("%w: no group %s in leaderboard %d", ErrNotFound, groupKey, leaderboardID)
	}

	mutate(group)

	if err := s.store.SaveLeaderboards(ctx, leaderboards); err != nil {
		return nil, err
	}

	s.logger.Debug("score updated", "leaderboard_id", leaderboardID, "group", group.Name, "score", group.Score)
	return group, nil
}
