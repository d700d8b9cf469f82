package bot

import (
	"strings"
	"testing"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot/models"
)

func newTestLocalizer(t *testing.T) locale.Localizer {
	t.Helper()
	localizer, err := locale.NewLocalizer(locale.NewLocale(locale.En))
	if err != nil {
		t.Fatalf("failed to create localizer: %v", err)
	}
	return localizer
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want string
	}{
		{"first and last", &models.User{FirstName: "Jane", LastName: "Doe"}, "Jane Doe"},
		{"first only", &models.User{FirstName: "Jane"}, "Jane"},
		{"last only", &models.User{LastName: "Doe"}, "Doe"},
		{"username fallback", &models.User{Username: "jdoe"}, "jdoe"},
		{"nothing set", &models.User{}, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.user); got != tt.want {
				t.Errorf("displayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/admin secret123", "secret123"},
		{"/admin", ""},
		{"/admin   ", ""},
		{"/newgroup The Eagles", "The Eagles"},
		{"/setscore The Eagles 10", "The Eagles 10"},
	}

	for _, tt := range tests {
		if got := commandArgs(tt.text); got != tt.want {
			t.Errorf("commandArgs(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestAuthorizedForBoard(t *testing.T) {
	boundRef := domain.LeaderboardRef{ID: 42, Name: "Chat"}

	tests := []struct {
		name          string
		role          domain.Role
		ref           domain.LeaderboardRef
		leaderboardID int64
		want          bool
	}{
		{"master acts on any board", domain.RoleMaster, domain.MasterRef, 42, true},
		{"admin acts on the bound board", domain.RoleLeaderboardAdmin, boundRef, 42, true},
		{"admin rejected on another board", domain.RoleLeaderboardAdmin, boundRef, 43, false},
		{"unbound user rejected", domain.RoleNone, domain.LeaderboardRef{}, 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := authorizedForBoard(tt.role, tt.ref, tt.leaderboardID); got != tt.want {
				t.Errorf("authorizedForBoard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderScoreboard(t *testing.T) {
	handler := &BotHandler{localizer: newTestLocalizer(t)}

	t.Run("medals for the top three, ordinals below", func(t *testing.T) {
		board := &domain.Leaderboard{
			ID:   -100,
			Name: "Quiz Night",
			Groups: map[string]*domain.ScoredGroup{
				"a": {Key: "a", Name: "Alpha", Score: 40, Seq: 0},
				"b": {Key: "b", Name: "Bravo", Score: 30, Seq: 1},
				"c": {Key: "c", Name: "Charlie", Score: 20, Seq: 2},
				"d": {Key: "d", Name: "Delta", Score: 10, Seq: 3},
			},
		}

		text := handler.renderScoreboard(board)

		for _, want := range []string{
			"Quiz Night",
			"🥇 Alpha: 40",
			"🥈 Bravo: 30",
			"🥉 Charlie: 20",
			"4. Delta: 10",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("scoreboard missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("empty board", func(t *testing.T) {
		board := &domain.Leaderboard{ID: -100, Name: "Quiz Night", Groups: map[string]*domain.ScoredGroup{}}
		text := handler.renderScoreboard(board)
		if strings.Contains(text, "🥇") {
			t.Errorf("empty board must not render medals: %s", text)
		}
		if text == "" {
			t.Errorf("empty board must still produce a message")
		}
	})
}
