package bot

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseCallbackTokenRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data string
		want callbackToken
	}{
		{"cancel", cancelToken(), callbackToken{Verb: verbCancel}},
		{"group pick", nameToken(-100, "abc123"), callbackToken{Verb: verbName, LeaderboardID: -100, GroupKey: "abc123"}},
		{"positive delta", addScoreToken(42, "k", 10), callbackToken{Verb: verbAddScore, LeaderboardID: 42, GroupKey: "k", Delta: 10}},
		{"negative delta", addScoreToken(42, "k", -5), callbackToken{Verb: verbAddScore, LeaderboardID: 42, GroupKey: "k", Delta: -5}},
		{"confirm delete", confirmDeleteToken(-100), callbackToken{Verb: verbConfirm, Action: confirmActionDelete, LeaderboardID: -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCallbackToken(tt.data)
			if err != nil {
				t.Fatalf("parseCallbackToken(%q) failed: %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("parseCallbackToken(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestParseCallbackTokenRejectsMalformedInput(t *testing.T) {
	malformed := []string{
		"",
		"bogus",
		"cancel:extra",
		"name",
		"name:1",
		"name:1:",
		"name:x:key",
		"name:1:key:extra",
		"addscore:1:key",
		"addscore:1:key:x",
		"addscore:x:key:5",
		"addscore:1::5",
		"confirm:delete",
		"confirm:delete:x",
		"confirm:drop:1",
		"confirm:1:delete",
	}

	for _, data := range malformed {
		if _, err := parseCallbackToken(data); err == nil {
			t.Errorf("parseCallbackToken(%q) accepted malformed input", data)
		}
	}
}

// TestTokenBuilderParserProperty tests that built tokens always parse back
// to the same fields
func TestTokenBuilderParserProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// Group keys are hex digests, so alphanumeric input is representative
	keyGen := gen.RegexMatch("[a-f0-9]{8,40}")

	properties.Property("addscore tokens round trip", prop.ForAll(
		func(id int64, key string, delta int64) bool {
			token, err := parseCallbackToken(addScoreToken(id, key, delta))
			if err != nil {
				return false
			}
			return token.Verb == verbAddScore && token.LeaderboardID == id && token.GroupKey == key && token.Delta == delta
		},
		gen.Int64(),
		keyGen,
		gen.Int64(),
	))

	properties.Property("name tokens round trip", prop.ForAll(
		func(id int64, key string) bool {
			token, err := parseCallbackToken(nameToken(id, key))
			if err != nil {
				return false
			}
			return token.Verb == verbName && token.LeaderboardID == id && token.GroupKey == key
		},
		gen.Int64(),
		keyGen,
	))

	properties.TestingRun(t)
}
