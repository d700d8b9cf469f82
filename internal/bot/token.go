package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback payloads form a small closed grammar:
//
//	cancel
//	name:<leaderboardID>:<groupKey>
//	addscore:<leaderboardID>:<groupKey>:<delta>
//	confirm:delete:<leaderboardID>
//
// Tokens are parsed strictly; anything outside the grammar is rejected.
type tokenVerb string

const (
	verbCancel   tokenVerb = "cancel"
	verbName     tokenVerb = "name"
	verbAddScore tokenVerb = "addscore"
	verbConfirm  tokenVerb = "confirm"
)

const confirmActionDelete = "delete"

var errMalformedToken = errors.New("malformed callback token")

type callbackToken struct {
	Verb          tokenVerb
	LeaderboardID int64
	GroupKey      string
	Delta         int64
	Action        string
}

func parseCallbackToken(data string) (callbackToken, error) {
	if data == string(verbCancel) {
		return callbackToken{Verb: verbCancel}, nil
	}

	parts := strings.Split(data, ":")
	switch tokenVerb(parts[0]) {
	case verbName:
		if len(parts) != 3 || parts[2] == "" {
			return callbackToken{}, errMalformedToken
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return callbackToken{}, errMalformedToken
		}
		return callbackToken{Verb: verbName, LeaderboardID: id, GroupKey: parts[2]}, nil

	case verbAddScore:
		if len(parts) != 4 || parts[2] == "" {
			return callbackToken{}, errMalformedToken
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return callbackToken{}, errMalformedToken
		}
		delta, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			return callbackToken{}, errMalformedToken
		}
		return callbackToken{Verb: verbAddScore, LeaderboardID: id, GroupKey: parts[2], Delta: delta}, nil

	case verbConfirm:
		if len(parts) != 3 || parts[1] != confirmActionDelete {
			return callbackToken{}, errMalformedToken
		}
		id, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return callbackToken{}, errMalformedToken
		}
		return callbackToken{Verb: verbConfirm, Action: confirmActionDelete, LeaderboardID: id}, nil

	default:
		return callbackToken{}, errMalformedToken
	}
}

func cancelToken() string {
	return string(verbCancel)
}

func nameToken(leaderboardID int64, groupKey string) string {
	return fmt.Sprintf("%s:%d:%s", verbName, leaderboardID, groupKey)
}

func addScoreToken(leaderboardID int64, groupKey string, delta int64) string {
	return fmt.Sprintf("%s:%d:%s:%d", verbAddScore, leaderboardID, groupKey, delta)
}

func confirmDeleteToken(leaderboardID int64) string {
	return fmt.Sprintf("%s:%s:%d", verbConfirm, confirmActionDelete, leaderboardID)
}
