package bot

import "sync"

// PromptKind tags what the next free-text message in a conversation will be
// interpreted as
type PromptKind string

// PromptGroupName marks a pending /newgroup waiting for the group name
const PromptGroupName PromptKind = "group_name"

type conversationKey struct {
	userID int64
	chatID int64
}

// PromptTracker records pending free-text prompts, keyed per (user, chat)
// conversation so concurrent users cannot clobber each other's pending
// input. A slot stays armed until it is consumed or cleared; every command
// handler clears the caller's slot as its first action.
type PromptTracker struct {
	mu      sync.Mutex
	pending map[conversationKey]PromptKind
}

// NewPromptTracker creates an empty tracker
func NewPromptTracker() *PromptTracker {
	return &PromptTracker{pending: map[conversationKey]PromptKind{}}
}

// Arm records that the next free-text message in the conversation should be
// interpreted as kind, replacing any previous slot
func (t *PromptTracker) Arm(userID, chatID int64, kind PromptKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[conversationKey{userID, chatID}] = kind
}

// Consume returns the armed kind and clears the slot. The second return is
// false when nothing was pending.
func (t *PromptTracker) Consume(userID, chatID int64) (PromptKind, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := conversationKey{userID, chatID}
	kind, ok := t.pending[key]
	if ok {
		delete(t.pending, key)
	}
	return kind, ok
}

// Clear drops any pending slot for the conversation
func (t *PromptTracker) Clear(userID, chatID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, conversationKey{userID, chatID})
}
