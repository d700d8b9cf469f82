package bot

import (
	"testing"
)

func TestPromptTrackerConsumeClears(t *testing.T) {
	prompts := NewPromptTracker()
	prompts.Arm(1, 100, PromptGroupName)

	kind, ok := prompts.Consume(1, 100)
	if !ok || kind != PromptGroupName {
		t.Fatalf("expected armed prompt, got kind=%q ok=%v", kind, ok)
	}

	if _, ok := prompts.Consume(1, 100); ok {
		t.Errorf("prompt must be cleared after being consumed")
	}
}

func TestPromptTrackerIsPerConversation(t *testing.T) {
	prompts := NewPromptTracker()
	prompts.Arm(1, 100, PromptGroupName)

	if _, ok := prompts.Consume(1, 200); ok {
		t.Errorf("prompt armed in chat 100 must not fire in chat 200")
	}
	if _, ok := prompts.Consume(2, 100); ok {
		t.Errorf("prompt armed for user 1 must not fire for user 2")
	}
	if _, ok := prompts.Consume(1, 100); !ok {
		t.Errorf("prompt for the original conversation was lost")
	}
}

func TestPromptTrackerClear(t *testing.T) {
	prompts := NewPromptTracker()
	prompts.Arm(1, 100, PromptGroupName)
	prompts.Clear(1, 100)

	if _, ok := prompts.Consume(1, 100); ok {
		t.Errorf("cleared prompt must not be consumable")
	}

	// Clearing an empty conversation is a no-op
	prompts.Clear(3, 300)
}

func TestPromptTrackerRearmOverwrites(t *testing.T) {
	prompts := NewPromptTracker()
	prompts.Arm(1, 100, PromptGroupName)
	prompts.Arm(1, 100, PromptGroupName)

	if _, ok := prompts.Consume(1, 100); !ok {
		t.Fatalf("expected armed prompt after re-arm")
	}
	if _, ok := prompts.Consume(1, 100); ok {
		t.Errorf("re-arming must not stack prompts")
	}
}
