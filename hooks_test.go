package icept

import "testing"

// ---------------------------------------------------------------------------
// Emit guards skip nil hooks and forward arguments to set ones
// ---------------------------------------------------------------------------

func TestEmitBeforeCallsHook(t *testing.T) {
	var (
		gotAction Action
		gotState  int
	)

	sub := Subscriber[int]{
		Before: func(action Action, state int) {
			gotAction = action
			gotState = state
		},
	}

	sub.emitBefore(Action{Type: "inc", Payload: 2}, 7)

	if gotAction.Type != "inc" {
		t.Fatalf("Before action type = %q, want %q", gotAction.Type, "inc")
	}

	if gotAction.Payload != 2 {
		t.Fatalf("Before payload = %v, want 2", gotAction.Payload)
	}

	if gotState != 7 {
		t.Fatalf("Before state = %d, want 7", gotState)
	}
}

func TestEmitAfterCallsHook(t *testing.T) {
	called := false
	sub := Subscriber[int]{After: func(Action, int) { called = true }}

	sub.emitAfter(Action{Type: "inc"}, 0)

	if !called {
		t.Fatal("After not called")
	}
}

func TestEmitNilHooksAreNoOps(t *testing.T) {
	var sub Subscriber[int]

	// Must not panic.
	sub.emitBefore(Action{Type: "inc"}, 0)
	sub.emitAfter(Action{Type: "inc"}, 0)
}
