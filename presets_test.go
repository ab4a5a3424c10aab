package icept

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

func okDispatch(_ context.Context, action Action) (Action, error) {
	return action, nil
}

// ---------------------------------------------------------------------------
// Logger emits one JSON line per dispatched action
// ---------------------------------------------------------------------------

func TestLoggerEmitsJSONLine(t *testing.T) {
	var buf bytes.Buffer

	dispatch := Logger(&buf)(okDispatch)

	if _, err := dispatch(context.Background(), Action{Type: "add", Payload: 2}); err != nil {
		t.Fatalf("dispatch() error = %v, want nil", err)
	}

	line := buf.String()
	if !strings.HasSuffix(line, "\n") {
		t.Fatalf("log line %q not newline-terminated", line)
	}

	var rec struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
		Error   string `json:"error"`
	}

	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("log line %q is not valid JSON: %v", line, err)
	}

	if rec.Type != "add" {
		t.Fatalf("logged type = %q, want %q", rec.Type, "add")
	}

	if rec.Error != "" {
		t.Fatalf("logged error = %q, want empty", rec.Error)
	}
}

func TestLoggerIncludesErrorMessage(t *testing.T) {
	var buf bytes.Buffer

	sentinel := errors.New("handler failed")
	dispatch := Logger(&buf)(func(_ context.Context, action Action) (Action, error) {
		return action, sentinel
	})

	if _, err := dispatch(context.Background(), Action{Type: "add"}); !errors.Is(err, sentinel) {
		t.Fatalf("dispatch() error = %v, want %v", err, sentinel)
	}

	if !strings.Contains(buf.String(), "handler failed") {
		t.Fatalf("log line %q missing error message", buf.String())
	}
}

// ---------------------------------------------------------------------------
// Tap observes without altering the result
// ---------------------------------------------------------------------------

func TestTapObservesDispatch(t *testing.T) {
	var (
		beforeType string
		afterErr   error
	)

	sentinel := errors.New("downstream failed")
	dispatch := Tap(
		func(action Action) { beforeType = action.Type },
		func(_ Action, err error) { afterErr = err },
	)(func(_ context.Context, action Action) (Action, error) {
		return action, sentinel
	})

	out, err := dispatch(context.Background(), Action{Type: "add"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("dispatch() error = %v, want %v", err, sentinel)
	}

	if out.Type != "add" {
		t.Fatalf("dispatch() action type = %q, want %q", out.Type, "add")
	}

	if beforeType != "add" {
		t.Fatalf("before observed type = %q, want %q", beforeType, "add")
	}

	if afterErr != sentinel {
		t.Fatalf("after observed err = %v, want %v", afterErr, sentinel)
	}
}

func TestTapNilCallbacks(t *testing.T) {
	dispatch := Tap(nil, nil)(okDispatch)

	// Must not panic.
	if _, err := dispatch(context.Background(), Action{Type: "add"}); err != nil {
		t.Fatalf("dispatch() error = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// Recover converts downstream panics into errors
// ---------------------------------------------------------------------------

func TestRecoverConvertsPanicToError(t *testing.T) {
	dispatch := Recover()(func(context.Context, Action) (Action, error) {
		panic("handler bug")
	})

	out, err := dispatch(context.Background(), Action{Type: "add"})
	if err == nil {
		t.Fatal("dispatch() error = nil, want panic error")
	}

	if !strings.Contains(err.Error(), "handler bug") {
		t.Fatalf("dispatch() error = %v, want panic message included", err)
	}

	if out.Type != "add" {
		t.Fatalf("dispatch() action type = %q, want %q", out.Type, "add")
	}
}

func TestRecoverPassesThroughSuccess(t *testing.T) {
	dispatch := Recover()(okDispatch)

	if _, err := dispatch(context.Background(), Action{Type: "add"}); err != nil {
		t.Fatalf("dispatch() error = %v, want nil", err)
	}
}
