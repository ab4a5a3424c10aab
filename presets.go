package icept

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// ---------------------------------------------------------------------------
// Middleware presets — canned layers for common dispatch concerns
// ---------------------------------------------------------------------------

// actionRecord is the JSON line shape emitted by [Logger].
type actionRecord struct {
	Payload any    `json:"payload,omitempty"`
	Type    string `json:"type"`
	Error   string `json:"error,omitempty"`
}

// Logger returns a middleware that writes one JSON line per dispatched
// action to w, after the downstream layers settle, including the error
// message on failure. Encoding failures are dropped: logging never
// alters the dispatch outcome.
func Logger(w io.Writer) Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(ctx context.Context, action Action) (Action, error) {
			out, err := next(ctx, action)

			rec := actionRecord{
				Type:    action.Type,
				Payload: action.Payload,
			}
			if err != nil {
				rec.Error = err.Error()
			}

			if line, mErr := json.Marshal(rec); mErr == nil {
				line = append(line, '\n')
				_, _ = w.Write(line)
			}

			return out, err
		}
	}
}

// Tap returns a middleware invoking before around the downstream
// dispatch and after once it settles, without altering the action or its
// result. Either callback may be nil.
func Tap(before func(Action), after func(Action, error)) Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(ctx context.Context, action Action) (Action, error) {
			if before != nil {
				before(action)
			}

			out, err := next(ctx, action)

			if after != nil {
				after(action, err)
			}

			return out, err
		}
	}
}

// Recover returns a middleware that converts a panic in any downstream
// layer or action handler into a returned error, keeping a single
// misbehaving handler from tearing down the caller.
func Recover() Middleware {
	return func(next DispatchFunc) DispatchFunc {
		return func(ctx context.Context, action Action) (out Action, err error) {
			defer func() {
				if r := recover(); r != nil {
					out = action
					err = fmt.Errorf(
						"icept: dispatch %q panicked: %v",
						action.Type,
						r,
					)
				}
			}()

			return next(ctx, action)
		}
	}
}
