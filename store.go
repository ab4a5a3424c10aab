package icept

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// InitType is the sentinel action type dispatched once during [NewStore]
// to establish a defined initial state before the enhanced entry point
// is exposed. When no handler is registered for it, the store's state is
// left unchanged; registering a handler under InitType customises
// initialisation.
const InitType = "@@icept/INIT"

// Action is a tagged description of a state mutation request.
type Action struct {
	Payload any
	Type    string
}

// ActionFunc mutates store state in response to one action type. The
// handler is the sole owner of the mutation: subscribers and middleware
// observe or wrap dispatch but never receive write access to state.
type ActionFunc[S any] func(ctx context.Context, state *S, payload any) error

// DispatchFunc is the dispatch entry point contract, produced by the
// store and preserved by every middleware layer. Dispatch returns the
// action it processed, so middleware can forward or inspect it.
type DispatchFunc func(ctx context.Context, action Action) (Action, error)

// subEntry ties a registered subscriber to its registration id so the
// unsubscribe closure can remove it.
type subEntry[S any] struct {
	sub Subscriber[S]
	id  int
}

// Store owns a current state, a handler table keyed by action type, the
// registered subscribers, and the active dispatch entry point (base
// dispatch wrapped by the configured middleware).
//
// Dispatch calls are not serialized against each other: two concurrent
// dispatches interleave their before/after hooks based on completion
// timing, not call order. Callers needing mutual exclusion must
// serialize themselves. State is mutated only inside action handlers —
// a caller discipline, not a runtime-enforced lock.
type Store[S any] struct {
	state    S
	handlers map[string]ActionFunc[S]
	dispatch DispatchFunc
	subs     atomic.Pointer[[]subEntry[S]]

	mu      sync.Mutex
	nextSub int
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

// storeSetup holds configuration collected during NewStore.
type storeSetup[S any] struct {
	handlers    map[string]ActionFunc[S]
	subscribers []Subscriber[S]
	middleware  []Middleware
	err         error
}

// StoreOption configures a [Store] during construction.
type StoreOption[S any] func(*storeSetup[S])

// WithHandler registers fn as the handler for the given action type.
// Registering the same type twice keeps the last handler.
func WithHandler[S any](actionType string, fn ActionFunc[S]) StoreOption[S] {
	return func(s *storeSetup[S]) {
		if fn == nil {
			s.err = fmt.Errorf("icept: handler %q: %w", actionType, ErrNilHandler)
			return
		}

		s.handlers[actionType] = fn
	}
}

// WithSubscriber registers a subscriber at construction time. Additional
// subscribers can be added later with [Store.Subscribe].
func WithSubscriber[S any](sub Subscriber[S]) StoreOption[S] {
	return func(s *storeSetup[S]) {
		s.subscribers = append(s.subscribers, sub)
	}
}

// WithMiddleware wraps the store's base dispatch with the given layers
// via [Compose]: the first listed middleware is the outermost wrapper.
func WithMiddleware[S any](mw ...Middleware) StoreOption[S] {
	return func(s *storeSetup[S]) {
		s.middleware = append(s.middleware, mw...)
	}
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

// NewStore creates a store with the given initial state and options,
// then dispatches the [InitType] sentinel through the base (unwrapped)
// dispatch so state is established before any caller-visible dispatch.
// The init action runs before subscribers are installed and below the
// middleware stack, so it is never observable from either.
func NewStore[S any](initial S, opts ...StoreOption[S]) (*Store[S], error) {
	setup := storeSetup[S]{handlers: make(map[string]ActionFunc[S])}

	for _, opt := range opts {
		opt(&setup)
	}

	if setup.err != nil {
		return nil, setup.err
	}

	s := &Store[S]{
		state:    initial,
		handlers: setup.handlers,
	}

	var empty []subEntry[S]

	s.subs.Store(&empty)

	if _, err := s.baseDispatch(context.Background(), Action{Type: InitType}); err != nil {
		return nil, fmt.Errorf("icept: init dispatch: %w", err)
	}

	for _, sub := range setup.subscribers {
		s.Subscribe(sub)
	}

	s.dispatch = Compose(setup.middleware...)(s.baseDispatch)

	return s, nil
}

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

// Dispatch routes the action through the enhanced entry point: the
// middleware stack, then before hooks in registration order, then the
// action handler, then — only when the handler succeeds — after hooks in
// registration order.
//
// An action whose type has no registered handler fails immediately with
// [ErrUnknownActionType]; no subscriber hook runs. A handler failure
// propagates uncaught, and after hooks are skipped.
func (s *Store[S]) Dispatch(ctx context.Context, action Action) (Action, error) {
	return s.dispatch(ctx, action)
}

// baseDispatch is the unwrapped dispatch: handler lookup, before hooks,
// handler, after hooks.
func (s *Store[S]) baseDispatch(ctx context.Context, action Action) (Action, error) {
	fn, ok := s.handlers[action.Type]
	if !ok {
		if action.Type == InitType {
			return action, nil
		}

		return action, fmt.Errorf(
			"icept: dispatch %q: %w",
			action.Type,
			ErrUnknownActionType,
		)
	}

	subs := *s.subs.Load()

	for _, e := range subs {
		e.sub.emitBefore(action, s.state)
	}

	if err := fn(ctx, &s.state, action.Payload); err != nil {
		return action, err
	}

	for _, e := range subs {
		e.sub.emitAfter(action, s.state)
	}

	return action, nil
}

// ---------------------------------------------------------------------------
// Subscription and state access
// ---------------------------------------------------------------------------

// Subscribe appends sub to the registry and returns an unsubscribe
// closure. Subscribers are invoked in registration order; unsubscribing
// twice is a no-op. A dispatch already in flight keeps the subscriber
// snapshot it started with.
func (s *Store[S]) Subscribe(sub Subscriber[S]) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	old := *s.subs.Load()
	// Copy-on-write so concurrent dispatches never iterate a slice being
	// appended to.
	updated := make([]subEntry[S], len(old), len(old)+1)
	copy(updated, old)
	updated = append(updated, subEntry[S]{sub: sub, id: id})
	s.subs.Store(&updated)

	return func() { s.unsubscribe(id) }
}

func (s *Store[S]) unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old := *s.subs.Load()
	updated := make([]subEntry[S], 0, len(old))

	for _, e := range old {
		if e.id != id {
			updated = append(updated, e)
		}
	}

	s.subs.Store(&updated)
}

// State returns the current state. For state types containing reference
// fields the returned value still shares them; mutating through it is
// the same discipline violation as mutating from a subscriber.
func (s *Store[S]) State() S { return s.state }
