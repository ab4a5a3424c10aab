package icept

import (
	"context"
	"sync"
	"sync/atomic"
)

// Operation is the minimal capability the wrapped subject must expose: a
// callable that takes an input and eventually produces an output or
// fails with an error. The operation may suspend internally; the
// pipeline only requires that it returns when done.
type Operation[In, Out any] func(ctx context.Context, in In) (Out, error)

// Interceptor is a paired success/failure transformation attached to one
// stage of a pipeline. OnResolved transforms a successful value and
// OnRejected transforms or recovers from a failure. Either side may be
// nil, but not both: a nil OnResolved passes the value through unchanged,
// and a nil OnRejected passes the failure through to the next stage that
// has one. Interceptors are immutable once registered.
type Interceptor[T any] struct {
	OnResolved func(ctx context.Context, v T) (T, error)
	OnRejected func(ctx context.Context, err error) (T, error)
}

// stageEntry ties a registered interceptor to its registration id so it
// can be ejected later.
type stageEntry[T any] struct {
	ic Interceptor[T]
	id int
}

// Pipeline wraps a core [Operation] with ordered request and response
// interceptor stages and executes them as one sequential
// error-propagating chain.
//
// Request interceptors execute before the core operation, last
// registered first: earlier registrations sit closer to the outermost
// request-shaping concern. Response interceptors execute after the core
// operation, in registration order.
//
// Pattern: Chain of Responsibility — each stage either transforms the
// carried value or forwards the carried failure untouched.
//
// Interceptor storage is copy-on-write: [Pipeline.Run] snapshots both
// lists at entry, so registrations and ejections never affect a run
// already in flight.
type Pipeline[In, Out any] struct {
	op       Operation[In, Out]
	request  atomic.Pointer[[]stageEntry[In]]
	response atomic.Pointer[[]stageEntry[Out]]

	mu     sync.Mutex
	nextID int
}

// NewPipeline creates a pipeline around the given core operation with no
// interceptors registered. A nil op is reported by [Pipeline.Run] as
// [ErrNilOperation].
func NewPipeline[In, Out any](op Operation[In, Out]) *Pipeline[In, Out] {
	p := &Pipeline[In, Out]{op: op}

	var (
		emptyIn  []stageEntry[In]
		emptyOut []stageEntry[Out]
	)

	p.request.Store(&emptyIn)
	p.response.Store(&emptyOut)

	return p
}

// UseRequest registers a request-stage interceptor and returns its id
// for [Pipeline.EjectRequest]. Returns [ErrEmptyInterceptor] when both
// sides of ic are nil.
func (p *Pipeline[In, Out]) UseRequest(ic Interceptor[In]) (int, error) {
	if ic.OnResolved == nil && ic.OnRejected == nil {
		return 0, ErrEmptyInterceptor
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.request.Store(appendStage(p.request.Load(), ic, id))

	return id, nil
}

// UseResponse registers a response-stage interceptor and returns its id
// for [Pipeline.EjectResponse]. Returns [ErrEmptyInterceptor] when both
// sides of ic are nil.
func (p *Pipeline[In, Out]) UseResponse(ic Interceptor[Out]) (int, error) {
	if ic.OnResolved == nil && ic.OnRejected == nil {
		return 0, ErrEmptyInterceptor
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.response.Store(appendStage(p.response.Load(), ic, id))

	return id, nil
}

// EjectRequest removes the request interceptor registered under id.
// Ejecting an unknown or already-ejected id is a no-op.
func (p *Pipeline[In, Out]) EjectRequest(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.request.Store(removeStage(p.request.Load(), id))
}

// EjectResponse removes the response interceptor registered under id.
// Ejecting an unknown or already-ejected id is a no-op.
func (p *Pipeline[In, Out]) EjectResponse(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.response.Store(removeStage(p.response.Load(), id))
}

// Run executes the assembled chain for one input: request stages in
// reverse registration order, then the core operation, then response
// stages in registration order. The core operation is invoked at most
// once per call; a failure carried into the core stage skips it and
// propagates untransformed into the response stages.
//
// A rejected handler that returns a nil error terminates the failure's
// propagation: the chain continues successfully with whatever value the
// handler returned — the zero value if it returned nothing meaningful.
// This mirrors sequential try/catch pipelines and is a documented caller
// hazard, not something Run papers over.
func (p *Pipeline[In, Out]) Run(ctx context.Context, in In) (Out, error) {
	var out Out

	if p.op == nil {
		return out, ErrNilOperation
	}

	request := *p.request.Load()
	response := *p.response.Load()

	// Fold over the request stages, carrying (value, err) explicitly.
	val := in

	var err error

	for i := len(request) - 1; i >= 0; i-- {
		val, err = runStage(ctx, request[i].ic, val, err)
	}

	// Core stage: resolved side only, no rejection handler.
	if err == nil {
		out, err = p.op(ctx, val)
	}

	for _, e := range response {
		out, err = runStage(ctx, e.ic, out, err)
	}

	return out, err
}

// runStage advances the fold accumulator through one stage. With no
// carried failure the resolved side runs; with a carried failure the
// rejected side runs. A missing side is a passthrough.
func runStage[T any](
	ctx context.Context,
	ic Interceptor[T],
	v T,
	err error,
) (T, error) {
	if err == nil {
		if ic.OnResolved == nil {
			return v, nil
		}

		return ic.OnResolved(ctx, v)
	}

	if ic.OnRejected == nil {
		return v, err
	}

	return ic.OnRejected(ctx, err)
}

// appendStage copies the stage list and appends one entry, leaving the
// slice concurrent readers may be iterating untouched.
func appendStage[T any](
	old *[]stageEntry[T],
	ic Interceptor[T],
	id int,
) *[]stageEntry[T] {
	prev := *old
	updated := make([]stageEntry[T], len(prev), len(prev)+1)
	copy(updated, prev)
	updated = append(updated, stageEntry[T]{ic: ic, id: id})

	return &updated
}

// removeStage copies the stage list without the entry registered under
// id.
func removeStage[T any](old *[]stageEntry[T], id int) *[]stageEntry[T] {
	prev := *old
	updated := make([]stageEntry[T], 0, len(prev))

	for _, e := range prev {
		if e.id != id {
			updated = append(updated, e)
		}
	}

	return &updated
}
