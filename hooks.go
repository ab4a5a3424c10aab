package icept

// Subscriber holds optional before/after observers around a dispatched
// action. Both fields are nil by default; callers set only the hooks
// they care about. Once registered, a Subscriber value must not be
// mutated — the store reads the function fields without
// synchronisation, which is safe as long as the struct is read-only
// after registration.
//
// Observers receive the action and the store's current state for
// reading. They cannot veto the action, alter its payload, or mutate
// state: only the action handler owns the mutation.
//
// Pattern: Observer — decouples dispatch from consumers (logging,
// metrics, devtools) without the store knowing about observers.
type Subscriber[S any] struct {
	Before func(action Action, state S)
	After  func(action Action, state S)
}

func (sub Subscriber[S]) emitBefore(action Action, state S) {
	if sub.Before != nil {
		sub.Before(action, state)
	}
}

func (sub Subscriber[S]) emitAfter(action Action, state S) {
	if sub.After != nil {
		sub.After(action, state)
	}
}
