package icept

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------.

type (
	// InterceptionError identifies errors produced by the interception
	// layer itself, as opposed to errors from the wrapped operation or
	// action handler.
	//nolint:iface // exported for use in tests and consumer error
	// classification.
	InterceptionError interface {
		error
		// IsInterception reports whether this error originates from the
		// interception layer.
		IsInterception() bool
	}

	// interceptionError is the concrete type backing all sentinel errors.
	interceptionError string
)

// Sentinel interception errors.
var (
	// ErrUnknownActionType is returned by Dispatch when the action's Type
	// has no registered handler. It is surfaced before any subscriber
	// hook runs.
	ErrUnknownActionType error = interceptionError("unknown action type")
	// ErrEmptyInterceptor is returned when an interceptor is registered
	// with neither a resolved nor a rejected side.
	ErrEmptyInterceptor error = interceptionError("interceptor has no handlers")
	// ErrNilOperation is returned when a pipeline is built around a nil
	// core operation.
	ErrNilOperation error = interceptionError("nil core operation")
	// ErrNilHandler is returned when a nil action handler is registered.
	ErrNilHandler error = interceptionError("nil action handler")
)

func (e interceptionError) Error() string { return string(e) }

// IsInterception reports whether the error is an interception
// infrastructure error.
func (interceptionError) IsInterception() bool { return true }
