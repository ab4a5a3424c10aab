package icept

// Pattern: Decorator — each middleware layer wraps the next, forming a
// nested chain where declaration order determines execution order.

// Middleware wraps a [DispatchFunc] with additional behavior. Each
// middleware receives the next dispatch in the chain and returns a
// replacement of the exact same shape. It is an alias, not a defined
// type, so middleware slices feed [Compose] directly.
//
// Preserving the dispatch contract is a caller obligation: a layer that
// narrows or reshapes it breaks every layer above it, and the engine has
// no way to detect that at composition time.
type Middleware = func(next DispatchFunc) DispatchFunc

// Compose nests wrapper layers around a base function, right to left.
//
// Compose(m1, m2, m3) produces a builder yielding m1(m2(m3(base))) —
// m1 is outermost, m3 is innermost, so at call time m1's wrapping logic
// runs first and m3's runs last before control reaches base. Compose()
// with zero layers returns base unchanged.
//
// Composition is pure with respect to the layer list: no layer's
// wrapping logic executes until the resulting entry point is invoked.
func Compose[F any](layers ...func(F) F) func(F) F {
	return func(base F) F {
		for i := len(layers) - 1; i >= 0; i-- {
			base = layers[i](base)
		}

		return base
	}
}
