// Package icept provides composable interception primitives for Go
// applications.
//
// Three shapes of interception are covered, all built on plain functions
// of the form func(context.Context, ...) (..., error):
//
//   - [Pipeline]: ordered request/response interceptor pairs wrapped
//     around one core operation, with sequential error-pipeline
//     propagation semantics.
//   - [Store] with [Subscriber]: fixed before/after observation points
//     around a dispatched, state-mutating action.
//   - [Compose]: right-to-left functional composition that nests
//     middleware layers around a base dispatch function.
package icept
