// Package httpx provides an intercepted HTTP client adapter for the
// icept library.
//
// Client wraps a standard http.Client with an icept request/response
// pipeline: request interceptors shape the outgoing *http.Request,
// response interceptors transform the *http.Response or recover from
// transport failures. The HTTP call itself is the external operation the
// pipeline wraps; httpx adds no transport behavior of its own.
package httpx
