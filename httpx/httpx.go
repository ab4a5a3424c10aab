package httpx

import (
	"context"
	"net/http"

	"github.com/byte4ever/icept"
)

// RequestInterceptor is an interceptor over the outgoing request.
type RequestInterceptor = icept.Interceptor[*http.Request]

// ResponseInterceptor is an interceptor over the incoming response.
type ResponseInterceptor = icept.Interceptor[*http.Response]

// Client wraps an http.Client with an icept pipeline.
//
// Pattern: Adapter — bridges net/http and icept's pipeline by exposing
// the client's round trip as the pipeline's core operation.
type Client struct {
	hc *http.Client
	p  *icept.Pipeline[*http.Request, *http.Response]
}

// NewClient creates a Client whose requests execute through an
// interceptor pipeline around hc. A nil hc uses http.DefaultClient.
func NewClient(hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}

	c := &Client{hc: hc}
	c.p = icept.NewPipeline(
		func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return c.hc.Do(req.WithContext(ctx))
		},
	)

	return c
}

// OnRequest registers a request interceptor and returns its id for
// [Client.EjectRequest]. Later registrations run earlier, closest to the
// caller's original request.
func (c *Client) OnRequest(ic RequestInterceptor) (int, error) {
	return c.p.UseRequest(ic)
}

// OnResponse registers a response interceptor and returns its id for
// [Client.EjectResponse]. Registrations run in order after the round
// trip settles.
func (c *Client) OnResponse(ic ResponseInterceptor) (int, error) {
	return c.p.UseResponse(ic)
}

// EjectRequest removes a request interceptor by id.
func (c *Client) EjectRequest(id int) { c.p.EjectRequest(id) }

// EjectResponse removes a response interceptor by id.
func (c *Client) EjectResponse(id int) { c.p.EjectResponse(id) }

// Do executes req through the pipeline: request interceptors, the
// underlying round trip, then response interceptors. A response
// interceptor that recovers from a transport failure determines the
// caller's result; as with any pipeline, a rejected handler returning a
// nil error together with a nil response settles the call successfully
// with a nil *http.Response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.p.Run(ctx, req)
}
