package icept

import "context"

// Do is a convenience function that runs a single input through op with
// the given interceptors, without creating a named [Pipeline]. It builds
// an anonymous pipeline internally and calls [Pipeline.Run].
func Do[In, Out any](
	ctx context.Context,
	op Operation[In, Out],
	in In,
	request []Interceptor[In],
	response []Interceptor[Out],
) (Out, error) {
	p := NewPipeline(op)

	for _, ic := range request {
		if _, err := p.UseRequest(ic); err != nil {
			var zero Out

			return zero, err
		}
	}

	for _, ic := range response {
		if _, err := p.UseResponse(ic); err != nil {
			var zero Out

			return zero, err
		}
	}

	return p.Run(ctx, in)
}
