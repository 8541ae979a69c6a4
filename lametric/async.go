package lametric

import "context"

// Result is the outcome of an asynchronous call.
type Result struct {
	Value any
	Err   error
}

// Go starts a call in the background. Usage errors are returned
// immediately; otherwise the channel yields exactly one Result and is
// then closed. Concurrent calls complete in no particular order.
func (c *Client) Go(ctx context.Context, method, path string, params any) (<-chan Result, error) {
	req, err := c.adapter.Prepare(method, path, params)
	if err != nil {
		return nil, err
	}

	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		value, err := c.adapter.Dispatch(ctx, req)
		ch <- Result{Value: value, Err: err}
	}()
	return ch, nil
}

// Wait blocks until the result arrives or ctx is done.
func Wait(ctx context.Context, ch <-chan Result) (any, error) {
	select {
	case r := <-ch:
		return r.Value, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
