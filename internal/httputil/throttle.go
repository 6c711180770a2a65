// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the PubChem client.
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces outgoing requests with a token bucket and bounds each
// request with its own deadline. A Throttle is safe for concurrent use and
// is meant to be shared by every request against the same host.
type Throttle struct {
	limiter *rate.Limiter
	timeout time.Duration
}

// NewThrottle returns a Throttle allowing perSecond requests per second with
// a burst of one. A perSecond of zero or less disables pacing. A timeout of
// zero or less leaves the deadline to the caller's context.
func NewThrottle(perSecond float64, timeout time.Duration) *Throttle {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Throttle{
		limiter: rate.NewLimiter(limit, 1),
		timeout: timeout,
	}
}

// Do waits for a token, then executes req under a context bounded by the
// per-call timeout. Each call is attempted exactly once.
//
// The deadline stays armed until the response body is closed, so callers
// must close the body as usual. If ctx is cancelled while waiting for a
// token the function returns ctx.Err() without sending the request.
func (t *Throttle) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := ctx, context.CancelFunc(func() {})
	if t.timeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, t.timeout)
	}

	resp, err := client.Do(req.Clone(callCtx))
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

// cancelOnClose releases the per-call context once the body is closed.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
