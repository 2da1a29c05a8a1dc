// internal/services/transport.go
package services

import (
	"context"
	"io"
	"net/http"
)

// contextTransport cancels in-flight requests when ctx is done. The request's
// own context, which carries the client timeout, keeps applying.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t *contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	reqCtx, cancel := context.WithCancelCause(req.Context())
	stop := context.AfterFunc(t.ctx, func() { cancel(context.Cause(t.ctx)) })
	release := func() {
		stop()
		cancel(nil)
	}

	resp, err := base.RoundTrip(req.WithContext(reqCtx))
	if err != nil {
		release()
		return nil, err
	}

	resp.Body = &releasingBody{ReadCloser: resp.Body, release: release}
	return resp, nil
}

type releasingBody struct {
	io.ReadCloser
	release func()
}

func (b *releasingBody) Close() error {
	err := b.ReadCloser.Close()
	b.release()
	return err
}
