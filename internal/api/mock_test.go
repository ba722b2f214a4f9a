package api

import (
	"bytes"
	"io"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
)

// fakeTransport answers every Do with a canned status and body. Only the
// methods the gateway calls are implemented; the embedded interface is nil.
type fakeTransport struct {
	tls_client.HttpClient

	status int
	body   []byte
	err    error

	mu         sync.Mutex
	requests   []*fhttp.Request
	bodies     [][]byte
	idleClosed bool
}

func newFakeTransport(body []byte, status int) *fakeTransport {
	return &fakeTransport{status: status, body: body}
}

func newFailingTransport(err error) *fakeTransport {
	return &fakeTransport{err: err}
}

func (f *fakeTransport) Do(req *fhttp.Request) (*fhttp.Response, error) {
	var sent []byte
	if req.Body != nil {
		sent, _ = io.ReadAll(req.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, sent)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &fhttp.Response{
		StatusCode: f.status,
		Header:     make(fhttp.Header),
		Body:       io.NopCloser(bytes.NewReader(f.body)),
	}, nil
}

func (f *fakeTransport) CloseIdleConnections() {
	f.mu.Lock()
	f.idleClosed = true
	f.mu.Unlock()
}
