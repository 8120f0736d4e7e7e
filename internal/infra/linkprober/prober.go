// Package linkprober checks external guide links for reachability.
package linkprober

import (
	"context"
	"io"
	"net/http"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

const defaultMaxBodyBytes = 4 * 1024

type Prober struct {
	client       *http.Client
	maxBodyBytes int64
}

type Option func(*Prober)

func WithMaxBodyBytes(n int64) Option {
	return func(p *Prober) { p.maxBodyBytes = n }
}

func New(client *http.Client, opts ...Option) *Prober {
	p := &Prober{
		client:       client,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ ports.LinkProber = (*Prober)(nil)

// Probe issues HEAD first and falls back to GET for servers that reject HEAD.
// The GET body is drained up to a small cap so connections can be reused.
func (p *Prober) Probe(ctx context.Context, url string) (int, error) {
	status, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return 0, err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		return p.do(ctx, http.MethodGet, url)
	}
	return status, nil
}

func (p *Prober) do(ctx context.Context, method, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "linkprober.probe",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, &domain.OpError{
			Op:   "linkprober.probe",
			Kind: domain.KindUnavailable,
			Err:  err,
		}
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, p.maxBodyBytes))
	return resp.StatusCode, nil
}
