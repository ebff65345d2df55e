// Package gateway provides the typed request/response wrapper for the
// GreenBasket backend: bearer credential injection, failure classification,
// and envelope normalization.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
)

// Options carries the optional parts of a remote request.
type Options struct {
	Token  string
	Body   any
	Params url.Values
}

// Gateway issues classified requests against the backend. It never retries:
// one call, one network attempt, errors surfaced immediately.
type Gateway struct {
	baseURL string
	client  *http.Client
	logger  *logging.ChanneledLogger

	mu             sync.RWMutex
	onUnauthorized func()
}

// New creates a gateway for the given backend base URL.
func New(baseURL string, timeout time.Duration, logger *logging.ChanneledLogger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// OnUnauthorized registers the side-channel consumed by the session layer. A
// 401 on any call invokes fn after the call's own error is built; the
// triggering caller still receives a RemoteError of kind unauthorized.
func (g *Gateway) OnUnauthorized(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onUnauthorized = fn
}

// Request performs one HTTP call and normalizes the response into an
// Envelope. A non-nil error is always a *RemoteError.
func (g *Gateway) Request(ctx context.Context, method, endpoint string, opts Options) (*Envelope, error) {
	start := time.Now()

	reqURL := g.baseURL + endpoint
	if len(opts.Params) > 0 {
		reqURL += "?" + opts.Params.Encode()
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, &RemoteError{Kind: KindUnknown, Endpoint: endpoint, Err: fmt.Errorf("encode request body: %w", err)}
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, &RemoteError{Kind: KindUnknown, Endpoint: endpoint, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		remoteErr := g.classifyTransport(endpoint, err)
		if g.logger != nil {
			g.logger.LogGatewayCall(method, endpoint, string(remoteErr.Kind), 0, time.Since(start))
		}
		return nil, remoteErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Kind: KindNetwork, Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := g.classifyStatus(endpoint, resp.StatusCode, body)
		if g.logger != nil {
			g.logger.LogGatewayCall(method, endpoint, string(remoteErr.Kind), resp.StatusCode, time.Since(start))
		}
		if remoteErr.Kind == KindUnauthorized {
			g.notifyUnauthorized()
		}
		return nil, remoteErr
	}

	env, err := normalizeEnvelope(body)
	if err != nil {
		if g.logger != nil {
			g.logger.LogGatewayCall(method, endpoint, string(KindUnknown), resp.StatusCode, time.Since(start))
		}
		return nil, &RemoteError{Kind: KindUnknown, Status: resp.StatusCode, Endpoint: endpoint, Err: err}
	}

	if g.logger != nil {
		g.logger.LogGatewayCall(method, endpoint, "ok", resp.StatusCode, time.Since(start))
	}
	return env, nil
}

// RequestInto performs a call and decodes the normalized payload into dest.
func (g *Gateway) RequestInto(ctx context.Context, method, endpoint string, opts Options, dest any) error {
	env, err := g.Request(ctx, method, endpoint, opts)
	if err != nil {
		return err
	}
	if !env.Success {
		return &RemoteError{Kind: KindUnknown, Endpoint: endpoint, Message: "backend reported failure"}
	}
	if dest == nil {
		return nil
	}
	if err := env.Decode(dest); err != nil {
		return &RemoteError{Kind: KindUnknown, Endpoint: endpoint, Err: fmt.Errorf("decode payload: %w", err)}
	}
	return nil
}

func (g *Gateway) classifyTransport(endpoint string, err error) *RemoteError {
	kind := KindNetwork
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		kind = KindTimeout
	}
	return &RemoteError{Kind: kind, Endpoint: endpoint, Err: err}
}

func (g *Gateway) classifyStatus(endpoint string, status int, body []byte) *RemoteError {
	var kind ErrorKind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status >= 400 && status < 500:
		kind = KindValidation
	case status >= 500 && status < 600:
		kind = KindServer
	default:
		kind = KindUnknown
	}
	return &RemoteError{Kind: kind, Status: status, Endpoint: endpoint, Message: errorMessage(body)}
}

func (g *Gateway) notifyUnauthorized() {
	g.mu.RLock()
	fn := g.onUnauthorized
	g.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
