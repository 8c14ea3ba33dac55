// Package httpx carries the JSON plumbing shared by the remote service
// clients. Every failure crossing this boundary comes back as a
// *domain.ExternalServiceError so callers never handle raw transport errors.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

const (
	DefaultTimeout    = 5 * time.Second
	maxErrorBodyBytes = 1024
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	service string
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func New(service string, cfg Config, log *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("%s client: base url required", service)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		service: service,
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("client", service),
	}, nil
}

// SetTransport swaps the underlying round tripper. Test hook.
func (c *Client) SetTransport(rt http.RoundTripper) {
	c.http.Transport = rt
}

// DoJSON issues a request with a JSON body and decodes a 2xx response into
// out. The HTTP status is returned even alongside an error so callers can
// special-case statuses such as 404 before treating the call as failed.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return 0, c.fail("encode request failed", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, c.fail("build request failed", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, c.classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Only a bounded prefix of the error body goes into the message.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return resp.StatusCode, c.fail(
			fmt.Sprintf("http status=%d body=%q", resp.StatusCode, string(raw)), nil)
	}

	// Success bodies are read in full; list responses can be large.
	raw, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return resp.StatusCode, c.fail("read response failed", readErr)
	}
	if out == nil || len(raw) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, c.fail("decode response failed", err)
	}
	return resp.StatusCode, nil
}

func (c *Client) fail(detail string, cause error) error {
	return &domain.ExternalServiceError{Service: c.service, Detail: detail, Cause: cause}
}

func (c *Client) classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return c.fail("request timed out", err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return c.fail("request timed out", err)
	}
	return c.fail("request failed", err)
}
