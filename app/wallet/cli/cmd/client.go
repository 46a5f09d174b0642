package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// client talks to the public API of a node. GET requests that fail at the
// transport level or with a server error are retried with backoff.
type client struct {
	url  string
	http *http.Client
}

func newClient(url string) *client {
	return &client{
		url:  strings.TrimRight(url, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// apiError is the error document the node responds with.
type apiError struct {
	Status int
	Err    string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (ae *apiError) Error() string {
	if len(ae.Fields) == 0 {
		return fmt.Sprintf("node responded %d: %s", ae.Status, ae.Err)
	}
	return fmt.Sprintf("node responded %d: %s: %v", ae.Status, ae.Err, ae.Fields)
}

func (c *client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *client) post(ctx context.Context, path string, in any, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *client) do(ctx context.Context, method string, path string, in any, out any) error {
	var data []byte
	if in != nil {
		var err error
		if data, err = json.Marshal(in); err != nil {
			return fmt.Errorf("could not marshal payload: %w", err)
		}
	}

	// A POST may have reached the node before failing, so it is sent once.
	var bo backoff.BackOff = &backoff.StopBackOff{}
	if method == http.MethodGet {
		bo = newExponentialBackoffConfig()
	}

	resp, err := backoff.RetryWithData(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.url+path, bytes.NewReader(data))
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("could not make new request: %w", err))
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return nil, backoff.Permanent(fmt.Errorf("could not make http call: %w", err))
			}
			return nil, fmt.Errorf("http request failed: %w", err)
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, decodeError(resp)
		}

		return resp, nil
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}

func decodeError(resp *http.Response) *apiError {
	defer resp.Body.Close()

	ae := apiError{Status: resp.StatusCode}
	body, err := io.ReadAll(resp.Body)
	if err != nil || json.Unmarshal(body, &ae) != nil || ae.Err == "" {
		ae.Err = strings.TrimSpace(string(body))
	}

	return &ae
}

func newExponentialBackoffConfig() *backoff.ExponentialBackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(time.Second*3),
		backoff.WithMaxInterval(time.Second),
		backoff.WithInitialInterval(time.Millisecond*100),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.2),
	)
}
