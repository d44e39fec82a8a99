// Package api is the authenticated HTTP client for the inventory backend.
// All list/detail responses arrive wrapped in a {"data": ...} envelope;
// failures carry {"message": ...} with a non-2xx status. Calls are single
// attempt: no retry, no backoff, no client-imposed timeout.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// TokenSource yields the bearer token for the current call. It is consulted
// fresh on every request so a token rotated mid-session takes effect on the
// next call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

var ErrUnauthenticated = errors.New("api: no credentials for this session")

// Error is a non-2xx backend response. Message is the backend's message
// field when the body carried one, else a generic description.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
}

// Message returns the user-facing text for a failed call. Backend-provided
// messages pass through verbatim; anything else collapses to a generic one.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "You are not logged in"
	}
	return "Request failed. Please try again."
}

type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{},
		tokens: tokens,
	}
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

type failureBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool) (json.RawMessage, error) {
	raw, _, err := c.doRaw(ctx, method, path, body, contentType, authed)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return env.Data, nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, authed bool) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("api: read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var fb failureBody
		_ = json.Unmarshal(b, &fb)
		msg := fb.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return nil, nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	return b, resp.Header, nil
}

// GetJSON fetches path and unmarshals the envelope's data field into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, nil, "application/json", true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Patch issues a bodyless PATCH (the lifecycle transition shape).
func (c *Client) Patch(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodPatch, path, nil, "application/json", true)
	return err
}

func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	return c.writeJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	return c.writeJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) writeJSON(ctx context.Context, method, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	data, err := c.do(ctx, method, path, bytes.NewReader(b), "application/json", true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, "application/json", true)
	return err
}

// PostMultipart builds a multipart body through fill and posts it.
func (c *Client) PostMultipart(ctx context.Context, path string, fill func(w *multipart.Writer) error) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := fill(mw); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), true)
	return err
}

// Download fetches a binary response (no envelope), e.g. spreadsheet exports.
// It returns the body and the response Content-Type.
func (c *Client) Download(ctx context.Context, path string) ([]byte, string, error) {
	b, hdr, err := c.doRaw(ctx, http.MethodGet, path, nil, "", true)
	if err != nil {
		return nil, "", err
	}
	return b, hdr.Get("Content-Type"), nil
}

// Login is the one unauthenticated call. It exchanges credentials for a
// bearer token; persisting that token is the caller's concern.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	b, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	data, err := c.do(ctx, http.MethodPost, "/auth/login", bytes.NewReader(b), "application/json", false)
	if err != nil {
		return "", err
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("api: decode login response: %w", err)
	}
	return payload.Token, nil
}
