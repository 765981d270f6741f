// Package client is a Go SDK for the profile card REST API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"profilecard/internal/card"
	"profilecard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds a request when the context carries no earlier deadline.
const DefaultTimeout = 30 * time.Second

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	Status  int               `json:"-"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Errors  map[string]string `json:"errors,omitempty"`
	Field   string            `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

// Client talks to one API deployment.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New returns a Client for the API served at baseURL, e.g. "http://localhost:5000".
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (c *Client) url(kind models.Kind, parts ...string) string {
	u := c.baseURL + "/api/v1/" + kind.Collection()
	for _, p := range parts {
		u += "/" + p
	}
	return u
}

// Create submits a new profile and returns the stored record.
func (c *Client) Create(ctx context.Context, kind models.Kind, payload map[string]any) (map[string]any, error) {
	body, err := c.send(ctx, fiber.Post(c.url(kind)).JSON(payload))
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode created %s: %w", kind, err)
	}
	return record, nil
}

// List returns every profile of kind, newest first.
func (c *Client) List(ctx context.Context, kind models.Kind) ([]map[string]any, error) {
	body, err := c.send(ctx, fiber.Get(c.url(kind)))
	if err != nil {
		return nil, err
	}
	records := []map[string]any{}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", kind, err)
	}
	return records, nil
}

// Get returns one profile.
func (c *Client) Get(ctx context.Context, kind models.Kind, id string) (map[string]any, error) {
	body, err := c.send(ctx, fiber.Get(c.url(kind, id)))
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", kind, id, err)
	}
	return record, nil
}

// Card returns the card view of a profile.
func (c *Client) Card(ctx context.Context, kind models.Kind, id string, mode card.Mode) (card.View, error) {
	a := fiber.Get(c.url(kind, id, "card"))
	if mode != card.ModeDefault {
		a.QueryString("qr=" + string(mode))
	}
	body, err := c.send(ctx, a)
	if err != nil {
		return card.View{}, err
	}
	var view card.View
	if err := json.Unmarshal(body, &view); err != nil {
		return card.View{}, fmt.Errorf("decode card: %w", err)
	}
	return view, nil
}

// QRPNG downloads a profile's QR code; size 0 uses the server default.
func (c *Client) QRPNG(ctx context.Context, kind models.Kind, id string, size int) ([]byte, error) {
	a := fiber.Get(c.url(kind, id, "qr.png"))
	if size > 0 {
		a.QueryString("size=" + strconv.Itoa(size))
	}
	return c.send(ctx, a)
}

// CardPNG downloads the rendered card.
func (c *Client) CardPNG(ctx context.Context, kind models.Kind, id string) ([]byte, error) {
	return c.send(ctx, fiber.Get(c.url(kind, id, "card.png")))
}

func (c *Client) send(ctx context.Context, a *fiber.Agent) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
	}

	code, body, errs := a.Timeout(timeout).Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("request failed: %w", errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		apiErr := &APIError{Status: code}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	return body, nil
}
