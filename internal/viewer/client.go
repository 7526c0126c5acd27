package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"
)

// Defaults for the local viewer endpoint.
const (
	DefaultEndpoint = "http://localhost:8080/3d-data"
	DefaultTimeout  = time.Second
)

// Client posts payloads to the viewer. A single attempt is made per Send.
type Client struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient returns a client for endpoint with the given timeout.
// Zero values select the defaults.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		Endpoint:   endpoint,
		Timeout:    timeout,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Send posts the payload as JSON. Any transport error or non-2xx status is returned.
func (c *Client) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", c.Endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post %s: unexpected status %s", c.Endpoint, resp.Status)
	}
	return nil
}

// Sender is the transport used by Deliver.
type Sender interface {
	Send(ctx context.Context, p Payload) error
}

// Delivery records how a payload left the process.
type Delivery struct {
	Count int
	// Sent is true when the viewer accepted the payload.
	Sent bool
	// SendErr is the transport failure that triggered the fallback.
	SendErr error
	// FallbackPath is the JSON file written after a failed send.
	FallbackPath string
	// WriteErr is set when the fallback file could not be written either.
	WriteErr error
}

// Deliver tries the viewer first and falls back to <outputDir>/3d_data.json.
// It never returns an error; the outcome is described by the Delivery.
// With an empty outputDir the fallback is skipped.
func Deliver(ctx context.Context, s Sender, p Payload, outputDir string) Delivery {
	d := Delivery{Count: p.TotalCount}
	if s != nil {
		if d.SendErr = s.Send(ctx, p); d.SendErr == nil {
			d.Sent = true
			return d
		}
	}
	if outputDir == "" {
		return d
	}
	path := filepath.Join(outputDir, FallbackFile)
	if err := WriteFile(path, p); err != nil {
		d.WriteErr = err
		return d
	}
	d.FallbackPath = path
	return d
}
