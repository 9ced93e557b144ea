package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/probegrid/sensord/internal/device"
)

// maxErrorBody is the maximum number of bytes read from an error response.
const maxErrorBody = 4096

// Client accesses sensor modules through the hub daemon's HTTP API. It
// implements device.Source.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// moduleInfo is the wire representation of a module.
type moduleInfo struct {
	Serial    string `json:"serial"`
	Name      string `json:"name"`
	Functions int    `json:"functions"`
}

// valueResponse is the wire representation of a single numeric reading.
type valueResponse struct {
	Value float64 `json:"value"`
}

// functionResponse is the wire representation of one module function.
type functionResponse struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// NewClient creates a hub Client. Config defaults are applied automatically.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: cfg.ConnectTimeout,
			}).DialContext,
		},
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger.With("component", "hub"),
	}, nil
}

// Register probes the hub once to verify it is reachable. A failure here is
// fatal at startup: without a hub there is no device source, so the caller
// exits rather than retrying.
func (c *Client) Register(ctx context.Context) error {
	if err := c.get(ctx, "/api/status", nil); err != nil {
		return fmt.Errorf("hub: register: %w", err)
	}
	c.logger.Info("hub registered", "url", c.baseURL)
	return nil
}

// EnumerateModules returns all modules currently attached to the hub.
func (c *Client) EnumerateModules(ctx context.Context) ([]device.Module, error) {
	var infos []moduleInfo
	if err := c.get(ctx, "/api/modules", &infos); err != nil {
		return nil, &device.AccessError{Op: "enumerate", Err: err}
	}

	modules := make([]device.Module, 0, len(infos))
	for _, info := range infos {
		modules = append(modules, device.Module{
			Serial:        info.Serial,
			Name:          info.Name,
			FunctionCount: info.Functions,
		})
	}
	return modules, nil
}

// ReadCurrent returns the module's USB current draw in mA.
func (c *Client) ReadCurrent(ctx context.Context, m device.Module) (float64, error) {
	var resp valueResponse
	path := fmt.Sprintf("/api/modules/%s/current", url.PathEscape(m.Serial))
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, &device.AccessError{Op: "read current", Serial: m.Serial, Err: err}
	}
	return resp.Value, nil
}

// ReadLuminosity returns the module's beacon luminosity in percent.
func (c *Client) ReadLuminosity(ctx context.Context, m device.Module) (float64, error) {
	var resp valueResponse
	path := fmt.Sprintf("/api/modules/%s/luminosity", url.PathEscape(m.Serial))
	if err := c.get(ctx, path, &resp); err != nil {
		return 0, &device.AccessError{Op: "read luminosity", Serial: m.Serial, Err: err}
	}
	return resp.Value, nil
}

// FunctionType returns the type tag of the function at the given index.
func (c *Client) FunctionType(ctx context.Context, m device.Module, index int) (device.FunctionType, error) {
	resp, err := c.function(ctx, m, index)
	if err != nil {
		return "", err
	}
	return device.FunctionType(resp.Type), nil
}

// FunctionValue returns the current reading of the function at the given
// index.
func (c *Client) FunctionValue(ctx context.Context, m device.Module, index int) (float64, error) {
	resp, err := c.function(ctx, m, index)
	if err != nil {
		return 0, err
	}
	return resp.Value, nil
}

func (c *Client) function(ctx context.Context, m device.Module, index int) (*functionResponse, error) {
	var resp functionResponse
	path := fmt.Sprintf("/api/modules/%s/functions/%d", url.PathEscape(m.Serial), index)
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, &device.AccessError{Op: "read function", Serial: m.Serial, Err: err}
	}
	return &resp, nil
}

// get performs a GET request and decodes the JSON response into result.
// Transport-level failures wrap device.ErrHubUnavailable so callers can
// distinguish an unreachable hub from a hub-reported error.
func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("hub: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", device.ErrHubUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("hub: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("hub: decode response: %w", err)
		}
	}
	return nil
}
