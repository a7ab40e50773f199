// Package client talks to a running id5100d over its HTTP API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Status mirrors the daemon's /api/v1/status response.
type Status struct {
	Frequency  int64  `json:"frequency"`
	Mode       string `json:"mode"`
	Bandwidth  int    `json:"bandwidth"`
	VFO        string `json:"vfo"`
	DualWatch  bool   `json:"dual_watch"`
	PTT        bool   `json:"ptt"`
	Mock       bool   `json:"mock"`
	Version    string `json:"version"`
	UptimeSecs int64  `json:"uptime_seconds"`
}

// Client is an HTTP client for the daemon API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the daemon at baseURL, e.g.
// "http://127.0.0.1:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.http.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func (c *Client) post(path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to reach daemon: %w", err)
	}
	defer resp.Body.Close()
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("daemon: %s", apiErr.Error)
		}
		return fmt.Errorf("daemon: HTTP %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	return nil
}

// GetStatus returns the daemon status.
func (c *Client) GetStatus() (*Status, error) {
	var st Status
	if err := c.get("/api/v1/status", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// GetCapabilities returns the raw capability descriptor.
func (c *Client) GetCapabilities() (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get("/api/v1/capabilities", &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// SetFrequency tunes the radio.
func (c *Client) SetFrequency(hz int64) error {
	return c.post("/api/v1/frequency", map[string]int64{"hz": hz}, nil)
}

// SetMode selects an operating mode.
func (c *Client) SetMode(mode string, bandwidth int) error {
	return c.post("/api/v1/mode", map[string]interface{}{
		"mode":      mode,
		"bandwidth": bandwidth,
	}, nil)
}

// SetVFO selects a VFO.
func (c *Client) SetVFO(vfo string) error {
	return c.post("/api/v1/vfo", map[string]string{"vfo": vfo}, nil)
}

// SetSplit configures split operation.
func (c *Client) SetSplit(enabled bool, txVFO, rxVFO string) error {
	return c.post("/api/v1/split", map[string]interface{}{
		"enabled": enabled,
		"tx_vfo":  txVFO,
		"rx_vfo":  rxVFO,
	}, nil)
}

// SetPTT keys or unkeys the transmitter.
func (c *Client) SetPTT(on bool) error {
	return c.post("/api/v1/ptt", map[string]bool{"on": on}, nil)
}

// GetFunc reads a function state.
func (c *Client) GetFunc(name string) (bool, error) {
	var out struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.get("/api/v1/func/"+name, &out); err != nil {
		return false, err
	}
	return out.Enabled, nil
}

// SetFunc switches a function on or off.
func (c *Client) SetFunc(name string, enabled bool) error {
	return c.post("/api/v1/func/"+name, map[string]bool{"enabled": enabled}, nil)
}

// GetLevel reads a level value.
func (c *Client) GetLevel(name string) (int, error) {
	var out struct {
		Value int `json:"value"`
	}
	if err := c.get("/api/v1/level/"+name, &out); err != nil {
		return 0, err
	}
	return out.Value, nil
}

// SetLevel writes a level value.
func (c *Client) SetLevel(name string, value int) error {
	return c.post("/api/v1/level/"+name, map[string]int{"value": value}, nil)
}

// AuditEntry is one recorded rig operation.
type AuditEntry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Op        string `json:"op"`
	Detail    string `json:"detail"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}

// GetAudit returns recent audit log entries, newest first.
func (c *Client) GetAudit(limit int) ([]AuditEntry, error) {
	var out struct {
		Entries []AuditEntry `json:"entries"`
	}
	if err := c.get(fmt.Sprintf("/api/v1/audit?limit=%d", limit), &out); err != nil {
		return nil, err
	}
	return out.Entries, nil
}
