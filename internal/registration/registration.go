// Package registration announces a freshly installed machine to the lab
// management server.
package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/quickr-dev/labctl/internal/version"
)

// Payload is the body POSTed to the register endpoint.
type Payload struct {
	Hostname  string `json:"hostname"`
	IPAddress string `json:"ip_address"`
	OSType    string `json:"os_type"`
	OSVersion string `json:"os_version"`
	RoomID    string `json:"room_id"`
	Token     string `json:"token"`
}

// NewPayload combines host facts with the installer's room and token.
func NewPayload(info HostInfo, roomID, token string) Payload {
	return Payload{
		Hostname:  info.Hostname,
		IPAddress: info.IPAddress,
		OSType:    info.OSType,
		OSVersion: info.OSVersion,
		RoomID:    roomID,
		Token:     token,
	}
}

// Endpoint is the register URL under an API base such as https://host/api.
func Endpoint(apiBase string) string {
	return strings.TrimRight(apiBase, "/") + "/computers/register"
}

// StatusError is a register response outside 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	http *http.Client
	log  *zap.Logger
}

func NewClient(httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: httpClient, log: log}
}

// Register POSTs the payload as JSON. Any non-2xx answer is an error.
func (c *Client) Register(ctx context.Context, endpoint string, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Info("registration response",
		zap.String("url", endpoint), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snippet))}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
