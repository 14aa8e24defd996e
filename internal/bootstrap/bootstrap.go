// Package bootstrap produces the per-room values an installer build is
// stamped with: server address, room, a fresh installation token and the
// auto-registration switch.
package bootstrap

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// TokenLength is the length of an installation token in characters.
const TokenLength = 64

type Params struct {
	ServerURL    string    `yaml:"server_url"`
	RoomID       string    `yaml:"room_id"`
	Token        string    `yaml:"token"`
	AutoRegister bool      `yaml:"auto_register"`
	GeneratedAt  time.Time `yaml:"generated_at"`
}

// New validates the server URL and generates a token.
func New(serverURL, roomID string, autoRegister bool) (*Params, error) {
	u, err := url.Parse(serverURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("server URL must be an absolute http(s) URL, got %q", serverURL)
	}

	token, err := NewToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &Params{
		ServerURL:    strings.TrimRight(serverURL, "/"),
		RoomID:       roomID,
		Token:        token,
		AutoRegister: autoRegister,
		GeneratedAt:  time.Now().UTC().Truncate(time.Second),
	}, nil
}

// NewToken returns TokenLength hex characters from crypto/rand.
func NewToken() (string, error) {
	bytes := make([]byte, TokenLength/2)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Render substitutes the installer template placeholders in tmpl. Unknown
// placeholders are left alone.
func (p *Params) Render(tmpl string) string {
	return strings.NewReplacer(
		"{{SERVER_URL}}", p.ServerURL,
		"{{ROOM_ID}}", p.RoomID,
		"{{TOKEN}}", p.Token,
		"{{AUTO_REGISTER}}", strconv.FormatBool(p.AutoRegister),
		"{{TIMESTAMP}}", strconv.FormatInt(p.GeneratedAt.Unix(), 10),
	).Replace(tmpl)
}

const header = `# Computer Management Agent installer bootstrap
# Generated: {{TIMESTAMP}}
# Server: {{SERVER_URL}}
# Room ID: {{ROOM_ID}}
`

// Marshal renders the bootstrap file read by agent-installer.
func (p *Params) Marshal() ([]byte, error) {
	body, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshaling bootstrap: %w", err)
	}
	return append([]byte(p.Render(header)), body...), nil
}

// WriteFile writes the bootstrap file with owner-only permissions; it holds
// the installation token.
func (p *Params) WriteFile(path string) error {
	data, err := p.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
