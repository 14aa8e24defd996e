package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const AgentConfigFileName = "config.json"

// AgentConfig is written once by the installer and read only by the agent.
type AgentConfig struct {
	ServerURL         string `json:"server_url"`
	RoomID            string `json:"room_id"`
	InstallationToken string `json:"installation_token"`
}

// Save writes the agent config into dir, replacing any previous file, and
// returns the path written.
func (c AgentConfig) Save(dir string) (string, error) {
	configPath := filepath.Join(dir, AgentConfigFileName)

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshaling agent config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", configPath, err)
	}

	return configPath, nil
}
