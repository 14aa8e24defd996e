package e2e_cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireFile(t *testing.T, path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("Expected file %s to exist", path)
	}
}

func requireAgentConfigValue(t *testing.T, installDir, jsonPath string, expected interface{}) {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(installDir, "config.json"))
	require.NoError(t, err, "Failed to read config.json")

	var config map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &config), "Failed to parse config.json")

	value := getValueByPath(t, config, jsonPath)
	require.Equal(t, expected, value, "Expected %s to be %v, got %v", jsonPath, expected, value)
}

// getValueByPath walks dotted object keys.
func getValueByPath(t *testing.T, data interface{}, path string) interface{} {
	t.Helper()

	current := data
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		require.True(t, ok, "Expected object for key %s", part)
		current = obj[part]
	}
	return current
}
