package registration

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPostsJSON(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/computers/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.True(t, strings.HasPrefix(r.Header.Get("User-Agent"), "agent-installer/"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewPayload(HostInfo{Hostname: "LAB-PC-01", IPAddress: "10.0.0.21", OSType: "windows", OSVersion: "10.0.19045"}, "room-1", "tok")
	err := NewClient(server.Client(), nil).Register(context.Background(), Endpoint(server.URL+"/api"), p)
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"hostname":   "LAB-PC-01",
		"ip_address": "10.0.0.21",
		"os_type":    "windows",
		"os_version": "10.0.19045",
		"room_id":    "room-1",
		"token":      "tok",
	}, got)
}

func TestRegisterNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":"token expired"}`))
	}))
	defer server.Close()

	err := NewClient(nil, nil).Register(context.Background(), Endpoint(server.URL+"/api/"), Payload{})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "token expired")
}

func TestRegisterUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := NewClient(nil, nil).Register(context.Background(), Endpoint(url+"/api"), Payload{})
	require.Error(t, err)
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "http://h/api/computers/register", Endpoint("http://h/api"))
	assert.Equal(t, "http://h/api/computers/register", Endpoint("http://h/api/"))
}

func TestCollectHostInfo(t *testing.T) {
	info, err := CollectHostInfo(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, info.Hostname)
	assert.Equal(t, runtime.GOOS, info.OSType)
	assert.NotNil(t, net.ParseIP(info.IPAddress).To4())
}
