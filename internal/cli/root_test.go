// Copyright (c) 2026 Pulseboard. All rights reserved.

package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/pkg/client"
)

// newTestApp wires an App against a fake server with a stored session.
func newTestApp(t *testing.T, authenticated bool) (*App, *bytes.Buffer) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]string{
			"status": "ok", "database": "connected", "environment": "development",
		})
	})
	mux.HandleFunc("GET /api/auth/me", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		if request.Header.Get("Authorization") != "Bearer tok-123" {
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"error": "Token is not valid", "code": "UNAUTHORIZED",
			})
			return
		}
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"id": 7, "username": "janedoe", "email": "jane@example.com",
			"firstName": "Jane", "lastName": "Doe",
		})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store := client.NewFileTokenStoreAt(filepath.Join(t.TempDir(), "token"))
	if authenticated {
		require.NoError(t, store.Save("tok-123"))
	}

	out := &bytes.Buffer{}
	app := &App{
		serverURL: server.URL,
		session:   client.New(server.URL, store),
		out:       out,
	}
	return app, out
}

func runCommand(t *testing.T, command interface {
	SetArgs([]string)
	Execute() error
}) error {
	t.Helper()
	command.SetArgs([]string{})
	return command.Execute()
}

func TestStatusCommand(t *testing.T) {
	app, out := newTestApp(t, false)

	err := runCommand(t, newStatusCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Status:      ok")
	assert.Contains(t, out.String(), "Database:    connected")
}

func TestMetricsCommand(t *testing.T) {
	app, out := newTestApp(t, true)

	err := runCommand(t, newMetricsCommand(app))
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "Welcome back, Jane!")
	assert.Contains(t, output, "Server Status")
	assert.Contains(t, output, "Online")
	assert.Contains(t, output, "Requests per Minute")
}

func TestMetricsCommandRequiresSession(t *testing.T) {
	app, _ := newTestApp(t, false)

	err := runCommand(t, newMetricsCommand(app))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashctl login")
}

func TestWhoamiCommand(t *testing.T) {
	app, out := newTestApp(t, true)

	err := runCommand(t, newWhoamiCommand(app))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Username:  janedoe")
	assert.Contains(t, out.String(), "jane@example.com")
}
