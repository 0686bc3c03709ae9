// Copyright (c) 2026 Pulseboard. All rights reserved.

package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/pkg/client"
)

// newFakeServer runs an in-process stand-in for the API with a single known
// account (janedoe / s3cretpw, token "tok-123").
func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	profile := map[string]interface{}{
		"id":        int64(7),
		"username":  "janedoe",
		"email":     "jane@example.com",
		"firstName": "Jane",
		"lastName":  "Doe",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))

		writer.Header().Set("Content-Type", "application/json")
		if body["username"] != "janedoe" || body["password"] != "s3cretpw" {
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]string{
				"error": "Invalid credentials", "code": "UNAUTHORIZED",
			})
			return
		}
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"token": "tok-123", "user": profile,
		})
	})
	mux.HandleFunc("POST /api/auth/register", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]string{"token": "tok-123"})
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
		_ = json.NewEncoder(writer).Encode(profile)
	})
	mux.HandleFunc("GET /health", func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"status": "ok", "database": "connected",
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newFileStore(t *testing.T) *client.FileTokenStore {
	t.Helper()
	return client.NewFileTokenStoreAt(filepath.Join(t.TempDir(), "token"))
}

func TestClient_LoginLogout(t *testing.T) {
	server := newFakeServer(t)
	store := newFileStore(t)
	manager := client.New(server.URL, store)

	require.False(t, manager.IsAuthenticated())

	require.NoError(t, manager.Login(context.Background(), "janedoe", "s3cretpw"))
	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, "tok-123", manager.Token())
	require.NotNil(t, manager.User())
	assert.Equal(t, "janedoe", manager.User().Username)

	// Token persisted for a later process.
	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", stored)

	require.NoError(t, manager.Logout())
	assert.False(t, manager.IsAuthenticated())
	assert.Nil(t, manager.User())

	stored, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestClient_LoginBadCredentials(t *testing.T) {
	server := newFakeServer(t)
	manager := client.New(server.URL, nil)

	err := manager.Login(context.Background(), "janedoe", "wrong")

	var apiError *client.APIError
	require.ErrorAs(t, err, &apiError)
	assert.Equal(t, http.StatusUnauthorized, apiError.StatusCode)
	assert.Equal(t, "Invalid credentials", apiError.Message)
	assert.False(t, manager.IsAuthenticated())
}

func TestClient_RegisterFetchesProfile(t *testing.T) {
	server := newFakeServer(t)
	manager := client.New(server.URL, newFileStore(t))

	err := manager.Register(context.Background(), client.RegisterInput{
		Username:  "janedoe",
		Email:     "jane@example.com",
		Password:  "s3cretpw",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)

	// The register response only carries the token; the profile comes from
	// the follow-up identity call.
	require.NotNil(t, manager.User())
	assert.Equal(t, "jane@example.com", manager.User().Email)
}

func TestClient_Restore(t *testing.T) {
	server := newFakeServer(t)
	store := newFileStore(t)

	require.NoError(t, store.Save("tok-123"))

	manager := client.New(server.URL, store)
	require.NoError(t, manager.Restore(context.Background()))
	assert.True(t, manager.IsAuthenticated())
	assert.Equal(t, "janedoe", manager.User().Username)
}

func TestClient_RestoreStaleToken(t *testing.T) {
	server := newFakeServer(t)
	store := newFileStore(t)

	require.NoError(t, store.Save("tok-expired"))

	manager := client.New(server.URL, store)
	err := manager.Restore(context.Background())
	require.ErrorIs(t, err, client.ErrNotAuthenticated)
	assert.False(t, manager.IsAuthenticated())

	// The unusable token must not survive for the next restore attempt.
	stored, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, stored)
}

func TestClient_RestoreWithoutStore(t *testing.T) {
	manager := client.New("http://localhost:0", nil)
	require.ErrorIs(t, manager.Restore(context.Background()), client.ErrNotAuthenticated)
}

func TestClient_CurrentUserRequiresSession(t *testing.T) {
	server := newFakeServer(t)
	manager := client.New(server.URL, nil)

	_, err := manager.CurrentUser(context.Background())
	require.ErrorIs(t, err, client.ErrNotAuthenticated)
}
