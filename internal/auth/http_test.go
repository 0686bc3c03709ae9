// Copyright (c) 2026 Pulseboard. All rights reserved.

package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/auth"
	"github.com/pulseboard/pulseboard/internal/platform/middleware"
	"github.com/pulseboard/pulseboard/internal/platform/respond"
	"github.com/pulseboard/pulseboard/internal/platform/sec"
)

// newTestRouter wires the auth handler behind the same middleware chain the
// API server uses for /api/auth.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	tokenService, err := sec.NewTokenService("unit-test-signing-secret", "pulseboard")
	require.NoError(t, err)

	service := auth.NewService(newMemoryUserRepository(), tokenService, time.Hour)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(tokenService))
	router.Mount("/api/auth", auth.NewHandler(service).Routes())
	return router
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func registerBody() map[string]string {
	return map[string]string{
		"username":  "janedoe",
		"email":     "jane@example.com",
		"password":  "s3cretpw",
		"firstName": "Jane",
		"lastName":  "Doe",
	}
}

// # Test Cases

func TestHandler_RegisterAndMe(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var registered map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &registered))
	token := registered["token"]
	require.NotEmpty(t, token)

	recorder = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var profile map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &profile))
	assert.Equal(t, "janedoe", profile["username"])
	assert.Equal(t, "Jane", profile["firstName"])

	// The hash must never leave the server.
	assert.NotContains(t, profile, "passwordHash")
	assert.NotContains(t, profile, "password_hash")
}

func TestHandler_RegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name      string
		mutate    func(body map[string]string)
		wantField string
	}{
		{
			name:      "short password",
			mutate:    func(body map[string]string) { body["password"] = "abc" },
			wantField: "password",
		},
		{
			name:      "short username",
			mutate:    func(body map[string]string) { body["username"] = "ab" },
			wantField: "username",
		},
		{
			// Beyond bcrypt's 72-byte input limit hashing would fail with a
			// 500; the validator rejects it up front instead.
			name:      "overlong password",
			mutate:    func(body map[string]string) { body["password"] = strings.Repeat("a", 73) },
			wantField: "password",
		},
		{
			name:      "invalid email",
			mutate:    func(body map[string]string) { body["email"] = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "missing first name",
			mutate:    func(body map[string]string) { delete(body, "firstName") },
			wantField: "firstName",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			body := registerBody()
			testCase.mutate(body)

			recorder := doJSON(t, router, http.MethodPost, "/api/auth/register", "", body)
			require.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())

			var envelope respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
			assert.Equal(t, "VALIDATION_ERROR", envelope.Code)

			fields := make([]string, 0, len(envelope.Details))
			for _, detail := range envelope.Details {
				fields = append(fields, detail.Field)
			}
			assert.Contains(t, fields, testCase.wantField)
		})
	}
}

func TestHandler_RegisterDuplicate(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusBadRequest, recorder.Code, recorder.Body.String())

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "CONFLICT", envelope.Code)
	assert.Equal(t, "Username already exists", envelope.Error)
}

func TestHandler_LoginFlow(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "janedoe",
		"password": "s3cretpw",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var response struct {
		Token string `json:"token"`
		User  struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "janedoe", response.User.Username)
	assert.NotZero(t, response.User.ID)
}

func TestHandler_LoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	recorder := doJSON(t, router, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "janedoe",
		"password": "totally-wrong",
	})
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Invalid credentials", envelope.Error)
}

func TestHandler_MeRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "no token", token: ""},
		{name: "garbage token", token: "not.a.jwt"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodGet, "/api/auth/me", testCase.token, nil)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code, recorder.Body.String())
		})
	}
}
