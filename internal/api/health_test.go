// Copyright (c) 2026 Pulseboard. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (pinger fakePinger) Ping(context.Context) error {
	return pinger.err
}

func TestHealthHandler(t *testing.T) {
	testCases := []struct {
		name         string
		pingError    error
		wantStatus   string
		wantDatabase string
	}{
		{
			name:         "database reachable",
			pingError:    nil,
			wantStatus:   "ok",
			wantDatabase: "connected",
		},
		{
			name:         "database unreachable",
			pingError:    errors.New("connection refused"),
			wantStatus:   "degraded",
			wantDatabase: "disconnected",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler := newHealthHandler(fakePinger{err: testCase.pingError}, "development")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			// Liveness always answers 200; severity lives in the body.
			require.Equal(t, http.StatusOK, recorder.Code)

			var status HealthStatus
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &status))
			assert.Equal(t, testCase.wantStatus, status.Status)
			assert.Equal(t, testCase.wantDatabase, status.Database)
			assert.Equal(t, "development", status.Environment)
			assert.GreaterOrEqual(t, status.Uptime, 0.0)
		})
	}
}
