// Copyright (c) 2026 Pulseboard. All rights reserved.

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pulseboard/pulseboard/internal/platform/respond"
)

// # Health Reporting

// Pinger probes the backing store. Satisfied by *pgxpool.Pool through
// [postgres.Ping] in production.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the response body of GET /health.
type HealthStatus struct {
	Status      string  `json:"status"`
	Uptime      float64 `json:"uptime"`
	Database    string  `json:"database"`
	Environment string  `json:"environment"`
}

// healthHandler reports process liveness and store connectivity.
//
// A failed database probe degrades the report but the endpoint still answers
// 200: the process itself is alive, and monitors inspect the body to decide
// severity.
type healthHandler struct {
	db          Pinger
	environment string
	startedAt   time.Time
}

func newHealthHandler(db Pinger, environment string) *healthHandler {
	return &healthHandler{
		db:          db,
		environment: environment,
		startedAt:   time.Now(),
	}
}

func (handler *healthHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	status := HealthStatus{
		Status:      "ok",
		Uptime:      time.Since(handler.startedAt).Seconds(),
		Database:    "connected",
		Environment: handler.environment,
	}

	probeCtx, cancel := context.WithTimeout(request.Context(), 2*time.Second)
	defer cancel()
	if err := handler.db.Ping(probeCtx); err != nil {
		status.Status = "degraded"
		status.Database = "disconnected"
	}

	respond.OK(writer, status)
}
