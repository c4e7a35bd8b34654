package api

import (
	"context"
	"net/http"
	"time"
)

// serverVersion is reported by the health endpoint.
const serverVersion = "1.0.0"

// startTime marks the process start, used to report the uptime.
var startTime = time.Now()

// healthHandler reports the process state: database connectivity, uptime and
// environment. It always answers 200, the database state is carried in the
// body.
func (a *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	dbStatus := "connected"
	if err := a.db.Ping(ctx); err != nil {
		dbStatus = "disconnected"
	}
	httpWriteJSON(w, &HealthResponse{
		Status:      "healthy",
		Database:    dbStatus,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(startTime).Seconds(),
		Environment: a.environment,
		Version:     serverVersion,
	})
}
