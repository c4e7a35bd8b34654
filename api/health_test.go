package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestHealthHandler(t *testing.T) {
	c := qt.New(t)

	resp, code := testRequest(t, http.MethodGet, "", nil, healthEndpoint)
	c.Assert(code, qt.Equals, http.StatusOK)
	var health HealthResponse
	c.Assert(json.Unmarshal(resp, &health), qt.IsNil)
	c.Assert(health.Status, qt.Equals, "healthy")
	c.Assert(health.Database, qt.Equals, "connected")
	c.Assert(health.Environment, qt.Equals, "development")
	c.Assert(health.Version, qt.Equals, serverVersion)
	c.Assert(health.Uptime >= 0, qt.IsTrue)
	ts, err := time.Parse(time.RFC3339, health.Timestamp)
	c.Assert(err, qt.IsNil)
	c.Assert(time.Since(ts) < time.Minute, qt.IsTrue)
}
