package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.vocdoni.io/dvote/log"
)

// AdminIdentity is the decoded identity of the authenticated admin, attached
// to the request context by the authenticator middleware.
type AdminIdentity struct {
	ID        string
	AdminName string
}

// adminIdentityKey is the context key used to store the authenticated admin.
type adminIdentityKey struct{}

// adminFromContext retrieves the authenticated admin from the context
// provided, expected to be the context of a request handled by the
// authenticator middleware.
func adminFromContext(ctx context.Context) (*AdminIdentity, bool) {
	admin, ok := ctx.Value(adminIdentityKey{}).(AdminIdentity)
	if ok {
		return &admin, ok
	}
	return nil, false
}

// httpWriteJSON helper function allows to write a JSON response.
func httpWriteJSON(w http.ResponseWriter, data any) {
	httpWriteJSONStatus(w, http.StatusOK, data)
}

// httpWriteJSONStatus helper function allows to write a JSON response with a
// custom HTTP status code.
func httpWriteJSONStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		log.Warnw("failed to write on response", "error", err)
	}
}
