package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/festivalhq/festival-backend/errors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// authenticator is a middleware that authenticates the admin of a protected
// request. It distinguishes a missing credential, a credential with the wrong
// scheme and an invalid or expired token. If successful, it decodes the admin
// identity from the JWT claims and adds it to the request context for the
// next handlers.
func (a *API) authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			errors.ErrAuthHeaderMissing.Write(w)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			errors.ErrAuthHeaderMalformed.Write(w)
			return
		}
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			if err == jwtauth.ErrExpired {
				errors.ErrTokenExpired.Write(w)
				return
			}
			errors.ErrInvalidToken.WithErr(err).Write(w)
			return
		}
		if token == nil || jwt.Validate(token, jwt.WithRequiredClaim("adminId")) != nil {
			errors.ErrUnauthorized.Withf("adminId claim not found in JWT token").Write(w)
			return
		}
		// retrieve the admin identity from the claims
		admin := AdminIdentity{}
		if id, ok := claims["adminId"].(string); ok {
			admin.ID = id
		}
		if name, ok := claims["adminName"].(string); ok {
			admin.AdminName = name
		}
		// token is authenticated, pass it through with the new context with the
		// admin identity
		ctx := context.WithValue(r.Context(), adminIdentityKey{}, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
