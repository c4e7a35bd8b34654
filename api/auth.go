package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/festivalhq/festival-backend/db"
	"github.com/festivalhq/festival-backend/errors"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"go.vocdoni.io/dvote/log"
	"golang.org/x/crypto/bcrypt"
)

// makeToken creates a JWT token with the given claims, signed with the API
// secret following the JWT specification. The token is valid for the period
// specified on the jwtExpiration constant.
func (a *API) makeToken(claims map[string]any) (string, time.Time, error) {
	j := jwt.New()
	for k, v := range claims {
		if err := j.Set(k, v); err != nil {
			return "", time.Time{}, err
		}
	}
	expirity := time.Now().Add(jwtExpiration)
	if err := j.Set(jwt.ExpirationKey, expirity); err != nil {
		return "", time.Time{}, err
	}
	jmap, err := j.AsMap(context.Background())
	if err != nil {
		return "", time.Time{}, err
	}
	_, token, err := a.auth.Encode(jmap)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expirity, nil
}

// adminRegisterHandler handles the register request. It creates a new admin
// account with the hashed password.
func (a *API) adminRegisterHandler(w http.ResponseWriter, r *http.Request) {
	credentials := &AdminCredentials{}
	if err := json.NewDecoder(r.Body).Decode(credentials); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if err := a.validator.Validate(credentials); err != nil {
		errors.ErrMissingCredentials.WithErr(err).Write(w)
		return
	}
	// check the password is correct format
	if len(credentials.Password) < 8 {
		errors.ErrPasswordTooShort.Write(w)
		return
	}
	// refuse the registration early if the admin name is taken, the unique
	// index covers the race between the check and the insert
	if _, err := a.db.AdminByName(credentials.AdminName); err == nil {
		errors.ErrAdminAlreadyExists.Write(w)
		return
	} else if err != db.ErrNotFound {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	// hash the password
	hashPassword, err := bcrypt.GenerateFromPassword([]byte(credentials.Password), bcrypt.DefaultCost)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	// add the admin to the database
	adminID, err := a.db.AddAdmin(&db.Admin{
		AdminName: credentials.AdminName,
		Password:  string(hashPassword),
	})
	if err != nil {
		if err == db.ErrAlreadyExists || err == db.ErrInvalidData {
			errors.ErrAdminAlreadyExists.Write(w)
			return
		}
		log.Warnw("could not create admin", "error", err)
		errors.ErrGenericInternalServerError.Write(w)
		return
	}
	httpWriteJSONStatus(w, http.StatusCreated, &RegisterAdminResponse{
		Message: "Admin created successfully",
		Admin: &AdminInfo{
			ID:        adminID.Hex(),
			AdminName: credentials.AdminName,
		},
	})
}

// adminLoginHandler handles the admin login request. It checks the password
// against the stored bcrypt hash and, on success, issues a signed token with
// the admin identity.
func (a *API) adminLoginHandler(w http.ResponseWriter, r *http.Request) {
	credentials := &AdminCredentials{}
	if err := json.NewDecoder(r.Body).Decode(credentials); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if err := a.validator.Validate(credentials); err != nil {
		errors.ErrMissingCredentials.WithErr(err).Write(w)
		return
	}
	// get the admin from the database, a missing admin and a wrong password
	// yield the same response
	admin, err := a.db.AdminByName(credentials.AdminName)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrInvalidCredentials.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	// check the password
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(credentials.Password)); err != nil {
		errors.ErrInvalidCredentials.Write(w)
		return
	}
	// generate a new token with the admin identity as claims
	token, expirity, err := a.makeToken(map[string]any{
		"adminId":   admin.ID.Hex(),
		"adminName": admin.AdminName,
	})
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &AdminLoginResponse{
		Message:  "Login successful",
		Token:    token,
		Expirity: expirity,
		Admin: &AdminInfo{
			ID:        admin.ID.Hex(),
			AdminName: admin.AdminName,
		},
	})
}
