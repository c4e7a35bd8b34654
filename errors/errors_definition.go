// Package errors provides custom error types and definitions for the application.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the client's fault,
// and they return HTTP Status 400, 401, 404 or 409, whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX.
// There's no correlation between Code and HTTP Status.
var (
	// Authentication errors (401, plus 400 for tokens that cannot be decoded at all)
	ErrUnauthorized           = Error{Code: 40001, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("authentication required"), LogLevel: "info"}
	ErrAuthHeaderMissing      = Error{Code: 40002, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("authorization header missing"), LogLevel: "info"}
	ErrAuthHeaderMalformed    = Error{Code: 40003, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("invalid token format, use 'Bearer <token>'"), LogLevel: "info"}
	ErrTokenExpired           = Error{Code: 40004, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("token expired"), LogLevel: "info"}
	ErrInvalidToken           = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid token"), LogLevel: "info"}
	ErrUserInvalidCredentials = Error{Code: 40006, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("invalid attendee credentials"), LogLevel: "info"}

	// Validation errors (400)
	ErrMalformedBody      = Error{Code: 40007, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrInvalidUserData    = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid attendee information provided")}
	ErrMissingCredentials = Error{Code: 40009, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("adminName and password are both required")}
	ErrPasswordTooShort   = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("password must be at least 8 characters")}
	ErrMalformedURLParam  = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid URL parameter")}
	ErrInvalidCredentials = Error{Code: 40012, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid adminName or password"), LogLevel: "info"}
	ErrAdminAlreadyExists = Error{Code: 40013, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("admin already exists")}
	ErrNoFileProvided     = Error{Code: 40014, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("no file uploaded")}
	ErrInvalidSpreadsheet = Error{Code: 40015, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("could not parse spreadsheet file")}

	// Not found errors (404)
	ErrUserNotFound      = Error{Code: 40016, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("user not found")}
	ErrNoMatchingResults = Error{Code: 40017, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("no matching results"), LogLevel: "info"}

	// Conflict errors (409)
	ErrDuplicateConflict = Error{Code: 40901, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("duplicate entry found (check name/code fields)")}

	// Server errors (500) - These should be used sparingly and only for true internal errors
	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: failed to process response"), LogLevel: "error"}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: operation failed"), LogLevel: "error"}
)
