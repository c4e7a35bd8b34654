package api

import (
	"encoding/json"
	goerrors "errors"
	"net/http"
	"strconv"

	"github.com/festivalhq/festival-backend/db"
	"github.com/festivalhq/festival-backend/errors"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.vocdoni.io/dvote/log"
)

// usersHandler handles the paginated attendee list request. The page defaults
// to 1 and the page size to 50 when the query parameters are absent or
// invalid.
func (a *API) usersHandler(w http.ResponseWriter, r *http.Request) {
	page := queryInt64(r, "page", defaultPage)
	limit := queryInt64(r, "limit", defaultPageSize)
	totalPages, users, err := a.db.Users(page, limit)
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &UsersPage{
		TotalPages:  totalPages,
		CurrentPage: page,
		Users:       users,
	})
}

// allUsersHandler handles the unpaginated attendee list request.
func (a *API) allUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := a.db.AllUsers()
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &UsersList{Users: users})
}

// addUserHandler handles the attendee creation request. The payload is
// validated before it reaches the store, a duplicate name or code is reported
// as a conflict naming the offending field.
func (a *API) addUserHandler(w http.ResponseWriter, r *http.Request) {
	userInfo := &UserInfo{}
	if err := json.NewDecoder(r.Body).Decode(userInfo); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if err := a.validator.Validate(userInfo); err != nil {
		errors.ErrInvalidUserData.WithErr(err).Write(w)
		return
	}
	user, err := a.db.AddUser(&db.User{
		Name:       userInfo.Name,
		ChurchName: userInfo.ChurchName,
		Code:       userInfo.Code,
		BirthDate:  userInfo.BirthDate,
	})
	if err != nil {
		writeUserStoreError(w, err)
		return
	}
	httpWriteJSONStatus(w, http.StatusCreated, &AddUserResponse{
		Message: "User added successfully",
		User:    user,
	})
}

// updateUserHandler handles the attendee replace request. Every attendee field
// is replaced with the request payload and the post-update record is returned.
func (a *API) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		errors.ErrMalformedURLParam.WithErr(err).Write(w)
		return
	}
	userInfo := &UserInfo{}
	if err := json.NewDecoder(r.Body).Decode(userInfo); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if err := a.validator.Validate(userInfo); err != nil {
		errors.ErrInvalidUserData.WithErr(err).Write(w)
		return
	}
	user, err := a.db.UpdateUser(id, &db.User{
		Name:       userInfo.Name,
		ChurchName: userInfo.ChurchName,
		Code:       userInfo.Code,
		BirthDate:  userInfo.BirthDate,
	})
	if err != nil {
		writeUserStoreError(w, err)
		return
	}
	httpWriteJSON(w, &UpdateUserResponse{
		Message: "User updated successfully",
		User:    user,
	})
}

// deleteUserHandler handles the attendee delete request, returning the deleted
// record.
func (a *API) deleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "userId"))
	if err != nil {
		errors.ErrMalformedURLParam.WithErr(err).Write(w)
		return
	}
	deleted, err := a.db.DelUser(id)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrUserNotFound.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	if admin, ok := adminFromContext(r.Context()); ok {
		log.Infow("attendee deleted", "userId", id.Hex(), "admin", admin.AdminName)
	}
	httpWriteJSON(w, &DeleteUserResponse{
		Message: "User deleted successfully",
		Deleted: deleted,
	})
}

// searchUsersHandler handles the public attendee lookup by name, church name
// and birth date. The three query parameters are required, the match is
// case-insensitive and trimmed but never a substring one.
func (a *API) searchUsersHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	churchName := r.URL.Query().Get("churchName")
	birthdate := r.URL.Query().Get("birthdate")
	if name == "" || churchName == "" || birthdate == "" {
		errors.ErrMalformedURLParam.With("name, churchName and birthdate are required").Write(w)
		return
	}
	user, err := a.db.UserByCredentials(name, churchName, birthdate)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrNoMatchingResults.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &SearchUserResponse{User: user})
}

// userLoginHandler handles the attendee login request. The attendee identifies
// with name, church name and birth date; on a match a signed token with the
// attendee identity is issued alongside the profile.
func (a *API) userLoginHandler(w http.ResponseWriter, r *http.Request) {
	credentials := &UserCredentials{}
	if err := json.NewDecoder(r.Body).Decode(credentials); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if err := a.validator.Validate(credentials); err != nil {
		errors.ErrMalformedBody.WithErr(err).Write(w)
		return
	}
	user, err := a.db.UserByCredentials(credentials.Name, credentials.ChurchName, credentials.BirthDate)
	if err != nil {
		if err == db.ErrNotFound {
			errors.ErrUserInvalidCredentials.Write(w)
			return
		}
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	token, expirity, err := a.makeToken(map[string]any{
		"userId":     user.ID.Hex(),
		"name":       user.Name,
		"churchName": user.ChurchName,
	})
	if err != nil {
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		return
	}
	httpWriteJSON(w, &UserLoginResponse{
		Message:  "Login successful",
		User:     user,
		Token:    token,
		Expirity: expirity,
	})
}

// writeUserStoreError maps a storage error of the attendee write operations to
// the error taxonomy: invalid data, not found, duplicate key conflict or
// internal error.
func writeUserStoreError(w http.ResponseWriter, err error) {
	switch {
	case err == db.ErrInvalidData:
		errors.ErrInvalidUserData.Write(w)
	case err == db.ErrNotFound:
		errors.ErrUserNotFound.Write(w)
	case goerrors.Is(err, db.ErrAlreadyExists):
		errors.ErrDuplicateConflict.WithErr(err).Write(w)
	default:
		log.Warnw("attendee store operation failed", "error", err)
		errors.ErrGenericInternalServerError.WithErr(err).Write(w)
	}
}

// queryInt64 parses a positive integer query parameter, falling back to the
// given default when absent or invalid.
func queryInt64(r *http.Request, param string, fallback int64) int64 {
	value, err := strconv.ParseInt(r.URL.Query().Get(param), 10, 64)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
