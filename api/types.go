package api

import (
	"time"

	"github.com/festivalhq/festival-backend/db"
)

// AdminCredentials is the request body of the admin registration and login
// endpoints.
type AdminCredentials struct {
	AdminName string `json:"adminName" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// AdminInfo is the public view of an admin account.
type AdminInfo struct {
	ID        string `json:"id"`
	AdminName string `json:"adminName"`
}

// RegisterAdminResponse is the response of the admin registration endpoint.
type RegisterAdminResponse struct {
	Message string     `json:"message"`
	Admin   *AdminInfo `json:"admin"`
}

// AdminLoginResponse is the response of the admin login endpoint.
type AdminLoginResponse struct {
	Message  string     `json:"message"`
	Token    string     `json:"token"`
	Expirity time.Time  `json:"expirity"`
	Admin    *AdminInfo `json:"admin"`
}

// UserInfo is the request body used to create or replace an attendee record.
// All four fields are required.
type UserInfo struct {
	Name       string `json:"name" validate:"required"`
	ChurchName string `json:"churchName" validate:"required"`
	Code       string `json:"code" validate:"required"`
	BirthDate  string `json:"birthDate" validate:"required"`
}

// UsersPage is the response of the paginated attendee list endpoint.
type UsersPage struct {
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int64      `json:"currentPage"`
	Users       []*db.User `json:"users"`
}

// UsersList is the response of the unpaginated attendee list endpoint.
type UsersList struct {
	Users []*db.User `json:"users"`
}

// AddUserResponse is the response of the attendee creation endpoint.
type AddUserResponse struct {
	Message string   `json:"message"`
	User    *db.User `json:"newUser"`
}

// UpdateUserResponse is the response of the attendee replace endpoint.
type UpdateUserResponse struct {
	Message string   `json:"message"`
	User    *db.User `json:"user"`
}

// DeleteUserResponse is the response of the attendee delete endpoint.
type DeleteUserResponse struct {
	Message string   `json:"message"`
	Deleted *db.User `json:"deleted"`
}

// SearchUserResponse is the response of the attendee search endpoint.
type SearchUserResponse struct {
	User *db.User `json:"user"`
}

// UserCredentials is the request body of the attendee login endpoint.
type UserCredentials struct {
	Name       string `json:"name" validate:"required"`
	ChurchName string `json:"churchName" validate:"required"`
	BirthDate  string `json:"birthDate" validate:"required"`
}

// UserLoginResponse is the response of the attendee login endpoint.
type UserLoginResponse struct {
	Message  string    `json:"message"`
	User     *db.User  `json:"user"`
	Token    string    `json:"token"`
	Expirity time.Time `json:"expirity"`
}

// ImportUsersResponse is the response of the spreadsheet import endpoint.
type ImportUsersResponse struct {
	Message string    `json:"message"`
	Count   int       `json:"count"`
	Users   []db.User `json:"users"`
}

// HealthResponse is the response of the health endpoint.
type HealthResponse struct {
	Status      string  `json:"status"`
	Database    string  `json:"database"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Version     string  `json:"version"`
}
