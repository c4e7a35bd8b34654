// Package api provides the HTTP API for the festival backend: admin
// registration and login, attendee management and the public attendee
// search, login and spreadsheet import endpoints.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/festivalhq/festival-backend/db"
	"github.com/festivalhq/festival-backend/validator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"go.vocdoni.io/dvote/log"
)

// jwtExpiration is the validity window of both admin and attendee tokens.
const jwtExpiration = 24 * time.Hour

type Config struct {
	Host   string
	Port   int
	Secret string
	DB     *db.MongoStorage
	// Environment is reported by the health endpoint ("development" if empty).
	Environment string
}

// API type represents the API HTTP server with JWT authentication capabilities.
type API struct {
	db          *db.MongoStorage
	auth        *jwtauth.JWTAuth
	validator   *validator.Validator
	host        string
	port        int
	environment string
	router      *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	environment := conf.Environment
	if environment == "" {
		environment = "development"
	}
	return &API{
		db:          conf.DB,
		auth:        jwtauth.New("HS256", []byte(conf.Secret), nil),
		validator:   validator.New(),
		host:        conf.Host,
		port:        conf.Port,
		environment: environment,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	// Create the router with a basic middleware stack
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	// protected routes
	r.Group(func(r chi.Router) {
		// seek, verify and validate JWT tokens
		r.Use(jwtauth.Verifier(a.auth))
		// handle valid JWT tokens
		r.Use(a.authenticator)
		// paginated attendee list
		log.Infow("new route", "method", "GET", "path", usersEndpoint)
		r.Get(usersEndpoint, a.usersHandler)
		// full attendee list
		log.Infow("new route", "method", "GET", "path", usersGetAllEndpoint)
		r.Get(usersGetAllEndpoint, a.allUsersHandler)
		// create one attendee
		log.Infow("new route", "method", "POST", "path", usersAddEndpoint)
		r.Post(usersAddEndpoint, a.addUserHandler)
		// delete an attendee by id
		log.Infow("new route", "method", "DELETE", "path", usersDeleteEndpoint)
		r.Delete(usersDeleteEndpoint, a.deleteUserHandler)
		// replace an attendee by id
		log.Infow("new route", "method", "PUT", "path", usersUpdateEndpoint)
		r.Put(usersUpdateEndpoint, a.updateUserHandler)
	})

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
			if _, err := w.Write([]byte(".")); err != nil {
				log.Warnw("failed to write ping response", "error", err)
			}
		})
		// health check with database connectivity state
		log.Infow("new route", "method", "GET", "path", healthEndpoint)
		r.Get(healthEndpoint, a.healthHandler)
		// register admin
		log.Infow("new route", "method", "POST", "path", adminRegisterEndpoint)
		r.Post(adminRegisterEndpoint, a.adminRegisterHandler)
		// admin login
		log.Infow("new route", "method", "POST", "path", adminLoginEndpoint)
		r.Post(adminLoginEndpoint, a.adminLoginHandler)
		// attendee credential search
		log.Infow("new route", "method", "GET", "path", usersSearchEndpoint)
		r.Get(usersSearchEndpoint, a.searchUsersHandler)
		// attendee login
		log.Infow("new route", "method", "POST", "path", usersLoginEndpoint)
		r.Post(usersLoginEndpoint, a.userLoginHandler)
		// bulk import attendees from a spreadsheet
		log.Infow("new route", "method", "POST", "path", usersImportEndpoint)
		r.Post(usersImportEndpoint, a.importUsersHandler)
	})
	a.router = r
	return r
}
