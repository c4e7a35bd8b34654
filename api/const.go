package api

const (
	// ping route
	pingEndpoint = "/ping"
	// GET /health health check
	healthEndpoint = "/health"
	// POST /admin/register admin registration
	adminRegisterEndpoint = "/admin/register"
	// POST /admin/login admin login
	adminLoginEndpoint = "/admin/login"
	// GET /users paginated attendee list
	usersEndpoint = "/users"
	// GET /users/getAll full attendee list
	usersGetAllEndpoint = "/users/getAll"
	// POST /users/add create one attendee
	usersAddEndpoint = "/users/add"
	// DELETE /users/delete/{userId} delete attendee
	usersDeleteEndpoint = "/users/delete/{userId}"
	// PUT /users/update/{userId} replace attendee
	usersUpdateEndpoint = "/users/update/{userId}"
	// GET /users/search attendee credential search
	usersSearchEndpoint = "/users/search"
	// POST /users/login attendee login
	usersLoginEndpoint = "/users/login"
	// POST /users/import-excel bulk import from spreadsheet
	usersImportEndpoint = "/users/import-excel"
)

const (
	// defaultPage is used when the page query parameter is absent or invalid.
	defaultPage = 1
	// defaultPageSize is used when the limit query parameter is absent or invalid.
	defaultPageSize = 50
)
