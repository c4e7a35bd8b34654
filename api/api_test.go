package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/festivalhq/festival-backend/db"
	"github.com/festivalhq/festival-backend/test"
)

const (
	testSecret = "super-secret"
	testHost   = "0.0.0.0"
	testPort   = 7788

	testAdminName = "admin"
	testAdminPass = "admin-password"
)

// testDB is the MongoDB storage for the tests. Make it global so it can be
// accessed by the tests directly.
var testDB *db.MongoStorage

// testURL helper function returns the full URL for the given path using the
// test host and port.
func testURL(path string) string {
	return fmt.Sprintf("http://%s:%d%s", testHost, testPort, path)
}

// mustMarshal helper function marshalls the input interface into a byte slice.
// It panics if the marshalling fails.
func mustMarshal(i any) []byte {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}
	return b
}

// testRequest helper function performs an HTTP request to the API with the
// given method, JWT token and body. The body can be a string, a byte slice or
// anything JSON-marshallable. It returns the response body and status code.
func testRequest(t *testing.T, method, jwt string, body any, urlPath ...string) ([]byte, int) {
	t.Helper()
	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = strings.NewReader(b)
	case []byte:
		reqBody = bytes.NewReader(b)
	default:
		reqBody = bytes.NewReader(mustMarshal(b))
	}
	req, err := http.NewRequest(method, testURL(strings.Join(urlPath, "/")), reqBody)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if jwt != "" {
		req.Header.Set("Authorization", "Bearer "+jwt)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return respBody, resp.StatusCode
}

// adminToken helper function registers the test admin account if needed and
// logs it in, returning a valid bearer token.
func adminToken(t *testing.T) string {
	t.Helper()
	creds := &AdminCredentials{AdminName: testAdminName, Password: testAdminPass}
	_, _ = testRequest(t, http.MethodPost, "", creds, adminRegisterEndpoint)
	resp, code := testRequest(t, http.MethodPost, "", creds, adminLoginEndpoint)
	if code != http.StatusOK {
		t.Fatalf("admin login failed with status %d: %s", code, resp)
	}
	var login AdminLoginResponse
	if err := json.Unmarshal(resp, &login); err != nil {
		t.Fatal(err)
	}
	return login.Token
}

// pingAPI helper function pings the API endpoint and retries the request
// if it fails until the retries limit is reached. It returns an error if the
// request fails or the status code is not 200 as many times as the retries
// limit.
func pingAPI(endpoint string, retries int) error {
	// create a new ping request
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	// try to ping the API
	var pingErr error
	for i := 0; i < retries; i++ {
		var resp *http.Response
		if resp, pingErr = http.DefaultClient.Do(req); pingErr == nil {
			if resp.StatusCode == http.StatusOK {
				return nil
			}
			pingErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		time.Sleep(time.Second)
	}
	return pingErr
}

// TestMain function starts the MongoDB container and the API server before
// running the tests. It creates a new MongoDB connection with a random
// database name, starts the API server and waits for it to start before
// running the tests.
func TestMain(m *testing.M) {
	ctx := context.Background()
	// start a MongoDB container for testing
	dbContainer, err := test.StartMongoContainer(ctx)
	if err != nil {
		panic(err)
	}
	// ensure the container is stopped when the test finishes
	defer func() { _ = dbContainer.Terminate(ctx) }()
	// get the MongoDB connection string
	mongoURI, err := dbContainer.Endpoint(ctx, "mongodb")
	if err != nil {
		panic(err)
	}
	// set reset db env var to true
	_ = os.Setenv("FESTIVAL_MONGO_RESET_DB", "true")
	// create a new MongoDB connection with the test database
	if testDB, err = db.New(mongoURI, test.RandomDatabaseName()); err != nil {
		panic(err)
	}
	defer testDB.Close()
	// start the API
	New(&Config{
		Host:   testHost,
		Port:   testPort,
		Secret: testSecret,
		DB:     testDB,
	}).Start()
	// wait for the API to start
	if err := pingAPI(testURL(pingEndpoint), 5); err != nil {
		panic(err)
	}
	// run the tests
	os.Exit(m.Run())
}
