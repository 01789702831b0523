package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"auction-client/internal/devserver/repository"
	"auction-client/internal/devserver/server"
	"auction-client/internal/devserver/service"
	model "auction-client/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// TestEnv holds the router and backing stores of one black-box test server.
type TestEnv struct {
	Router *gin.Engine
	Repo   *repository.DB
	Now    time.Time
}

// SetupTestEnv initializes the full stub backend on a throwaway sqlite file.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewDB(filepath.Join(t.TempDir(), "auction-test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	now := time.Now()
	svc := service.NewWithClock(repo, func() time.Time { return now })
	router := server.SetupRouter(svc, t.TempDir())

	return &TestEnv{Router: router, Repo: repo, Now: now}
}

// SeedAuction inserts an auction directly into the repository.
func (env *TestEnv) SeedAuction(t *testing.T, a model.Auction) model.Auction {
	t.Helper()
	created, err := env.Repo.CreateAuction(a)
	if err != nil {
		t.Fatalf("failed to seed auction: %v", err)
	}
	return created
}

// RegisterAndLogin creates an account over the API and returns the session
// cookie of the fresh login.
func (env *TestEnv) RegisterAndLogin(t *testing.T, fullName, email string) *http.Cookie {
	t.Helper()
	body := map[string]string{"fullName": fullName, "email": email, "password": "secret123"}
	w := env.Execute(t, http.MethodPost, "/auth/register", body, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "SESSION" {
			return cookie
		}
	}
	t.Fatal("no session cookie in register response")
	return nil
}

// Execute runs an HTTP request against the router. body may be nil, a raw
// []byte payload or any JSON-marshalable value.
func (env *TestEnv) Execute(t *testing.T, method, url string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

// ExecuteAndParse runs a request and decodes the JSON response body.
func (env *TestEnv) ExecuteAndParse(t *testing.T, method, url string, body any, cookie *http.Cookie) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := env.Execute(t, method, url, body, cookie)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}
