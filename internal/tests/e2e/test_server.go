package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"

	"github.com/you/kpaforms/internal/app"
	"github.com/you/kpaforms/internal/config"
	"github.com/you/kpaforms/internal/mocks"
	"github.com/you/kpaforms/internal/services"
	testconfig "github.com/you/kpaforms/internal/tests/config"
)

// TestServer runs the full application over an in-memory database and an
// in-process Redis
type TestServer struct {
	Server    *httptest.Server
	Container *app.Container
	Config    *config.Config
	Redis     *miniredis.Miniredis
	Notifier  *mocks.MockNotificationService
	Client    *http.Client
}

// Response is a decoded HTTP response
type Response struct {
	Status int
	Header http.Header
	Body   map[string]interface{}
	Raw    string
}

// Data returns the "data" envelope as an object
func (r *Response) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// List returns the "data" envelope as an array
func (r *Response) List() []interface{} {
	list, _ := r.Body["data"].([]interface{})
	return list
}

// NewTestServer creates and starts a server; it is closed when the test ends
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	cfg := testconfig.LoadTestConfig(t, mr.Addr())

	container, err := app.NewContainer(cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	// Capture status change SMS instead of calling Twilio
	notifier := mocks.NewMockNotificationService()
	container.NotificationSvc = notifier
	container.SubmissionSvc = services.NewSubmissionService(
		container.SubmissionRepo,
		notifier,
		container.AuditLogger,
		cfg.Pagination.MaxLimit,
	)

	server := httptest.NewServer(container.Router())

	ts := &TestServer{
		Server:    server,
		Container: container,
		Config:    cfg,
		Redis:     mr,
		Notifier:  notifier,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}

	t.Cleanup(func() {
		server.Close()
		container.Close()
	})

	return ts
}

// Do sends a request with an optional bearer token and JSON body
func (s *TestServer) Do(t *testing.T, method, path, token string, body interface{}) *Response {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, s.Server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := &Response{Status: resp.StatusCode, Header: resp.Header}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	out.Raw = string(raw)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out.Body); err != nil {
			t.Fatalf("decode response %q: %v", raw, err)
		}
	}
	return out
}

// MustRegister registers a user and fails the test unless it returns 201
func (s *TestServer) MustRegister(t *testing.T, phone, password string) map[string]interface{} {
	t.Helper()
	resp := s.Do(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"phone_number": phone,
		"full_name":    "User " + phone,
		"password":     password,
	})
	if resp.Status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d %v", phone, resp.Status, resp.Body)
	}
	return resp.Data()
}

// MustLogin logs in and returns the access token
func (s *TestServer) MustLogin(t *testing.T, phone, password string) string {
	t.Helper()
	resp := s.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone_number": phone,
		"password":     password,
	})
	if resp.Status != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d %v", phone, resp.Status, resp.Body)
	}
	token, _ := resp.Data()["access_token"].(string)
	if token == "" {
		t.Fatal("login returned no access token")
	}
	return token
}

// MustSubmit creates a submission and returns its id
func (s *TestServer) MustSubmit(t *testing.T, token string, draft map[string]interface{}) uint {
	t.Helper()
	resp := s.Do(t, http.MethodPost, "/api/forms/submit", token, draft)
	if resp.Status != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d %v", resp.Status, resp.Body)
	}
	id, _ := resp.Data()["id"].(float64)
	return uint(id)
}

func submissionPath(id uint) string {
	return fmt.Sprintf("/api/forms/submissions/%d", id)
}
