package e2e

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, s *TestServer, phone, password string) *Response {
	t.Helper()
	return s.Do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"phone_number": phone,
		"password":     password,
	})
}

func TestLogin_Failures(t *testing.T) {
	s := NewTestServer(t)
	s.MustRegister(t, "9999999999", "secret1")

	wrongPassword := login(t, s, "9999999999", "nope-nope")
	unknownPhone := login(t, s, "7777777777", "secret1")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Status)
	assert.Equal(t, http.StatusUnauthorized, unknownPhone.Status)
	assert.Equal(t, wrongPassword.Body, unknownPhone.Body, "unknown phone and wrong password are indistinguishable")
}

func TestLogin_ThrottlesRepeatedFailures(t *testing.T) {
	s := NewTestServer(t)
	s.MustRegister(t, "9999999999", "secret1")

	for i := 0; i < s.Config.Login.MaxAttempts; i++ {
		resp := login(t, s, "9999999999", "wrong")
		require.Equal(t, http.StatusUnauthorized, resp.Status, "attempt %d", i+1)
	}

	// Even the right password is refused while locked
	resp := login(t, s, "9999999999", "secret1")
	require.Equal(t, http.StatusTooManyRequests, resp.Status)
	assert.Equal(t, "too_many_attempts", resp.Body["code"])
	retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, int(s.Config.Login.LockoutWindow.Seconds()))

	// Other phone numbers are unaffected
	s.MustRegister(t, "8888888888", "secret2")
	s.MustLogin(t, "8888888888", "secret2")

	// The lock lifts once the window passes
	s.Redis.FastForward(s.Config.Login.LockoutWindow + time.Second)
	s.MustLogin(t, "9999999999", "secret1")
}

func TestLogin_SuccessResetsFailureCount(t *testing.T) {
	s := NewTestServer(t)
	s.MustRegister(t, "9999999999", "secret1")

	for round := 0; round < 3; round++ {
		for i := 0; i < s.Config.Login.MaxAttempts-1; i++ {
			resp := login(t, s, "9999999999", "wrong")
			require.Equal(t, http.StatusUnauthorized, resp.Status)
		}
		s.MustLogin(t, "9999999999", "secret1")
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	s := NewTestServer(t)
	profile := s.MustRegister(t, "9999999999", "secret1")
	token := s.MustLogin(t, "9999999999", "secret1")

	err := s.Container.DB.Table("users").
		Where("id = ?", uint(profile["id"].(float64))).
		Update("is_active", false).Error
	require.NoError(t, err)

	resp := login(t, s, "9999999999", "secret1")
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.Equal(t, "Account is inactive", resp.Body["error"])

	resp = login(t, s, "9999999999", "wrong")
	assert.Equal(t, "Invalid phone number or password", resp.Body["error"], "inactive state is only disclosed with the right password")

	// Tokens issued before deactivation stop working
	resp = s.Do(t, http.MethodGet, "/api/forms/submissions", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
}
