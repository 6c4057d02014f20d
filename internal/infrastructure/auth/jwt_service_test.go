package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/kpaforms/domain"
)

const testSecret = "test-secret-key-for-signing"

func newTestJWTService(at time.Time) *JWTServiceImpl {
	svc := NewJWTService(testSecret, "kpaforms", 30*time.Minute).(*JWTServiceImpl)
	svc.now = func() time.Time { return at }
	return svc
}

func TestJWTServiceImpl_IssueAndVerify(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(issuedAt)

	token, err := svc.Issue(42, issuedAt)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTServiceImpl_UniqueTokens(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(issuedAt)

	first, err := svc.Issue(1, issuedAt)
	require.NoError(t, err)
	second, err := svc.Issue(1, issuedAt)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestJWTServiceImpl_Expiry(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Minute

	tests := []struct {
		name      string
		verifyAt  time.Time
		expectErr bool
	}{
		{name: "at issue time", verifyAt: issuedAt, expectErr: false},
		{name: "one second before expiry", verifyAt: issuedAt.Add(ttl - time.Second), expectErr: false},
		{name: "exactly at expiry", verifyAt: issuedAt.Add(ttl), expectErr: false},
		{name: "one second after expiry", verifyAt: issuedAt.Add(ttl + time.Second), expectErr: true},
		{name: "long after expiry", verifyAt: issuedAt.Add(24 * time.Hour), expectErr: true},
	}

	issuer := newTestJWTService(issuedAt)
	token, err := issuer.Issue(7, issuedAt)
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestJWTService(tt.verifyAt)
			userID, err := svc.Verify(token)
			if tt.expectErr {
				assert.ErrorIs(t, err, domain.ErrTokenInvalid)
				assert.Zero(t, userID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(7), userID)
		})
	}
}

func TestJWTServiceImpl_TamperedToken(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(issuedAt)

	token, err := svc.Issue(99, issuedAt)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := svc.Verify(tampered)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "flipping position %d should invalidate the token", i)
	}
}

func TestJWTServiceImpl_InvalidTokens(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(issuedAt)

	otherSecret := NewJWTService("another-secret", "kpaforms", time.Hour)
	foreign, err := otherSecret.Issue(1, issuedAt)
	require.NoError(t, err)

	otherIssuer := NewJWTService(testSecret, "someone-else", time.Hour)
	wrongIssuer, err := otherIssuer.Issue(1, issuedAt)
	require.NoError(t, err)

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	missingUser := sign(jwt.MapClaims{
		"iss": "kpaforms",
		"exp": issuedAt.Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	missingExpiry := sign(jwt.MapClaims{
		"iss":     "kpaforms",
		"user_id": 5,
	}, jwt.SigningMethodHS256, []byte(testSecret))

	wrongType := sign(jwt.MapClaims{
		"iss":     "kpaforms",
		"user_id": "five",
		"exp":     issuedAt.Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	otherAlg := sign(jwt.MapClaims{
		"iss":     "kpaforms",
		"user_id": 5,
		"exp":     issuedAt.Add(time.Hour).Unix(),
	}, jwt.SigningMethodHS512, []byte(testSecret))

	unsigned := sign(jwt.MapClaims{
		"iss":     "kpaforms",
		"user_id": 5,
		"exp":     issuedAt.Add(time.Hour).Unix(),
	}, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "two segments", token: "abc.def"},
		{name: "signed with another secret", token: foreign},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "missing user_id", token: missingUser},
		{name: "missing exp", token: missingExpiry},
		{name: "user_id of wrong type", token: wrongType},
		{name: "different algorithm", token: otherAlg},
		{name: "alg none", token: unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
			assert.Zero(t, userID)
		})
	}
}

func TestNewJWTService_DefaultTTL(t *testing.T) {
	svc := NewJWTService(testSecret, "kpaforms", 0)
	assert.Equal(t, DefaultAccessTTL, svc.TTL())
}
