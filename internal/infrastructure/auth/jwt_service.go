package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/you/kpaforms/domain"
)

// DefaultAccessTTL is used when no access token lifetime is configured
const DefaultAccessTTL = 30 * time.Minute

// accessClaims is the payload of an access token
type accessClaims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenService
type JWTServiceImpl struct {
	secretKey      []byte
	issuer         string
	accessTokenTTL time.Duration
	now            func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, accessTTL time.Duration) domain.TokenService {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	return &JWTServiceImpl{
		secretKey:      []byte(secretKey),
		issuer:         issuer,
		accessTokenTTL: accessTTL,
		now:            time.Now,
	}
}

// TTL implements domain.TokenService
func (j *JWTServiceImpl) TTL() time.Duration {
	return j.accessTokenTTL
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(userID uint, issuedAt time.Time) (string, error) {
	claims := accessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.accessTokenTTL)),
			ID:        uuid.NewString(), // Unique JWT ID ensures token uniqueness
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Verify implements domain.TokenService. Every failure is reported as domain.ErrTokenInvalid.
func (j *JWTServiceImpl) Verify(tokenString string) (uint, error) {
	if tokenString == "" {
		return 0, domain.ErrTokenInvalid
	}

	// Time claims are checked below; the library rejects a token at exactly exp
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return 0, domain.ErrTokenInvalid
	}

	if claims.ExpiresAt == nil || j.now().After(claims.ExpiresAt.Time) {
		return 0, domain.ErrTokenInvalid
	}
	if j.issuer != "" && claims.Issuer != j.issuer {
		return 0, domain.ErrTokenInvalid
	}

	if claims.UserID == 0 {
		return 0, domain.ErrTokenInvalid
	}

	return claims.UserID, nil
}
