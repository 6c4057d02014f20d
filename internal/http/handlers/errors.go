package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/you/kpaforms/domain"
)

// Error codes returned in the "code" field of error bodies
const (
	CodeValidation      = "validation_error"
	CodeBadRequest      = "bad_request"
	CodeConflict        = "conflict"
	CodeUnauthenticated = "unauthenticated"
	CodeUnauthorized    = "unauthorized"
	CodeNotFound        = "not_found"
	CodeTooManyAttempts = "too_many_attempts"
	CodeInternal        = "internal_error"
)

// RespondError maps a service error onto its HTTP status and error body.
// Unknown errors are logged and reported as a generic 500.
func RespondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"code":   CodeValidation,
			"fields": verr.Fields,
		})
		return
	}

	var throttled *domain.LoginThrottledError
	switch {
	case errors.As(err, &throttled):
		seconds := int64(math.Ceil(throttled.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		c.Header("Retry-After", strconv.FormatInt(seconds, 10))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed login attempts", "code": CodeTooManyAttempts})
	case errors.Is(err, domain.ErrTooManyLoginAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many failed login attempts", "code": CodeTooManyAttempts})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists", "code": CodeConflict})
	case errors.Is(err, domain.ErrUnauthenticated):
		RespondUnauthenticated(c)
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid phone number or password", "code": CodeUnauthorized})
	case errors.Is(err, domain.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive", "code": CodeUnauthorized})
	case errors.Is(err, domain.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Form submission not found", "code": CodeNotFound})
	default:
		log.Printf("REQUEST_FAILED: method=%s path=%s error=%v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": CodeInternal})
	}
}

// RespondUnauthenticated writes the 401 challenge used for missing or bad bearer tokens
func RespondUnauthenticated(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials", "code": CodeUnauthenticated})
}

// respondBindError reports a request body that could not be decoded.
// A JSON type mismatch names the offending field; anything else is a 400.
func respondBindError(c *gin.Context, err error) {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		RespondError(c, domain.NewValidationError(typeErr.Field, "invalid type: got JSON "+typeErr.Value))
		return
	}
	if errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required", "code": CodeBadRequest})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON body", "code": CodeBadRequest})
}
