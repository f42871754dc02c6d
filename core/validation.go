package core

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
)

const MimeTypeJSON = "application/json"

// Username rules: 2 to 20 characters, letters, digits and underscore only.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{2,20}$`)

// PasswordMinLength is the minimum accepted password length.
const PasswordMinLength = 6

// ValidateUsername checks a username against the allowed pattern.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return errors.New("username must be 2-20 characters of letters, digits or underscore")
	}
	return nil
}

// Validator defines an interface for request validation operations
type Validator interface {
	// ContentType checks if the request's Content-Type matches the allowed type
	ContentType(r *http.Request, allowedType string) (jsonResponse, error)
}

// DefaultValidator implements the Validator interface
type DefaultValidator struct{}

// NewValidator creates a new DefaultValidator instance
func NewValidator() Validator {
	return &DefaultValidator{}
}

// ContentType checks if the request's Content-Type matches the allowed type.
// Uses http.StatusUnsupportedMediaType (415) for invalid content types.
func (v *DefaultValidator) ContentType(r *http.Request, allowedType string) (jsonResponse, error) {
	errInvalidType := errors.New("invalid content type")
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return errorInvalidContentType, errInvalidType
	}

	// Content-Type may carry parameters, e.g. "application/json; charset=utf-8"
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	if mediaType != allowedType {
		return errorInvalidContentType, errInvalidType
	}

	return jsonResponse{}, nil
}
