package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// ErrIdentityNotFound is the error we return when no account matches the
// login identifier
var ErrIdentityNotFound = goerrors.New("user not found", goerrors.CategoryAuth).
	WithTextCode("USER_NOT_FOUND")

// ErrMismatchedHashAndPassword is returned when the password does not match
// the stored hash
var ErrMismatchedHashAndPassword = goerrors.New("incorrect password", goerrors.CategoryAuth).
	WithTextCode("BAD_PASSWORD")

// ErrNoEmptyString rejects empty required secrets
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
	WithTextCode("EMPTY_VALUE")

// ErrEmailTaken is returned when a registration collides with an existing
// account. Both the pre-insert lookup and a storage unique violation map here.
var ErrEmailTaken = goerrors.New("email already registered", goerrors.CategoryConflict).
	WithTextCode("EMAIL_TAKEN")

// ErrUserWriteFailed is returned when storage yields no record after an insert
var ErrUserWriteFailed = goerrors.New("could not persist user record", goerrors.CategoryInternal).
	WithTextCode("WRITE_FAILED")

// ErrTokenExpired is returned for tokens past their expiration claim
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED")

// ErrTokenMalformed covers tokens that fail parsing or signature checks
var ErrTokenMalformed = goerrors.New("token is malformed", goerrors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED")

// ErrUnableToDecodeSession unable to decode claims from a validated token
var ErrUnableToDecodeSession = goerrors.New("unable to decode session", goerrors.CategoryAuth).
	WithTextCode("BAD_SESSION")

// ErrUnableToParseData parse error building a session from claims
var ErrUnableToParseData = goerrors.New("unable to parse data", goerrors.CategoryAuth).
	WithTextCode("BAD_SESSION_DATA")

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for parse and signature failures
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsConflictError reports whether err is a uniqueness conflict
func IsConflictError(err error) bool {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.Category == goerrors.CategoryConflict
	}
	return false
}
