package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no identity could be resolved for the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the identity lacks the role or ownership for an action.
	ErrForbidden = errors.New("forbidden")
	// ErrBandNotFound is returned when a band id does not exist.
	ErrBandNotFound = errors.New("band not found")
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an already registered email.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNothingToChange is returned when a favorites patch carries no additions or removals.
	ErrNothingToChange = errors.New("nothing to change")
	// ErrTooManyTracks is returned when a favorite would exceed the track cap.
	ErrTooManyTracks = errors.New("too many track IDs (max 500)")
	// ErrSelfRoleChange is returned when an admin tries to change their own role.
	ErrSelfRoleChange = errors.New("you cannot change your own role")
	// ErrInvalidRole is returned when a role value is not USER or ADMIN.
	ErrInvalidRole = errors.New("role must be ADMIN or USER")
	// ErrNameEmpty is returned when a profile update carries a blank name.
	ErrNameEmpty = errors.New("name cannot be empty")
	// ErrInvalidRating is returned when a review rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
	// ErrCommentRequired is returned when a review comment is missing.
	ErrCommentRequired = errors.New("comment is required")
	// ErrCommentTooLong is returned when a review comment exceeds 1000 characters.
	ErrCommentTooLong = errors.New("comment is too long (max 1000 chars)")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUnauthenticated:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case ErrInvalidCredentials:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrSelfRoleChange:
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_ROLE_CHANGE")
	case ErrBandNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "BAND_NOT_FOUND")
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case ErrInvalidRole:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case ErrNothingToChange:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOTHING_TO_CHANGE")
	case ErrTooManyTracks:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TOO_MANY_TRACKS")
	case ErrNameEmpty:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NAME_EMPTY")
	case ErrInvalidRating:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	case ErrCommentRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COMMENT_REQUIRED")
	case ErrCommentTooLong:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "COMMENT_TOO_LONG")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
