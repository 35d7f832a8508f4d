package domain

import "errors"

// Client-facing error taxonomy. Every failure crossing the gateway boundary
// normalizes to exactly one of these sentinels, usually wrapped in a
// RemoteError carrying the server's own message.
var (
	// ErrAuth covers missing, invalid or expired tokens and bad credentials.
	ErrAuth = errors.New("authentication failed")
	// ErrValidation covers malformed request payloads, caught locally or by the remote.
	ErrValidation = errors.New("invalid payload")
	// ErrDataShape covers responses that do not match the expected shape.
	ErrDataShape = errors.New("unexpected response shape")
	// ErrInvalidTransition covers rejected order status changes.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrNetwork covers transport-level failures where no response was received.
	ErrNetwork = errors.New("network failure")
	// ErrRemote covers response codes no other sentinel accounts for.
	ErrRemote = errors.New("remote error")
)

// Server-side errors used by the bundled API stub.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrForbidden          = errors.New("access forbidden")
)

// RemoteError pairs a taxonomy sentinel with the verbatim message reported by
// the remote API, so `errors.Is` keeps working while the user sees the
// server's wording.
type RemoteError struct {
	Kind    error
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Unwrap() error { return e.Kind }

// NewRemoteError builds a RemoteError, substituting fallback when the remote
// supplied no message of its own.
func NewRemoteError(kind error, message, fallback string) *RemoteError {
	if message == "" {
		message = fallback
	}
	return &RemoteError{Kind: kind, Message: message}
}
