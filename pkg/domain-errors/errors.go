// Package domainerrors defines the tagged error taxonomy returned by every
// core operation. The transport layer maps codes to responses without
// inspecting error internals; services translate infrastructure sentinels
// into these codes at their boundary.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies a stable, domain-meaningful failure class.
type Code string

const (
	// CodeUnknown wraps any unexpected collaborator failure (store timeout,
	// signing failure). The message is operator diagnostics only and is not
	// stable API surface.
	CodeUnknown Code = "Unknown"

	// CodeUserNotFound means no voter matches the supplied identifying field.
	CodeUserNotFound Code = "UserNotFound"

	// CodeAuthorizationFailed means a caller-supplied token failed verification.
	CodeAuthorizationFailed Code = "AuthorizationFailed"

	// CodeIncorrectPassword covers both a failed password comparison and a
	// missing old password where one is required.
	CodeIncorrectPassword Code = "IncorrectPassword"

	// CodeIncorrectVerifyCode covers missing, expired and mismatched one-time
	// codes. The three cases are deliberately indistinguishable to callers.
	CodeIncorrectVerifyCode Code = "IncorrectVerifyCode"

	// CodeUserAlreadyExists means signup hit an already-claimed email/phone.
	CodeUserAlreadyExists Code = "UserAlreadyExists"

	// CodeUserNotVerified means a vote token was requested for a voter with
	// neither channel verified.
	CodeUserNotVerified Code = "UserNotVerified"

	// CodeLoginMethodNotSupported means password login was attempted on a
	// passwordless (federated-only) account.
	CodeLoginMethodNotSupported Code = "LoginMethodNotSupported"

	// CodeTooFrequent means a code resend was requested before the guard
	// interval elapsed.
	CodeTooFrequent Code = "TooFrequent"

	// CodeRedirectToSignup means a federated callback succeeded but proved no
	// email; the caller must redirect the principal to complete signup
	// carrying the pending session id.
	CodeRedirectToSignup Code = "RedirectToSignup"
)

// Error is the concrete error type carried across the core. RedirectToSignup
// errors additionally populate SessionID and Nickname.
type Error struct {
	Code    Code
	Message string
	Err     error

	SessionID string
	Nickname  string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error. If err is already
// a domain error it is returned unchanged so the original code survives
// multiple boundary crossings.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Code: code, Message: message, Err: err}
}

// NewRedirectToSignup constructs the pending-signup error carrying the login
// session id and, when known, the nickname proven by the federated provider.
func NewRedirectToSignup(sessionID, nickname string) *Error {
	return &Error{
		Code:      CodeRedirectToSignup,
		Message:   "complete signup to continue",
		SessionID: sessionID,
		Nickname:  nickname,
	}
}

// HasCode reports whether err carries the given domain code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the domain code from err, defaulting to CodeUnknown for
// anything that escaped the taxonomy.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeUnknown
}

// As is a convenience wrapper for extracting the concrete *Error.
func As(err error) (*Error, bool) {
	var de *Error
	ok := errors.As(err, &de)
	return de, ok
}
