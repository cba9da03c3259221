package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesExistingCode(t *testing.T) {
	inner := New(CodeIncorrectPassword, "password mismatch")
	wrapped := Wrap(fmt.Errorf("login: %w", inner), CodeUnknown, "login failed")

	assert.True(t, HasCode(wrapped, CodeIncorrectPassword))
	assert.Equal(t, CodeIncorrectPassword, CodeOf(wrapped))
}

func TestWrapForeignError(t *testing.T) {
	err := Wrap(errors.New("connection refused"), CodeUnknown, "voter lookup failed")
	require.Error(t, err)

	assert.True(t, HasCode(err, CodeUnknown))
	assert.Contains(t, err.Error(), "voter lookup failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeUnknown, "ignored"))
}

func TestRedirectToSignupCarriesSession(t *testing.T) {
	err := NewRedirectToSignup("sid-123", "Ann")

	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeRedirectToSignup, de.Code)
	assert.Equal(t, "sid-123", de.SessionID)
	assert.Equal(t, "Ann", de.Nickname)
}

func TestCodeOfForeignError(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeUserNotFound:            http.StatusNotFound,
		CodeIncorrectPassword:       http.StatusUnauthorized,
		CodeIncorrectVerifyCode:     http.StatusUnauthorized,
		CodeUserAlreadyExists:       http.StatusConflict,
		CodeUserNotVerified:         http.StatusUnauthorized,
		CodeRedirectToSignup:        http.StatusUnauthorized,
		CodeLoginMethodNotSupported: http.StatusNotImplemented,
		CodeTooFrequent:             http.StatusTooManyRequests,
		CodeUnknown:                 http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), string(code))
	}
}
