package domainerrors

import "net/http"

// ToHTTPStatus maps a domain code to the transport status the boundary layer
// should return. Kept beside the taxonomy so the mapping and the codes evolve
// together.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUserNotFound:
		return http.StatusNotFound
	case CodeAuthorizationFailed,
		CodeIncorrectPassword,
		CodeIncorrectVerifyCode,
		CodeUserNotVerified,
		CodeRedirectToSignup:
		return http.StatusUnauthorized
	case CodeUserAlreadyExists:
		return http.StatusConflict
	case CodeLoginMethodNotSupported:
		return http.StatusNotImplemented
	case CodeTooFrequent:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
