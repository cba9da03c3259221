package httptransport

import (
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"

	"votegate/internal/voter/service"
	dErrors "votegate/pkg/domain-errors"
)

type loginPasswordRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	SessionID string `json:"sid,omitempty"`
}

func (h *Handler) handleLoginPassword(w http.ResponseWriter, r *http.Request) {
	var req loginPasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !govalidator.IsEmail(req.Email) {
		writeError(w, dErrors.New(dErrors.CodeUserNotFound, "invalid email"))
		return
	}
	if req.Password == "" {
		writeError(w, dErrors.New(dErrors.CodeIncorrectPassword, "password is required"))
		return
	}

	result, err := h.svc.LoginEmailPassword(r.Context(), req.Email, req.Password, requestMeta(r), req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type loginCodeRequest struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Code      string `json:"code"`
	Nickname  string `json:"nickname,omitempty"`
	SessionID string `json:"sid,omitempty"`
}

func (h *Handler) handleLoginEmailCode(w http.ResponseWriter, r *http.Request) {
	var req loginCodeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !govalidator.IsEmail(req.Email) {
		writeError(w, dErrors.New(dErrors.CodeUserNotFound, "invalid email"))
		return
	}
	if !validCode(req.Code) {
		writeError(w, dErrors.New(dErrors.CodeIncorrectVerifyCode, "invalid verification code"))
		return
	}

	result, err := h.svc.LoginEmailCode(r.Context(), req.Email, req.Code, req.Nickname, requestMeta(r), req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleLoginPhoneCode(w http.ResponseWriter, r *http.Request) {
	var req loginCodeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !validPhone(req.Phone) {
		writeError(w, dErrors.New(dErrors.CodeUserNotFound, "invalid phone number"))
		return
	}
	if !validCode(req.Code) {
		writeError(w, dErrors.New(dErrors.CodeIncorrectVerifyCode, "invalid verification code"))
		return
	}

	result, err := h.svc.LoginPhoneCode(r.Context(), req.Phone, req.Code, req.Nickname, requestMeta(r), req.SessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type federatedCallbackRequest struct {
	UID      string `json:"uid"`
	Email    string `json:"email,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

// handleFederatedCallback finishes a third-party login. The provider
// adapter sitting in front of this endpoint has already exchanged the
// provider's authorization code and verified the identity payload.
func (h *Handler) handleFederatedCallback(w http.ResponseWriter, r *http.Request) {
	var req federatedCallbackRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Email != "" && !govalidator.IsEmail(req.Email) {
		writeError(w, dErrors.New(dErrors.CodeAuthorizationFailed, "invalid email"))
		return
	}

	provider := service.Provider(chi.URLParam(r, "provider"))
	result, err := h.svc.FederatedCallback(r.Context(), provider,
		service.FederatedIdentity{UID: req.UID, Email: req.Email, Nickname: req.Nickname}, requestMeta(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type sendCodeRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func (h *Handler) handleSendEmailCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !govalidator.IsEmail(req.Email) {
		writeError(w, dErrors.New(dErrors.CodeUserNotFound, "invalid email"))
		return
	}
	if err := h.svc.SendEmailCode(r.Context(), req.Email, requestMeta(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) handleSendPhoneCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !validPhone(req.Phone) {
		writeError(w, dErrors.New(dErrors.CodeUserNotFound, "invalid phone number"))
		return
	}
	if err := h.svc.SendPhoneCode(r.Context(), req.Phone, requestMeta(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (h *Handler) handleEmailAvailable(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if !govalidator.IsEmail(email) {
		writeError(w, dErrors.New(dErrors.CodeUserNotFound, "invalid email"))
		return
	}
	available, err := h.svc.CheckEmailAvailability(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func validCode(code string) bool {
	return govalidator.StringLength(code, "6", "6") && govalidator.IsNumeric(code)
}

func validPhone(phone string) bool {
	return govalidator.StringLength(phone, "5", "20") && govalidator.IsNumeric(phone)
}
