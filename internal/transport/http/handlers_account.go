package httptransport

import (
	"net/http"

	"github.com/asaskevich/govalidator"

	dErrors "votegate/pkg/domain-errors"
)

type updateContactRequest struct {
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Code  string `json:"code"`
}

func (h *Handler) handleUpdateEmail(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !govalidator.IsEmail(req.Email) || !validCode(req.Code) {
		writeError(w, dErrors.New(dErrors.CodeIncorrectVerifyCode, "invalid email or code"))
		return
	}
	if err := h.svc.UpdateEmail(r.Context(), voterID(r), req.Email, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleUpdatePhone(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !validPhone(req.Phone) || !validCode(req.Code) {
		writeError(w, dErrors.New(dErrors.CodeIncorrectVerifyCode, "invalid phone or code"))
		return
	}
	if err := h.svc.UpdatePhone(r.Context(), voterID(r), req.Phone, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type updatePasswordRequest struct {
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !govalidator.StringLength(req.NewPassword, "8", "128") {
		writeError(w, dErrors.New(dErrors.CodeIncorrectPassword, "new password must be 8 to 128 characters"))
		return
	}
	if err := h.svc.UpdatePassword(r.Context(), voterID(r), req.OldPassword, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

type updateNicknameRequest struct {
	Nickname string `json:"nickname"`
}

func (h *Handler) handleUpdateNickname(w http.ResponseWriter, r *http.Request) {
	var req updateNicknameRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !govalidator.StringLength(req.Nickname, "1", "64") {
		writeError(w, dErrors.New(dErrors.CodeUnknown, "nickname must be 1 to 64 characters"))
		return
	}
	if err := h.svc.UpdateNickname(r.Context(), voterID(r), req.Nickname); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) handleRemoveVoter(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveVoter(r.Context(), voterID(r), requestMeta(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
