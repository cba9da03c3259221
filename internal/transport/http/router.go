// Package httptransport is the thin HTTP layer over the voter service. It
// parses and validates requests, authenticates session tokens, and
// translates domain errors to JSON responses; business logic stays in the
// services.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mssola/useragent"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"votegate/internal/token"
	"votegate/internal/voter/models"
	"votegate/internal/voter/service"
	dErrors "votegate/pkg/domain-errors"
)

//go:generate mockgen -source=router.go -destination=mocks/transport_mocks.go -package=mocks

// VoterService is the domain surface the handlers call. Satisfied by
// *service.Service.
type VoterService interface {
	LoginEmailPassword(ctx context.Context, email, password string, meta models.RequestMeta, sid string) (*models.LoginResult, error)
	LoginEmailCode(ctx context.Context, email, code, nickname string, meta models.RequestMeta, sid string) (*models.LoginResult, error)
	LoginPhoneCode(ctx context.Context, phone, code, nickname string, meta models.RequestMeta, sid string) (*models.LoginResult, error)
	FederatedCallback(ctx context.Context, provider service.Provider, identity service.FederatedIdentity, meta models.RequestMeta) (*models.LoginResult, error)

	SendEmailCode(ctx context.Context, email string, meta models.RequestMeta) error
	SendPhoneCode(ctx context.Context, phone string, meta models.RequestMeta) error
	CheckEmailAvailability(ctx context.Context, email string) (bool, error)

	UpdateEmail(ctx context.Context, voterID, email, code string) error
	UpdatePhone(ctx context.Context, voterID, phone, code string) error
	UpdatePassword(ctx context.Context, voterID, oldPassword, newPassword string) error
	UpdateNickname(ctx context.Context, voterID, nickname string) error
	RemoveVoter(ctx context.Context, voterID string, meta models.RequestMeta) error
}

// TokenVerifier validates session tokens on authenticated routes. Satisfied
// by *token.Issuer.
type TokenVerifier interface {
	Verify(tokenString, audience string) (*token.Claims, error)
}

// Handler holds the handler dependencies.
type Handler struct {
	svc    VoterService
	tokens TokenVerifier
	logger *slog.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(svc VoterService, tokens TokenVerifier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, tokens: tokens, logger: logger}
}

// NewRouter wires all public endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/login/password", h.handleLoginPassword)
		r.Post("/login/email-code", h.handleLoginEmailCode)
		r.Post("/login/phone-code", h.handleLoginPhoneCode)
		r.Post("/login/federated/{provider}", h.handleFederatedCallback)

		r.Post("/codes/email", h.handleSendEmailCode)
		r.Post("/codes/phone", h.handleSendPhoneCode)
		r.Get("/email-available", h.handleEmailAvailable)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Post("/user/email", h.handleUpdateEmail)
			r.Post("/user/phone", h.handleUpdatePhone)
			r.Post("/user/password", h.handleUpdatePassword)
			r.Post("/user/nickname", h.handleUpdateNickname)
			r.Delete("/user", h.handleRemoveVoter)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type ctxKey int

const voterIDKey ctxKey = 0

// requireSession authenticates the userspace session token from the
// Authorization header and stores the voter identifier on the context.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || h.tokens == nil {
			writeError(w, dErrors.New(dErrors.CodeAuthorizationFailed, "missing session token"))
			return
		}
		claims, err := h.tokens.Verify(raw, token.AudienceUserspace)
		if err != nil {
			writeError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), voterIDKey, claims.VoteID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func voterID(r *http.Request) string {
	id, _ := r.Context().Value(voterIDKey).(string)
	return id
}

// requestMeta extracts requester forensics: the client IP (RealIP has
// already resolved forwarding headers) and a user-agent fingerprint.
func requestMeta(r *http.Request) models.RequestMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}

	fingerprint := ""
	if raw := r.UserAgent(); raw != "" {
		ua := useragent.New(raw)
		name, version := ua.Browser()
		fingerprint = strings.TrimSpace(name + "/" + version + " " + ua.OS())
	}
	return models.RequestMeta{UserIP: ip, AdditionalFingerprint: fingerprint}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.New(dErrors.CodeUnknown, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorEnvelope is the JSON error shape. SessionID and Nickname are only
// populated for the redirect-to-signup outcome of a federated callback.
type errorEnvelope struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	SessionID string `json:"sid,omitempty"`
	Nickname  string `json:"nickname,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	envelope := errorEnvelope{Error: string(dErrors.CodeUnknown)}
	status := http.StatusInternalServerError

	if dErr, ok := dErrors.As(err); ok {
		envelope.Error = string(dErr.Code)
		envelope.Message = dErr.Message
		envelope.SessionID = dErr.SessionID
		envelope.Nickname = dErr.Nickname
		status = dErrors.ToHTTPStatus(dErr.Code)
	}
	writeJSON(w, status, envelope)
}
