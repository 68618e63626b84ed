package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aden91/tidar-web-app/internal/domain"
	"github.com/aden91/tidar-web-app/internal/middleware"
	"github.com/aden91/tidar-web-app/internal/platform/logger"
	"github.com/aden91/tidar-web-app/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"
)

// Prefixes of 500 responses; the underlying error text follows.
const (
	prefixRegister = "Server error while registering: "
	prefixSync     = "Failed to process authentication on the backend: "
	prefixFetch    = "Failed to fetch user data due to a server error: "
	prefixVerify   = "Failed to verify user due to a server error: "
)

type UserHandler struct {
	uc     *usecase.UserUsecase
	logger *logger.Logger
}

func NewUserHandler(uc *usecase.UserUsecase, log *logger.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: log.Named("UserHandler"),
	}
}

type registerRequest struct {
	UID           string `json:"uid"`
	Name          string `json:"name"`
	Birthplace    string `json:"birthplace"`
	Birthdate     string `json:"birthdate"`
	Province      string `json:"province"`
	City          string `json:"city"`
	District      string `json:"district"`
	Subdistrict   string `json:"subdistrict"`
	AddressDetail string `json:"addressDetail"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

type syncRequest struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type verifyRequest struct {
	UID string `json:"uid"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Warn("Failed to decode register request", zap.Error(err))
		respondMessage(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.uc.Register(r.Context(), middleware.IdentityFromContext(r.Context()), usecase.RegisterInput(req))
	switch {
	case err == nil:
		respondMessage(w, r, http.StatusCreated, "Registration succeeded. Your account is awaiting admin verification.")
	case errors.Is(err, domain.ErrForbidden):
		respondMessage(w, r, http.StatusForbidden, "Forbidden: UID mismatch.")
	case errors.Is(err, domain.ErrAlreadyRegistered):
		respondMessage(w, r, http.StatusConflict, "User is already registered.")
	default:
		respondMessage(w, r, http.StatusInternalServerError, prefixRegister+err.Error())
	}
}

func (h *UserHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Warn("Failed to decode sync request", zap.Error(err))
		respondMessage(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	created, err := h.uc.Sync(r.Context(), middleware.IdentityFromContext(r.Context()), usecase.SyncInput(req))
	switch {
	case err == nil && created:
		respondMessage(w, r, http.StatusOK, "Profile created and awaiting verification.")
	case err == nil:
		respondMessage(w, r, http.StatusOK, "Login succeeded, profile updated.")
	case errors.Is(err, domain.ErrForbidden):
		respondMessage(w, r, http.StatusForbidden, "Forbidden: UID mismatch.")
	default:
		respondMessage(w, r, http.StatusInternalServerError, prefixSync+err.Error())
	}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")

	user, err := h.uc.Get(r.Context(), middleware.IdentityFromContext(r.Context()), uid)
	switch {
	case err == nil:
		respondData(w, r, http.StatusOK, user)
	case errors.Is(err, domain.ErrForbidden):
		respondMessage(w, r, http.StatusForbidden, "Forbidden: you can only access your own profile.")
	case errors.Is(err, domain.ErrNotFound):
		respondMessage(w, r, http.StatusNotFound, "User data not found.")
	default:
		respondMessage(w, r, http.StatusInternalServerError, prefixFetch+err.Error())
	}
}

// Verify is mounted without the Auth gate; any caller that can reach it may verify a member.
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.Warn("Failed to decode verify request", zap.Error(err))
		respondMessage(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	err := h.uc.Verify(r.Context(), req.UID)
	switch {
	case err == nil:
		respondMessage(w, r, http.StatusOK, fmt.Sprintf("User with UID %s has been verified.", req.UID))
	case errors.Is(err, domain.ErrInvalidInput):
		respondMessage(w, r, http.StatusBadRequest, "Member UID is required.")
	case errors.Is(err, domain.ErrNotFound):
		respondMessage(w, r, http.StatusNotFound, "User with that UID was not found.")
	default:
		respondMessage(w, r, http.StatusInternalServerError, prefixVerify+err.Error())
	}
}
