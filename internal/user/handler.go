package user

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"bookCatalog/internal/auth"
	"bookCatalog/internal/handlers"
	"bookCatalog/package/logger"
)

const (
	registerUrl = "/api/user/register"
	loginUrl    = "/api/user/login"
	meUrl       = "/api/user/me"
)

type handler struct {
	service *Service
	guard   *auth.Guard
}

func NewHandler(service *Service, guard *auth.Guard) handlers.Handler {
	return &handler{service: service, guard: guard}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(registerUrl, h.RegisterUser)
	router.POST(loginUrl, h.LoginUser)
	router.GET(meUrl, h.guard.Protect(h.AuthenticatedUser))
}

func (h *handler) RegisterUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	u, err := h.service.Register(r.Context(), req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.WithField("user_id", u.ID).Info("User is created")
	handlers.WriteJSON(w, http.StatusCreated, handlers.MessageResponse{
		Success: true,
		Message: "User is created",
	})
}

func (h *handler) LoginUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	u, token, err := h.service.Login(r.Context(), req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.WithField("user_id", u.ID).Info("User logged in")
	handlers.WriteJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		User:    u.Profile(),
		Token:   token,
	})
}

type meResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	User    Profile `json:"user"`
}

func (h *handler) AuthenticatedUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	u, err := h.service.Me(r.Context(), *id)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, meResponse{
		Success: true,
		Message: "User Found",
		User:    u.Profile(),
	})
}
