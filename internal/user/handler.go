package user

import (
	"bookStore/internal/handlers"
	"bookStore/internal/session"
	"bookStore/package/logger"
	"github.com/julienschmidt/httprouter"
	"net/http"
)

const (
	RegisterUrl = "/register"
	LoginUrl    = "/login"
	LogoutUrl   = "/logout"
	userInfoUrl = "/user-info"
)

type handler struct {
	service *Service
	cookies session.Cookies
}

func NewHandler(service *Service, cookies session.Cookies) handlers.Handler {
	return &handler{service: service, cookies: cookies}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(RegisterUrl, h.RegisterUser)
	router.POST(LoginUrl, h.LoginUser)
	router.POST(LogoutUrl, h.LogoutUser)
	router.GET(userInfoUrl, h.GetUserInfo)
}

func (h *handler) RegisterUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var requestUser User
	if err := handlers.DecodeBody(r, &requestUser); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	created, err := h.service.Register(r.Context(), requestUser)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.Info("Registered user ", created.ID)
	handlers.WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) LoginUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var loginRequest LoginRequest
	if err := handlers.DecodeBody(r, &loginRequest); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	token, err := h.service.Login(r.Context(), loginRequest)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	h.cookies.Set(w, token)
	handlers.WriteText(w, http.StatusOK, "log in successfully: "+NormalizeEmail(loginRequest.Email))
}

func (h *handler) LogoutUser(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	if err := h.service.Logout(r.Context(), h.cookies.Token(r)); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	h.cookies.Clear(w)
	handlers.WriteText(w, http.StatusOK, "Successfully logged out.")
}

func (h *handler) GetUserInfo(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	identity, err := h.service.Identify(r.Context(), h.cookies.Token(r))
	if err != nil {
		// an unreachable session store reads as anonymous
		logger.Log.WithError(err).Warn("Session lookup failed")
	}
	if identity == nil {
		handlers.WriteJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
		return
	}
	handlers.WriteJSON(w, http.StatusOK, identity)
}
