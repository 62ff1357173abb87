package review

import (
	"bookStore/internal/handlers"
	"bookStore/internal/session"
	"github.com/julienschmidt/httprouter"
	"net/http"
)

const (
	addUrl  = "/add-review"
	listUrl = "/get-reviews/:id"
)

type handler struct {
	service  *Service
	sessions *session.Store
	cookies  session.Cookies
}

func NewHandler(service *Service, sessions *session.Store, cookies session.Cookies) handlers.Handler {
	return &handler{service: service, sessions: sessions, cookies: cookies}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(addUrl, h.AddReview)
	router.GET(listUrl, h.GetReviews)
}

func (h *handler) AddReview(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var request AddRequest
	if err := handlers.DecodeBody(r, &request); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	author, err := h.sessions.Require(r.Context(), h.cookies.Token(r))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	created, err := h.service.Add(r.Context(), author, request)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, created)
}

func (h *handler) GetReviews(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	reviews, err := h.service.List(r.Context(), params.ByName("id"))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, reviews)
}
