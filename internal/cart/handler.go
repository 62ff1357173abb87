package cart

import (
	"bookStore/internal/apperror"
	"bookStore/internal/handlers"
	"bookStore/internal/session"
	"github.com/julienschmidt/httprouter"
	"net/http"
)

const (
	cartUrl     = "/cart"
	addUrl      = "/cart/add"
	removeUrl   = "/cart/remove"
	quantityUrl = "/quantity/update"
)

type handler struct {
	manager  *Manager
	sessions *session.Store
	cookies  session.Cookies
}

func NewHandler(manager *Manager, sessions *session.Store, cookies session.Cookies) handlers.Handler {
	return &handler{manager: manager, sessions: sessions, cookies: cookies}
}

func (h *handler) Register(router *httprouter.Router) {
	router.GET(cartUrl, h.GetCart)
	router.POST(addUrl, h.AddToCart)
	router.POST(removeUrl, h.RemoveFromCart)
	router.POST(quantityUrl, h.UpdateQuantity)
}

func (h *handler) GetCart(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	identity, err := h.sessions.Require(r.Context(), h.cookies.FromRequest(r, r.URL.Query().Get("session_token")))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	items, err := h.manager.Get(r.Context(), identity.UserID)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, Response{Cart: items})
}

func (h *handler) AddToCart(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var request ItemRequest
	if err := handlers.DecodeBody(r, &request); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	identity, err := h.sessions.Require(r.Context(), h.cookies.FromRequest(r, request.SessionToken))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	if request.BookID <= 0 {
		handlers.WriteError(w, r, apperror.InvalidParam(apperror.MissingParamsMessage))
		return
	}

	if err = h.manager.AddOne(r.Context(), identity.UserID, request.BookID); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteText(w, http.StatusOK, "Add to cart successfully")
}

func (h *handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var request ItemRequest
	if err := handlers.DecodeBody(r, &request); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	identity, err := h.sessions.Require(r.Context(), h.cookies.FromRequest(r, request.SessionToken))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	if request.BookID <= 0 {
		handlers.WriteError(w, r, apperror.InvalidParam(apperror.MissingParamsMessage))
		return
	}

	if err = h.manager.Remove(r.Context(), identity.UserID, request.BookID); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteText(w, http.StatusOK, "Remove from cart successfully")
}

func (h *handler) UpdateQuantity(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var request QuantityRequest
	if err := handlers.DecodeBody(r, &request); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	identity, err := h.sessions.Require(r.Context(), h.cookies.FromRequest(r, request.SessionToken))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	if request.BookID <= 0 || request.Quantity == nil {
		handlers.WriteError(w, r, apperror.InvalidParam(apperror.MissingParamsMessage))
		return
	}

	if err = h.manager.SetQuantity(r.Context(), identity.UserID, request.BookID, *request.Quantity); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteText(w, http.StatusOK, "quantity updated successfully")
}
