package order

import (
	"bookStore/internal/handlers"
	"bookStore/internal/session"
	"github.com/julienschmidt/httprouter"
	"net/http"
)

const (
	placeUrl   = "/order/placed"
	historyUrl = "/order-history"
)

type handler struct {
	workflow *Workflow
	sessions *session.Store
	cookies  session.Cookies
}

func NewHandler(workflow *Workflow, sessions *session.Store, cookies session.Cookies) handlers.Handler {
	return &handler{workflow: workflow, sessions: sessions, cookies: cookies}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(placeUrl, h.PlaceOrder)
	router.GET(historyUrl, h.GetOrderHistory)
}

func (h *handler) PlaceOrder(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	var request PlaceRequest
	if err := handlers.DecodeBody(r, &request); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	identity, err := h.sessions.Require(r.Context(), h.cookies.FromRequest(r, request.SessionToken))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	placement, err := h.workflow.Place(r.Context(), identity.UserID, request)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, PlaceResponse{ConfirmationNumber: placement.Shipment.TrackingNumber})
}

func (h *handler) GetOrderHistory(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	identity, err := h.sessions.Require(r.Context(), h.cookies.FromRequest(r, r.URL.Query().Get("session_token")))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	orders, err := h.workflow.History(r.Context(), identity.UserID)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, HistoryResponse{Orders: orders})
}
