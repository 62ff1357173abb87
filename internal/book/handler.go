package book

import (
	"bookStore/internal/handlers"
	"github.com/julienschmidt/httprouter"
	"net/http"
)

const (
	booksUrl = "/get-books"
	bookUrl  = "/get-book/:id"
)

type handler struct {
	service *Service
}

func NewHandler(service *Service) handlers.Handler {
	return &handler{service: service}
}

func (h *handler) Register(router *httprouter.Router) {
	router.GET(booksUrl, h.GetBooks)
	router.GET(bookUrl, h.GetBook)
}

func (h *handler) GetBooks(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	query := r.URL.Query()
	books, err := h.service.Search(r.Context(), query.Get("search"), query.Get("type"))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, SearchResponse{Books: books})
}

func (h *handler) GetBook(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	details, err := h.service.Get(r.Context(), params.ByName("id"))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, details)
}
