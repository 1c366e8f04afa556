package book

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"bookCatalog/internal/auth"
	"bookCatalog/internal/handlers"
	"bookCatalog/package/logger"
)

const (
	createBookUrl = "/api/books/create-book"
	booksUrl      = "/api/books/"
	bookIdUrl     = "/api/books/book/:id"
)

type handler struct {
	service *Service
	guard   *auth.Guard
}

func NewHandler(service *Service, guard *auth.Guard) handlers.Handler {
	return &handler{service: service, guard: guard}
}

func (h *handler) Register(router *httprouter.Router) {
	router.POST(createBookUrl, h.guard.Protect(h.CreateBook))
	router.GET(booksUrl, h.guard.Protect(h.GetAllBooks))
	router.GET(bookIdUrl, h.guard.Protect(h.GetBookById))
	router.PATCH(bookIdUrl, h.guard.Protect(h.UpdateBook))
	router.DELETE(bookIdUrl, h.guard.Protect(h.DeleteBook))
}

func (h *handler) CreateBook(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	var req CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), *id, req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{"title": b.Title, "user": id.Email}).Info("Book created")
	handlers.WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Book created successfully",
		Book:    b,
	})
}

func (h *handler) GetAllBooks(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	values := r.URL.Query()
	q := Query{
		Genre:         values.Get("genre"),
		Author:        values.Get("author"),
		PublishedYear: values.Get("publishedYear"),
		Page:          values.Get("page"),
		Limit:         values.Get("limit"),
	}

	page, err := h.service.List(r.Context(), *id, q)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"user":          id.Email,
		"genre":         q.Genre,
		"author":        q.Author,
		"publishedYear": q.PublishedYear,
		"page":          page.Page,
		"limit":         page.Limit,
	}).Info("Books fetched")
	handlers.WriteJSON(w, http.StatusOK, page)
}

func (h *handler) GetBookById(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	b, err := h.service.Get(r.Context(), *id, params.ByName("id"))
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, Response{Success: true, Book: b})
}

func (h *handler) UpdateBook(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	var req UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	bookID := params.ByName("id")
	b, err := h.service.Update(r.Context(), *id, bookID, req)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{"book_id": bookID, "user": id.Email}).Info("Book updated")
	handlers.WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Book updated successfully",
		Book:    b,
	})
}

func (h *handler) DeleteBook(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	id, err := auth.RequireIdentity(r.Context())
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	bookID := params.ByName("id")
	if err := h.service.Delete(r.Context(), *id, bookID); err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{"book_id": bookID, "user": id.Email}).Info("Book deleted")
	handlers.WriteJSON(w, http.StatusOK, handlers.MessageResponse{
		Success: true,
		Message: "Book deleted successfully",
	})
}
