package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/anushahashmi071/CareGroup-sub001/internal/application/services"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/pkg/pagination"
)

// multipartMemory is how much of a form ParseMultipartForm keeps in memory
const multipartMemory = 8 << 20

// NewsService defines the interface for news articles
type NewsService interface {
	List(ctx context.Context, auth entities.AuthContext, q services.NewsQuery) ([]*entities.News, int, error)
	Get(ctx context.Context, auth entities.AuthContext, id int64) (*entities.News, error)
	Create(ctx context.Context, auth entities.AuthContext, input entities.NewsInput, image *entities.Upload) (*entities.News, error)
	Update(ctx context.Context, auth entities.AuthContext, id int64, input entities.NewsInput, image *entities.Upload) (*entities.News, error)
	Delete(ctx context.Context, auth entities.AuthContext, id int64) error
}

// NewsHandler handles news requests. Writes accept JSON or a multipart form
// with an optional "image" file.
type NewsHandler struct {
	service  NewsService
	maxImage int64
}

// NewNewsHandler creates a new news handler accepting images up to maxImage bytes
func NewNewsHandler(service NewsService, maxImage int64) *NewsHandler {
	return &NewsHandler{service: service, maxImage: maxImage}
}

// List handles GET /api/news
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.FromRequest(r)
	news, total, err := h.service.List(r.Context(), caller(r), services.NewsQuery{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pagination.NewResponse(news, total, page))
}

// Get handles GET /api/news/{id}
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	article, err := h.service.Get(r.Context(), caller(r), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, article)
}

// Create handles POST /api/news
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, image, ok := h.readArticle(w, r)
	if !ok {
		return
	}
	article, err := h.service.Create(r.Context(), caller(r), input, image)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, article)
}

// Update handles PUT /api/news/{id}
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	input, image, ok := h.readArticle(w, r)
	if !ok {
		return
	}
	article, err := h.service.Update(r.Context(), caller(r), id, input, image)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, article)
}

// Delete handles DELETE /api/news/{id}
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), caller(r), id); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readArticle decodes the article fields and the optional image
func (h *NewsHandler) readArticle(w http.ResponseWriter, r *http.Request) (entities.NewsInput, *entities.Upload, bool) {
	var input entities.NewsInput

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return input, nil, decodeJSON(w, r, &input)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxImage+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return input, nil, false
		}
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return input, nil, false
	}
	input.Title = r.FormValue("title")
	input.Content = r.FormValue("content")
	input.Status = r.FormValue("status")
	if !validateInput(w, &input) {
		return input, nil, false
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return input, nil, true
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid image upload")
		return input, nil, false
	}
	defer file.Close()

	// Read one byte past the limit so the upload store can reject it by size
	content, err := io.ReadAll(io.LimitReader(file, h.maxImage+1))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read image upload")
		return input, nil, false
	}
	return input, &entities.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  content,
	}, true
}
