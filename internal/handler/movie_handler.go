package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/service"
	"github.com/cinelog/cinelog/internal/storage"
)

// MovieHandler handles the movie catalog endpoints.
type MovieHandler struct {
	movieService *service.MovieService
	statsService *service.StatsService
	posters      storage.Backend

	// maxUploadSize bounds the multipart form parsed on create/edit.
	maxUploadSize int64

	logger zerolog.Logger
}

// MovieHandlerConfig contains configuration for the movie handler.
type MovieHandlerConfig struct {
	MovieService  *service.MovieService
	StatsService  *service.StatsService
	Posters       storage.Backend
	MaxUploadSize int64
	Logger        zerolog.Logger
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(cfg MovieHandlerConfig) *MovieHandler {
	return &MovieHandler{
		movieService:  cfg.MovieService,
		statsService:  cfg.StatsService,
		posters:       cfg.Posters,
		maxUploadSize: cfg.MaxUploadSize,
		logger:        cfg.Logger.With().Str("handler", "movie").Logger(),
	}
}

// RegisterRoutes registers catalog routes.
func (h *MovieHandler) RegisterRoutes(r chi.Router) {
	r.Get("/movies", h.handleList)
	r.Post("/movies", RequireUser(h.handleCreate))
	r.Get("/movies/{id}", h.handleGet)
	r.Put("/movies/{id}", RequireUser(h.handleUpdate))
	r.Delete("/movies/{id}", RequireUser(h.handleDelete))

	r.Get("/stats", h.handleStats)
	r.Get("/uploads/{name}", h.handlePoster)
}

// movieForm is the parsed create/edit form.
type movieForm struct {
	input service.MovieInput
}

// parseMovieForm reads the movie fields and the optional poster from a
// multipart (or urlencoded) form.
func (h *MovieHandler) parseMovieForm(r *http.Request) (*movieForm, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return nil, fmt.Errorf("%w: malformed form", domain.ErrMissingField)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: malformed form", domain.ErrMissingField)
		}
	}

	form := &movieForm{
		input: service.MovieInput{
			Title:       strings.TrimSpace(r.PostFormValue("title")),
			Genre:       strings.TrimSpace(r.PostFormValue("genre")),
			Review:      r.PostFormValue("review"),
			Description: r.PostFormValue("description"),
		},
	}

	if raw := r.PostFormValue("rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: rating must be a number", domain.ErrInvalidRating)
		}
		form.input.Rating = rating
	}

	if r.MultipartForm != nil {
		if file, header, err := r.FormFile("poster"); err == nil {
			form.input.Poster = &service.PosterUpload{
				Filename: header.Filename,
				Content:  file,
			}
		}
	}

	return form, nil
}

func (h *MovieHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var input service.ListMoviesInput

	input.Genre = r.URL.Query().Get("genre")
	if raw := r.URL.Query().Get("min_rating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, fmt.Errorf("%w: min_rating must be a number", domain.ErrInvalidRating))
			return
		}
		input.MinRating = minRating
	}

	movies, err := h.movieService.List(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movies)
}

func (h *MovieHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.movieService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseMovieForm(r)
	if err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.movieService.Add(r.Context(), form.input, usernameFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, movie)
}

func (h *MovieHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	form, err := h.parseMovieForm(r)
	if err != nil {
		writeError(w, err)
		return
	}

	movie, err := h.movieService.Update(r.Context(), id, form.input, usernameFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, movie)
}

func (h *MovieHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := movieID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.movieService.Delete(r.Context(), id, usernameFrom(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MovieHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.statsService.CatalogSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handlePoster streams a stored poster image.
func (h *MovieHandler) handlePoster(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, err := h.posters.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrPosterNotFound) || errors.Is(err, storage.ErrEmptyFilename) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "poster not found"})
			return
		}
		h.logger.Error().Err(err).Str("poster", name).Msg("failed to open poster")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, rc)
}

// movieID parses the {id} route parameter. An unparseable id behaves
// like a missing movie.
func movieID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrMovieNotFound
	}
	return id, nil
}
