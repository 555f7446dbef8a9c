package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/repository"
	"github.com/cinelog/cinelog/internal/storage"
)

// MovieService handles the movie catalog: listing, lookups, and the
// owner-guarded mutations.
type MovieService struct {
	movieRepo repository.MovieRepository
	posters   storage.Backend
	logger    zerolog.Logger
}

// NewMovieService creates a new MovieService.
func NewMovieService(movieRepo repository.MovieRepository, posters storage.Backend, logger zerolog.Logger) *MovieService {
	return &MovieService{
		movieRepo: movieRepo,
		posters:   posters,
		logger:    logger.With().Str("service", "movie").Logger(),
	}
}

// PosterUpload is an uploaded poster image. Filename is the client's
// original name; it is checked against the allowed extensions and
// sanitized before storage.
type PosterUpload struct {
	Filename string
	Content  io.Reader
}

// MovieInput contains the writable movie fields shared by add and edit.
type MovieInput struct {
	Title       string
	Genre       string
	Rating      float64
	Review      string
	Description string

	// Poster is optional. On edit, nil (or a disallowed extension)
	// keeps the existing image.
	Poster *PosterUpload
}

// ListMoviesInput narrows a catalog listing.
type ListMoviesInput struct {
	Genre     string
	MinRating float64
}

// validate checks the required fields and the rating range.
func (in MovieInput) validate() error {
	if in.Title == "" {
		return fmt.Errorf("%w: title", domain.ErrMissingField)
	}
	if in.Genre == "" {
		return fmt.Errorf("%w: genre", domain.ErrMissingField)
	}
	return domain.ValidateRating(in.Rating)
}

// List returns the catalog in insertion order, narrowed by the input.
func (s *MovieService) List(ctx context.Context, input ListMoviesInput) ([]*domain.Movie, error) {
	movies, err := s.movieRepo.List(ctx, repository.MovieFilter{
		Genre:     input.Genre,
		MinRating: input.MinRating,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list movies")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return movies, nil
}

// Get retrieves a movie by ID.
func (s *MovieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	movie, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to get movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return movie, nil
}

// GetByTitle retrieves a movie by exact title.
func (s *MovieService) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	movie, err := s.movieRepo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("title", title).Msg("failed to get movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return movie, nil
}

// Add creates a catalog entry owned by actingUser.
func (s *MovieService) Add(ctx context.Context, input MovieInput, actingUser string) (*domain.Movie, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	movie := domain.NewMovie(actingUser)
	movie.Title = input.Title
	movie.Genre = input.Genre
	movie.Rating = input.Rating
	movie.Review = input.Review
	movie.Description = input.Description

	poster, err := s.storePoster(ctx, input.Poster)
	if err != nil {
		return nil, err
	}
	movie.Poster = poster

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		if errors.Is(err, domain.ErrTitleExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("movie_id", movie.ID).
		Str("title", movie.Title).
		Str("owner", movie.Owner).
		Msg("movie added")

	return movie, nil
}

// Update overwrites the writable fields of a movie. Only the owner may
// update; the poster is replaced only when a new valid image is supplied.
func (s *MovieService) Update(ctx context.Context, id int64, input MovieInput, actingUser string) (*domain.Movie, error) {
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !movie.IsOwnedBy(actingUser) {
		s.logger.Warn().
			Int64("movie_id", id).
			Str("owner", movie.Owner).
			Str("acting_user", actingUser).
			Msg("update rejected: not the owner")
		return nil, domain.ErrNotOwner
	}

	if err := input.validate(); err != nil {
		return nil, err
	}

	movie.Title = input.Title
	movie.Genre = input.Genre
	movie.Rating = input.Rating
	movie.Review = input.Review
	movie.Description = input.Description
	movie.UpdatedAt = time.Now().UTC()

	if poster, err := s.storePoster(ctx, input.Poster); err != nil {
		return nil, err
	} else if poster != "" {
		movie.Poster = poster
	}

	if err := s.movieRepo.Update(ctx, movie); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to update movie")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("movie_id", id).Str("title", movie.Title).Msg("movie updated")
	return movie, nil
}

// Delete removes a movie. Only the owner may delete. The poster file is
// intentionally left in storage; uploads are never cleaned up.
func (s *MovieService) Delete(ctx context.Context, id int64, actingUser string) error {
	movie, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if !movie.IsOwnedBy(actingUser) {
		s.logger.Warn().
			Int64("movie_id", id).
			Str("owner", movie.Owner).
			Str("acting_user", actingUser).
			Msg("delete rejected: not the owner")
		return domain.ErrNotOwner
	}

	if err := s.movieRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to delete movie")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Int64("movie_id", id).Str("title", movie.Title).Msg("movie deleted")
	return nil
}

// storePoster persists an uploaded image and returns its stored name.
// A nil upload, a disallowed extension, or a name that sanitizes to
// nothing all return "" without error: "no image provided".
func (s *MovieService) storePoster(ctx context.Context, upload *PosterUpload) (string, error) {
	if upload == nil {
		return "", nil
	}
	if !storage.AllowedExtension(upload.Filename) {
		s.logger.Debug().Str("filename", upload.Filename).Msg("poster extension not allowed, ignoring upload")
		return "", nil
	}

	name := storage.SanitizeFilename(upload.Filename)
	if name == "" {
		return "", nil
	}

	if err := s.posters.Store(ctx, name, upload.Content); err != nil {
		s.logger.Error().Err(err).Str("poster", name).Msg("failed to store poster")
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return name, nil
}
