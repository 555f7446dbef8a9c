package jsonfile

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/lock"
	"github.com/cinelog/cinelog/internal/repository"
)

// movieRepository implements repository.MovieRepository over a JSON file.
type movieRepository struct {
	store *Store[domain.Movie]
}

// NewMovieRepository creates a movie repository backed by the document at path.
func NewMovieRepository(path string, locker lock.Locker, logger zerolog.Logger) repository.MovieRepository {
	return &movieRepository{
		store: NewStore[domain.Movie](path, locker, logger),
	}
}

// nextID assigns max(existing ids)+1, or 1 for an empty catalog.
// IDs are never reused, so they are not contiguous after deletions.
func nextID(movies []domain.Movie) int64 {
	var max int64
	for i := range movies {
		if movies[i].ID > max {
			max = movies[i].ID
		}
	}
	return max + 1
}

// Create assigns the next ID and appends the movie.
// The duplicate-title check runs inside the locked update.
func (r *movieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	return r.store.Update(ctx, func(movies []domain.Movie) ([]domain.Movie, error) {
		for i := range movies {
			if movies[i].TitleEquals(movie.Title) {
				return nil, domain.ErrTitleExists
			}
		}
		movie.ID = nextID(movies)
		return append(movies, *movie), nil
	})
}

// GetByID retrieves a movie by ID.
func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	movies, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range movies {
		if movies[i].ID == id {
			m := movies[i]
			return &m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

// GetByTitle retrieves the first movie with an exactly matching title.
func (r *movieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	movies, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range movies {
		if movies[i].Title == title {
			m := movies[i]
			return &m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

// List returns movies in document order, narrowed by the filter.
func (r *movieRepository) List(ctx context.Context, filter repository.MovieFilter) ([]*domain.Movie, error) {
	movies, err := r.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Movie, 0, len(movies))
	for i := range movies {
		if filter.Genre != "" && !strings.EqualFold(movies[i].Genre, filter.Genre) {
			continue
		}
		if filter.MinRating > 0 && movies[i].Rating < filter.MinRating {
			continue
		}
		m := movies[i]
		out = append(out, &m)
	}
	return out, nil
}

// Update overwrites the stored movie with the same ID.
func (r *movieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	return r.store.Update(ctx, func(movies []domain.Movie) ([]domain.Movie, error) {
		for i := range movies {
			if movies[i].ID == movie.ID {
				movies[i] = *movie
				return movies, nil
			}
		}
		return nil, domain.ErrMovieNotFound
	})
}

// Delete removes the movie with the given ID.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Update(ctx, func(movies []domain.Movie) ([]domain.Movie, error) {
		for i := range movies {
			if movies[i].ID == id {
				return append(movies[:i], movies[i+1:]...), nil
			}
		}
		return nil, domain.ErrMovieNotFound
	})
}

// ExistsByTitle checks for a title match, ignoring case.
func (r *movieRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	movies, err := r.store.Load(ctx)
	if err != nil {
		return false, err
	}

	for i := range movies {
		if movies[i].TitleEquals(title) {
			return true, nil
		}
	}
	return false, nil
}

// Ensure movieRepository implements repository.MovieRepository.
var _ repository.MovieRepository = (*movieRepository)(nil)
