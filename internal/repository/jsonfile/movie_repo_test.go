package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/lock"
	"github.com/cinelog/cinelog/internal/repository"
)

func newMovieRepo(t *testing.T) (repository.MovieRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.json")
	return NewMovieRepository(path, lock.NewMemoryLocker(), zerolog.Nop()), path
}

func addMovie(t *testing.T, repo repository.MovieRepository, title, genre string, rating float64) *domain.Movie {
	t.Helper()
	m := domain.NewMovie("alice")
	m.Title = title
	m.Genre = genre
	m.Rating = rating
	require.NoError(t, repo.Create(context.Background(), m))
	return m
}

func TestMovieRepository_CreateAssignsSequentialIDs(t *testing.T) {
	repo, _ := newMovieRepo(t)

	dune := addMovie(t, repo, "Dune", "Sci-Fi", 9)
	arrival := addMovie(t, repo, "Arrival", "Sci-Fi", 7)

	require.Equal(t, int64(1), dune.ID)
	require.Equal(t, int64(2), arrival.ID)
}

func TestMovieRepository_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMovieRepo(t)

	addMovie(t, repo, "Dune", "Sci-Fi", 9)
	second := addMovie(t, repo, "Arrival", "Sci-Fi", 7)

	require.NoError(t, repo.Delete(ctx, second.ID))

	third := addMovie(t, repo, "Solaris", "Sci-Fi", 8)
	require.Equal(t, int64(3), third.ID, "id of a deleted movie must not be handed out again")
}

func TestMovieRepository_CreateRejectsDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMovieRepo(t)

	addMovie(t, repo, "Dune", "Sci-Fi", 9)

	dup := domain.NewMovie("bob")
	dup.Title = "dune" // case-insensitive
	dup.Genre = "Drama"
	dup.Rating = 5
	err := repo.Create(ctx, dup)
	require.ErrorIs(t, err, domain.ErrTitleExists)

	movies, err := repo.List(ctx, repository.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, movies, 1)
}

func TestMovieRepository_GetByIDAndTitle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMovieRepo(t)

	created := addMovie(t, repo, "Dune", "Sci-Fi", 9)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Dune", byID.Title)

	byTitle, err := repo.GetByTitle(ctx, "Dune")
	require.NoError(t, err)
	require.Equal(t, created.ID, byTitle.ID)

	_, err = repo.GetByID(ctx, 99)
	require.ErrorIs(t, err, domain.ErrMovieNotFound)

	// Title lookup is exact; only the duplicate check ignores case.
	_, err = repo.GetByTitle(ctx, "dune")
	require.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestMovieRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMovieRepo(t)

	addMovie(t, repo, "Dune", "Sci-Fi", 9)
	addMovie(t, repo, "Arrival", "Sci-Fi", 7)
	addMovie(t, repo, "Heat", "Crime", 8)

	all, err := repo.List(ctx, repository.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "Dune", all[0].Title, "list preserves insertion order")

	scifi, err := repo.List(ctx, repository.MovieFilter{Genre: "sci-fi"})
	require.NoError(t, err)
	require.Len(t, scifi, 2)

	highRated, err := repo.List(ctx, repository.MovieFilter{MinRating: 8})
	require.NoError(t, err)
	require.Len(t, highRated, 2)

	both, err := repo.List(ctx, repository.MovieFilter{Genre: "Sci-Fi", MinRating: 8})
	require.NoError(t, err)
	require.Len(t, both, 1)
	require.Equal(t, "Dune", both[0].Title)
}

func TestMovieRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMovieRepo(t)

	created := addMovie(t, repo, "Dune", "Sci-Fi", 9)

	created.Rating = 10
	created.Review = "rewatched, even better"
	require.NoError(t, repo.Update(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, float64(10), got.Rating)
	require.Equal(t, "rewatched, even better", got.Review)

	missing := domain.NewMovie("alice")
	missing.ID = 42
	missing.Title = "Ghost"
	require.ErrorIs(t, repo.Update(ctx, missing), domain.ErrMovieNotFound)
}

func TestMovieRepository_DeleteMissingLeavesDocumentUntouched(t *testing.T) {
	ctx := context.Background()
	repo, path := newMovieRepo(t)

	addMovie(t, repo, "Dune", "Sci-Fi", 9)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.ErrorIs(t, repo.Delete(ctx, 99), domain.ErrMovieNotFound)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestMovieRepository_ExistsByTitle(t *testing.T) {
	ctx := context.Background()
	repo, _ := newMovieRepo(t)

	addMovie(t, repo, "Dune", "Sci-Fi", 9)

	exists, err := repo.ExistsByTitle(ctx, "DUNE")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = repo.ExistsByTitle(ctx, "Arrival")
	require.NoError(t, err)
	require.False(t, exists)
}
