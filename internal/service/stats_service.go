package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/repository"
)

// StatsService computes aggregate statistics over the catalog.
type StatsService struct {
	movieRepo repository.MovieRepository
	logger    zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(movieRepo repository.MovieRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{
		movieRepo: movieRepo,
		logger:    logger.With().Str("service", "stats").Logger(),
	}
}

// CatalogSummary loads the full catalog and summarizes it.
func (s *StatsService) CatalogSummary(ctx context.Context) (*domain.Summary, error) {
	movies, err := s.movieRepo.List(ctx, repository.MovieFilter{})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalog for summary")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	summary := Summarize(movies)
	return &summary, nil
}

// Summarize computes the catalog summary. Pure function over the given
// list; list order decides every tie.
func Summarize(movies []*domain.Movie) domain.Summary {
	summary := domain.Summary{
		AverageByGenre:   make(map[string]float64),
		MostWatchedGenre: domain.NoGenre,
	}

	if len(movies) == 0 {
		return summary
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	genreOrder := make([]string, 0, len(movies))

	for _, m := range movies {
		if counts[m.Genre] == 0 {
			genreOrder = append(genreOrder, m.Genre)
		}
		counts[m.Genre]++
		sums[m.Genre] += m.Rating

		if summary.TopRated == nil || m.Rating > summary.TopRated.Rating {
			summary.TopRated = m
		}
	}

	for _, genre := range genreOrder {
		summary.AverageByGenre[genre] = round2(sums[genre] / float64(counts[genre]))
	}

	// Largest count wins; on ties, the genre that appeared first.
	bestCount := 0
	for _, genre := range genreOrder {
		if counts[genre] > bestCount {
			bestCount = counts[genre]
			summary.MostWatchedGenre = genre
		}
	}

	return summary
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
