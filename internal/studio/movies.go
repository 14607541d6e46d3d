package studio

import (
	"context"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/model"
)

func cleanMovie(m model.Movie) (model.Movie, error) {
	var err error
	if m.Title, err = requireText("title", m.Title); err != nil {
		return m, err
	}
	m.Director = strings.TrimSpace(m.Director)
	if m.Budget, err = requireAmount("budget", m.Budget); err != nil {
		return m, err
	}
	return m, nil
}

// CreateMovie validates and stores a new movie.
func (s *Service) CreateMovie(ctx context.Context, m model.Movie) (Change, error) {
	m, err := cleanMovie(m)
	if err != nil {
		return Change{}, err
	}
	id, err := s.store.CreateMovie(ctx, m)
	if err != nil {
		return Change{}, err
	}
	s.log.Info("movie created", "id", id, "title", m.Title, "budget", m.Budget.StringFixed(2))
	return Change{ID: id, Stale: movieCreatedOrDeleted}, nil
}

// UpdateMovie overwrites the movie with m.ID. A budget below the fees
// already booked is rejected with *model.BudgetExceededError.
func (s *Service) UpdateMovie(ctx context.Context, m model.Movie) (Change, error) {
	if err := requireID("movie id", m.ID); err != nil {
		return Change{}, err
	}
	m, err := cleanMovie(m)
	if err != nil {
		return Change{}, err
	}
	if err := s.store.UpdateMovie(ctx, m); err != nil {
		return Change{}, err
	}
	s.log.Info("movie updated", "id", m.ID, "budget", m.Budget.StringFixed(2))
	return Change{ID: m.ID, Stale: movieUpdated}, nil
}

// DeleteMovie removes a movie that no shooting references.
func (s *Service) DeleteMovie(ctx context.Context, id int64) (Change, error) {
	if err := requireID("movie id", id); err != nil {
		return Change{}, err
	}
	if err := s.store.DeleteMovie(ctx, id); err != nil {
		return Change{}, err
	}
	s.log.Info("movie deleted", "id", id)
	return Change{ID: id, Stale: movieCreatedOrDeleted}, nil
}

// GetMovie returns one movie.
func (s *Service) GetMovie(ctx context.Context, id int64) (model.Movie, error) {
	return s.store.GetMovie(ctx, id)
}

// ListMovies returns all movies ordered by id.
func (s *Service) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return s.store.ListMovies(ctx)
}

// SearchMovies matches a case-insensitive substring of the title.
func (s *Service) SearchMovies(ctx context.Context, query string) ([]model.Movie, error) {
	if query == "" {
		return s.store.ListMovies(ctx)
	}
	return s.store.SearchMovies(ctx, query)
}
