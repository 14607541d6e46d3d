package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/model"
)

const movieColumns = "id, title, director, budget_cents"

// CreateMovie inserts a new movie and returns its id.
func (s *Store) CreateMovie(ctx context.Context, m model.Movie) (int64, error) {
	budget, err := cents("budget", m.Budget)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO movies (title, director, budget_cents) VALUES (?, ?, ?)`,
		m.Title, nullString(m.Director), budget)
	if err != nil {
		return 0, fmt.Errorf("insert movie: %w", err)
	}
	return res.LastInsertId()
}

// UpdateMovie overwrites an existing movie. A budget below the fees already
// booked against the movie is rejected with *model.BudgetExceededError.
func (s *Store) UpdateMovie(ctx context.Context, m model.Movie) error {
	budget, err := cents("budget", m.Budget)
	if err != nil {
		return err
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, "movie", m.ID); err != nil {
			return err
		}
		spent, err := sumFees(ctx, tx, m.ID, 0)
		if err != nil {
			return err
		}
		if spent > budget {
			return &model.BudgetExceededError{
				MovieID: m.ID,
				Total:   model.FromCents(spent),
				Budget:  model.FromCents(budget),
			}
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE movies SET title = ?, director = ?, budget_cents = ? WHERE id = ?`,
			m.Title, nullString(m.Director), budget, m.ID)
		if err != nil {
			return fmt.Errorf("update movie: %w", err)
		}
		return nil
	})
}

// DeleteMovie removes a movie that no shooting references.
func (s *Store) DeleteMovie(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, "movie", id); err != nil {
			return err
		}
		n, err := countShootings(ctx, tx, "movie", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &model.ReferentialIntegrityError{Entity: "movie", ID: id, Shootings: n}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete movie: %w", err)
		}
		return nil
	})
}

// GetMovie returns one movie by id.
func (s *Store) GetMovie(ctx context.Context, id int64) (model.Movie, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, model.NotFound("movie", id)
	}
	return m, err
}

// ListMovies returns all movies ordered by id.
func (s *Store) ListMovies(ctx context.Context) ([]model.Movie, error) {
	return s.queryMovies(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
}

// SearchMovies returns movies whose title contains query, ordered by id.
func (s *Store) SearchMovies(ctx context.Context, query string) ([]model.Movie, error) {
	return s.queryMovies(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE title LIKE ? ESCAPE '\' ORDER BY id`,
		likePattern(query))
}

func (s *Store) queryMovies(ctx context.Context, query string, args ...any) ([]model.Movie, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var movies []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func scanMovie(sc scanner) (model.Movie, error) {
	var m model.Movie
	var director sql.NullString
	var budgetCents int64
	if err := sc.Scan(&m.ID, &m.Title, &director, &budgetCents); err != nil {
		return model.Movie{}, err
	}
	m.Director = director.String
	m.Budget = model.FromCents(budgetCents)
	return m, nil
}
