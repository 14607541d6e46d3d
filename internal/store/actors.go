package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/model"
)

const actorColumns = "id, full_name, daily_rate_cents"

// CreateActor inserts a new actor and returns its id.
func (s *Store) CreateActor(ctx context.Context, a model.Actor) (int64, error) {
	rate, err := cents("daily rate", a.DailyRate)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO actors (full_name, daily_rate_cents) VALUES (?, ?)`,
		a.FullName, rate)
	if err != nil {
		return 0, fmt.Errorf("insert actor: %w", err)
	}
	return res.LastInsertId()
}

// UpdateActor overwrites the name and rate of an existing actor.
func (s *Store) UpdateActor(ctx context.Context, a model.Actor) error {
	rate, err := cents("daily rate", a.DailyRate)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE actors SET full_name = ?, daily_rate_cents = ? WHERE id = ?`,
		a.FullName, rate, a.ID)
	if err != nil {
		return fmt.Errorf("update actor: %w", err)
	}
	return rowsAffected(res, "actor", a.ID)
}

// DeleteActor removes an actor that no shooting references.
func (s *Store) DeleteActor(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, "actor", id); err != nil {
			return err
		}
		n, err := countShootings(ctx, tx, "actor", id)
		if err != nil {
			return err
		}
		if n > 0 {
			return &model.ReferentialIntegrityError{Entity: "actor", ID: id, Shootings: n}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM actors WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete actor: %w", err)
		}
		return nil
	})
}

// GetActor returns one actor by id.
func (s *Store) GetActor(ctx context.Context, id int64) (model.Actor, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+actorColumns+` FROM actors WHERE id = ?`, id)
	a, err := scanActor(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Actor{}, model.NotFound("actor", id)
	}
	return a, err
}

// ListActors returns all actors ordered by id.
func (s *Store) ListActors(ctx context.Context) ([]model.Actor, error) {
	return s.queryActors(ctx, `SELECT `+actorColumns+` FROM actors ORDER BY id`)
}

// SearchActors returns actors whose name contains query (ASCII
// case-insensitive), ordered by id.
func (s *Store) SearchActors(ctx context.Context, query string) ([]model.Actor, error) {
	return s.queryActors(ctx,
		`SELECT `+actorColumns+` FROM actors WHERE full_name LIKE ? ESCAPE '\' ORDER BY id`,
		likePattern(query))
}

func (s *Store) queryActors(ctx context.Context, query string, args ...any) ([]model.Actor, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query actors: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var actors []model.Actor
	for rows.Next() {
		a, err := scanActor(rows)
		if err != nil {
			return nil, err
		}
		actors = append(actors, a)
	}
	return actors, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanActor(sc scanner) (model.Actor, error) {
	var a model.Actor
	var rateCents int64
	if err := sc.Scan(&a.ID, &a.FullName, &rateCents); err != nil {
		return model.Actor{}, err
	}
	a.DailyRate = model.FromCents(rateCents)
	return a, nil
}

// likePattern wraps q in % wildcards, escaping LIKE metacharacters.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
