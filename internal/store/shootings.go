package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/model"
)

const shootingRowSelect = `SELECT s.id, s.actor_id, s.movie_id, s.shot_on, s.scene, s.fee_cents,
       a.full_name, m.title
  FROM shootings s
  JOIN actors a ON a.id = s.actor_id
  JOIN movies m ON m.id = s.movie_id`

// CreateShooting inserts a shooting after the budget guard accepts its fee.
// The guard and the insert share one transaction.
func (s *Store) CreateShooting(ctx context.Context, sh model.Shooting) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, "actor", sh.ActorID); err != nil {
			return err
		}
		check, err := checkFee(ctx, tx, sh.MovieID, sh.Fee, 0)
		if err != nil {
			return err
		}
		if err := check.Err(); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO shootings (actor_id, movie_id, shot_on, scene, fee_cents) VALUES (?, ?, ?, ?, ?)`,
			sh.ActorID, sh.MovieID, model.FormatDate(sh.Date), nullString(sh.Scene), model.ToCents(sh.Fee))
		if err != nil {
			return fmt.Errorf("insert shooting: %w", err)
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateShooting overwrites a shooting after re-running the budget guard with
// the shooting's own previous fee excluded.
func (s *Store) UpdateShooting(ctx context.Context, sh model.Shooting) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireRow(ctx, tx, "shooting", sh.ID); err != nil {
			return err
		}
		if err := requireRow(ctx, tx, "actor", sh.ActorID); err != nil {
			return err
		}
		check, err := checkFee(ctx, tx, sh.MovieID, sh.Fee, sh.ID)
		if err != nil {
			return err
		}
		if err := check.Err(); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE shootings SET actor_id = ?, movie_id = ?, shot_on = ?, scene = ?, fee_cents = ? WHERE id = ?`,
			sh.ActorID, sh.MovieID, model.FormatDate(sh.Date), nullString(sh.Scene), model.ToCents(sh.Fee), sh.ID)
		if err != nil {
			return fmt.Errorf("update shooting: %w", err)
		}
		return nil
	})
}

// DeleteShooting removes a shooting. Nothing depends on shootings.
func (s *Store) DeleteShooting(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM shootings WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shooting: %w", err)
	}
	return rowsAffected(res, "shooting", id)
}

// GetShooting returns one shooting joined with actor name and movie title.
func (s *Store) GetShooting(ctx context.Context, id int64) (model.ShootingRow, error) {
	row := s.db.QueryRowContext(ctx, shootingRowSelect+` WHERE s.id = ?`, id)
	r, err := scanShootingRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ShootingRow{}, model.NotFound("shooting", id)
	}
	return r, err
}

// ListShootings returns every shooting, newest date first.
func (s *Store) ListShootings(ctx context.Context) ([]model.ShootingRow, error) {
	return s.queryShootingRows(ctx, shootingRowSelect+` ORDER BY s.shot_on DESC, s.id DESC`)
}

func (s *Store) queryShootingRows(ctx context.Context, query string, args ...any) ([]model.ShootingRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query shootings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ShootingRow
	for rows.Next() {
		r, err := scanShootingRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanShootingRow(sc scanner) (model.ShootingRow, error) {
	var r model.ShootingRow
	var shotOn string
	var scene sql.NullString
	var feeCents int64
	err := sc.Scan(&r.ID, &r.ActorID, &r.MovieID, &shotOn, &scene, &feeCents, &r.ActorName, &r.MovieTitle)
	if err != nil {
		return model.ShootingRow{}, err
	}
	r.Date, err = model.ParseDate(shotOn)
	if err != nil {
		return model.ShootingRow{}, fmt.Errorf("shooting %d has malformed date %q: %w", r.ID, shotOn, err)
	}
	r.Scene = scene.String
	r.Fee = model.FromCents(feeCents)
	return r, nil
}
