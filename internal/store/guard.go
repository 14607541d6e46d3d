package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/filmdesk/internal/model"
)

// Fixed per-entity statements; entity names never come from user input.
var (
	existsQuery = map[string]string{
		"actor":    `SELECT 1 FROM actors WHERE id = ?`,
		"movie":    `SELECT 1 FROM movies WHERE id = ?`,
		"shooting": `SELECT 1 FROM shootings WHERE id = ?`,
	}
	referenceQuery = map[string]string{
		"actor": `SELECT COUNT(*) FROM shootings WHERE actor_id = ?`,
		"movie": `SELECT COUNT(*) FROM shootings WHERE movie_id = ?`,
	}
)

// CheckFee evaluates the budget guard for a proposed fee on movieID.
// excludeID, when non-zero, drops that shooting's current fee from the
// running total so an update does not count its old value twice.
func (s *Store) CheckFee(ctx context.Context, movieID int64, fee decimal.Decimal, excludeID int64) (model.FeeCheck, error) {
	return checkFee(ctx, s.db, movieID, fee, excludeID)
}

func checkFee(ctx context.Context, q queryer, movieID int64, fee decimal.Decimal, excludeID int64) (model.FeeCheck, error) {
	feeCents, err := cents("fee", fee)
	if err != nil {
		return model.FeeCheck{}, err
	}

	var budget int64
	err = q.QueryRowContext(ctx, `SELECT budget_cents FROM movies WHERE id = ?`, movieID).Scan(&budget)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FeeCheck{}, model.NotFound("movie", movieID)
	}
	if err != nil {
		return model.FeeCheck{}, fmt.Errorf("read movie budget: %w", err)
	}

	spent, err := sumFees(ctx, q, movieID, excludeID)
	if err != nil {
		return model.FeeCheck{}, err
	}

	total := spent + feeCents
	return model.FeeCheck{
		MovieID: movieID,
		Total:   model.FromCents(total),
		Budget:  model.FromCents(budget),
		OK:      total <= budget,
	}, nil
}

// sumFees totals the fees booked against movieID, skipping excludeID.
// Ids start at 1, so excludeID 0 excludes nothing.
func sumFees(ctx context.Context, q queryer, movieID, excludeID int64) (int64, error) {
	var total int64
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(fee_cents), 0) FROM shootings WHERE movie_id = ? AND id != ?`,
		movieID, excludeID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum fees: %w", err)
	}
	return total, nil
}

// countShootings counts shootings referencing an actor or movie.
func countShootings(ctx context.Context, q queryer, entity string, id int64) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, referenceQuery[entity], id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s shootings: %w", entity, err)
	}
	return n, nil
}

// requireRow returns a not-found error unless the entity row exists.
func requireRow(ctx context.Context, q queryer, entity string, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, existsQuery[entity], id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NotFound(entity, id)
	}
	if err != nil {
		return fmt.Errorf("lookup %s: %w", entity, err)
	}
	return nil
}
