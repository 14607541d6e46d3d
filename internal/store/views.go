package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/model"
)

// ActorExpenses returns every actor with the sum of their shooting fees,
// ordered by name. Actors without shootings report zero.
func (s *Store) ActorExpenses(ctx context.Context) ([]model.ActorExpense, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT a.id, a.full_name,
	       COALESCE(SUM(s.fee_cents), 0), COUNT(s.id)
	  FROM actors a
	  LEFT JOIN shootings s ON s.actor_id = a.id
	 GROUP BY a.id
	 ORDER BY a.full_name, a.id`)
	if err != nil {
		return nil, fmt.Errorf("query actor expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ActorExpense
	for rows.Next() {
		var e model.ActorExpense
		var totalCents int64
		if err := rows.Scan(&e.ActorID, &e.FullName, &totalCents, &e.Shootings); err != nil {
			return nil, err
		}
		e.TotalFee = model.FromCents(totalCents)
		out = append(out, e)
	}
	return out, rows.Err()
}

// MovieBudgets returns every movie with spent and remaining budget,
// ordered by title.
func (s *Store) MovieBudgets(ctx context.Context) ([]model.MovieBudget, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT m.id, m.title, m.director, m.budget_cents,
	       COALESCE(SUM(s.fee_cents), 0), COUNT(s.id)
	  FROM movies m
	  LEFT JOIN shootings s ON s.movie_id = m.id
	 GROUP BY m.id
	 ORDER BY m.title, m.id`)
	if err != nil {
		return nil, fmt.Errorf("query movie budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.MovieBudget
	for rows.Next() {
		var b model.MovieBudget
		var director sql.NullString
		var budgetCents, spentCents int64
		if err := rows.Scan(&b.MovieID, &b.Title, &director, &budgetCents, &spentCents, &b.Shootings); err != nil {
			return nil, err
		}
		b.Director = director.String
		b.Budget = model.FromCents(budgetCents)
		b.Spent = model.FromCents(spentCents)
		b.Remaining = model.FromCents(budgetCents - spentCents)
		out = append(out, b)
	}
	return out, rows.Err()
}

// Schedule returns shootings dated within r, earliest first. Open bounds
// are bound as empty strings and skipped by the predicate.
func (s *Store) Schedule(ctx context.Context, r model.DateRange) ([]model.ShootingRow, error) {
	from, to := model.FormatDate(r.From), model.FormatDate(r.To)
	return s.queryShootingRows(ctx, shootingRowSelect+`
	 WHERE (? = '' OR s.shot_on >= ?)
	   AND (? = '' OR s.shot_on <= ?)
	 ORDER BY s.shot_on, s.id`,
		from, from, to, to)
}
