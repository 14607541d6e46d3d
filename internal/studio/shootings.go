package studio

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/filmdesk/internal/model"
)

func cleanShooting(sh model.Shooting) (model.Shooting, error) {
	if err := requireID("actor", sh.ActorID); err != nil {
		return sh, err
	}
	if err := requireID("movie", sh.MovieID); err != nil {
		return sh, err
	}
	if sh.Date.IsZero() {
		return sh, &model.ValidationError{Field: "date", Reason: "must be set"}
	}
	sh.Date = model.Day(sh.Date)
	sh.Scene = strings.TrimSpace(sh.Scene)

	var err error
	if sh.Fee, err = requireAmount("fee", sh.Fee); err != nil {
		return sh, err
	}
	return sh, nil
}

// CreateShooting books a shooting if the movie's budget can absorb the fee.
func (s *Service) CreateShooting(ctx context.Context, sh model.Shooting) (Change, error) {
	sh, err := cleanShooting(sh)
	if err != nil {
		return Change{}, err
	}
	id, err := s.store.CreateShooting(ctx, sh)
	if err != nil {
		s.logRejection("create", sh, err)
		return Change{}, err
	}
	s.log.Info("shooting created", "id", id, "actor", sh.ActorID, "movie", sh.MovieID,
		"date", model.FormatDate(sh.Date), "fee", sh.Fee.StringFixed(2))
	return Change{ID: id, Stale: shootingChanged}, nil
}

// UpdateShooting overwrites the shooting with sh.ID, re-checking the budget
// of the (possibly new) movie without counting the shooting's old fee.
func (s *Service) UpdateShooting(ctx context.Context, sh model.Shooting) (Change, error) {
	if err := requireID("shooting id", sh.ID); err != nil {
		return Change{}, err
	}
	sh, err := cleanShooting(sh)
	if err != nil {
		return Change{}, err
	}
	if err := s.store.UpdateShooting(ctx, sh); err != nil {
		s.logRejection("update", sh, err)
		return Change{}, err
	}
	s.log.Info("shooting updated", "id", sh.ID, "movie", sh.MovieID, "fee", sh.Fee.StringFixed(2))
	return Change{ID: sh.ID, Stale: shootingChanged}, nil
}

// DeleteShooting removes a shooting. Shootings have no dependents.
func (s *Service) DeleteShooting(ctx context.Context, id int64) (Change, error) {
	if err := requireID("shooting id", id); err != nil {
		return Change{}, err
	}
	if err := s.store.DeleteShooting(ctx, id); err != nil {
		return Change{}, err
	}
	s.log.Info("shooting deleted", "id", id)
	return Change{ID: id, Stale: shootingChanged}, nil
}

// GetShooting returns one shooting with actor and movie names.
func (s *Service) GetShooting(ctx context.Context, id int64) (model.ShootingRow, error) {
	return s.store.GetShooting(ctx, id)
}

// ListShootings returns every shooting, newest first.
func (s *Service) ListShootings(ctx context.Context) ([]model.ShootingRow, error) {
	return s.store.ListShootings(ctx)
}

// ValidateFee runs the budget guard without writing. excludeID is the
// shooting being edited, or 0 for a new one.
func (s *Service) ValidateFee(ctx context.Context, movieID int64, fee decimal.Decimal, excludeID int64) (model.FeeCheck, error) {
	if err := requireID("movie", movieID); err != nil {
		return model.FeeCheck{}, err
	}
	return s.store.CheckFee(ctx, movieID, fee, excludeID)
}

func (s *Service) logRejection(op string, sh model.Shooting, err error) {
	var exceeded *model.BudgetExceededError
	if errors.As(err, &exceeded) {
		s.log.Warn("shooting rejected by budget guard", "op", op, "movie", sh.MovieID,
			"total", exceeded.Total.StringFixed(2), "budget", exceeded.Budget.StringFixed(2))
	}
}
