package studio

import (
	"context"

	"github.com/theirongolddev/filmdesk/internal/model"
)

func cleanActor(a model.Actor) (model.Actor, error) {
	var err error
	if a.FullName, err = requireText("full name", a.FullName); err != nil {
		return a, err
	}
	if a.DailyRate, err = requireAmount("daily rate", a.DailyRate); err != nil {
		return a, err
	}
	return a, nil
}

// CreateActor validates and stores a new actor.
func (s *Service) CreateActor(ctx context.Context, a model.Actor) (Change, error) {
	a, err := cleanActor(a)
	if err != nil {
		return Change{}, err
	}
	id, err := s.store.CreateActor(ctx, a)
	if err != nil {
		return Change{}, err
	}
	s.log.Info("actor created", "id", id, "name", a.FullName)
	return Change{ID: id, Stale: actorCreatedOrDeleted}, nil
}

// UpdateActor overwrites the actor with a.ID.
func (s *Service) UpdateActor(ctx context.Context, a model.Actor) (Change, error) {
	if err := requireID("actor id", a.ID); err != nil {
		return Change{}, err
	}
	a, err := cleanActor(a)
	if err != nil {
		return Change{}, err
	}
	if err := s.store.UpdateActor(ctx, a); err != nil {
		return Change{}, err
	}
	s.log.Info("actor updated", "id", a.ID)
	return Change{ID: a.ID, Stale: actorUpdated}, nil
}

// DeleteActor removes an actor that no shooting references.
func (s *Service) DeleteActor(ctx context.Context, id int64) (Change, error) {
	if err := requireID("actor id", id); err != nil {
		return Change{}, err
	}
	if err := s.store.DeleteActor(ctx, id); err != nil {
		return Change{}, err
	}
	s.log.Info("actor deleted", "id", id)
	return Change{ID: id, Stale: actorCreatedOrDeleted}, nil
}

// GetActor returns one actor.
func (s *Service) GetActor(ctx context.Context, id int64) (model.Actor, error) {
	return s.store.GetActor(ctx, id)
}

// ListActors returns all actors ordered by id.
func (s *Service) ListActors(ctx context.Context) ([]model.Actor, error) {
	return s.store.ListActors(ctx)
}

// SearchActors matches a case-insensitive substring of the name. An empty
// query lists everyone.
func (s *Service) SearchActors(ctx context.Context, query string) ([]model.Actor, error) {
	if query == "" {
		return s.store.ListActors(ctx)
	}
	return s.store.SearchActors(ctx, query)
}
