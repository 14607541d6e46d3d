// Package studio is the caller-facing API of filmdesk. It validates input,
// delegates to the store and reports which views each change invalidates.
package studio

import (
	"log/slog"
	"strings"
	"time"

	"github.com/theirongolddev/filmdesk/internal/export"
	"github.com/theirongolddev/filmdesk/internal/store"
)

// View identifies a presentation view backed by studio data.
type View uint8

const (
	ViewActors View = 1 << iota
	ViewMovies
	ViewShootings
	ViewSchedule
	ViewExpenses
	ViewBudgets
)

// AllViews is every view at once.
const AllViews = ViewActors | ViewMovies | ViewShootings | ViewSchedule | ViewExpenses | ViewBudgets

var viewNames = []struct {
	v    View
	name string
}{
	{ViewActors, "actors"},
	{ViewMovies, "movies"},
	{ViewShootings, "shootings"},
	{ViewSchedule, "schedule"},
	{ViewExpenses, "expenses"},
	{ViewBudgets, "budgets"},
}

// Has reports whether every view in o is set in v.
func (v View) Has(o View) bool {
	return v&o == o
}

func (v View) String() string {
	var names []string
	for _, vn := range viewNames {
		if v.Has(vn.v) {
			names = append(names, vn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// Stale sets per mutation.
const (
	actorCreatedOrDeleted = ViewActors | ViewExpenses
	actorUpdated          = ViewActors | ViewShootings | ViewSchedule | ViewExpenses
	movieCreatedOrDeleted = ViewMovies | ViewBudgets
	movieUpdated          = ViewMovies | ViewShootings | ViewSchedule | ViewBudgets
	shootingChanged       = ViewShootings | ViewSchedule | ViewExpenses | ViewBudgets
)

// Change is returned by every mutation: the affected id and the views that
// no longer reflect the database.
type Change struct {
	ID    int64
	Stale View
}

// Service implements the filmdesk operations on top of a Store.
type Service struct {
	store    *store.Store
	exporter *export.Exporter
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for schedule periods.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service backed by st.
func New(st *store.Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:    st,
		exporter: export.New(st, logger.With("component", "export")),
		log:      logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}
