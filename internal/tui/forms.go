package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/cli"
	"github.com/theirongolddev/filmdesk/internal/model"
	"github.com/theirongolddev/filmdesk/internal/studio"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formActor formKind = iota
	formMovie
	formShooting
	formDelete
	formSetup
)

// formValues backs the active huh form. It lives behind a pointer because
// App is copied on every Update and huh keeps the field addresses.
type formValues struct {
	kind formKind
	id   int64 // entity being edited or deleted, 0 when adding
	tab  int   // tab that opened the form

	name     string // actor full name or movie title
	director string
	amount   string // daily rate, budget or fee
	actorID  int64
	movieID  int64
	date     string
	scene    string
	confirm  bool

	setup SetupValues
}

func amountValidator(field string, optional bool) func(string) error {
	return func(s string) error {
		var err error
		if optional {
			_, err = studio.ParseOptionalAmount(field, s)
		} else {
			_, err = studio.ParseAmount(field, s)
		}
		return err
	}
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &model.ValidationError{Field: field, Reason: "must not be empty"}
		}
		return nil
	}
}

func newActorForm(v *formValues) *huh.Form {
	title := "New actor"
	if v.id != 0 {
		title = fmt.Sprintf("Edit actor #%d", v.id)
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(title),
		huh.NewInput().Title("Full name").Value(&v.name).Validate(requiredText("full name")),
		huh.NewInput().Title("Daily rate").Placeholder("0.00").Value(&v.amount).
			Validate(amountValidator("daily rate", false)),
	))
}

func newMovieForm(v *formValues) *huh.Form {
	title := "New movie"
	if v.id != 0 {
		title = fmt.Sprintf("Edit movie #%d", v.id)
	}
	return huh.NewForm(huh.NewGroup(
		huh.NewNote().Title(title),
		huh.NewInput().Title("Title").Value(&v.name).Validate(requiredText("title")),
		huh.NewInput().Title("Director").Description("optional").Value(&v.director),
		huh.NewInput().Title("Budget").Placeholder("0.00").Value(&v.amount).
			Validate(amountValidator("budget", false)),
	))
}

// newShootingForm builds the shooting form. The fee field pre-checks the
// selected movie's budget so a rejected fee is reported before submit.
func newShootingForm(v *formValues, svc *studio.Service, actors []model.Actor, movies []model.Movie) *huh.Form {
	title := "New shooting"
	if v.id != 0 {
		title = fmt.Sprintf("Edit shooting #%d", v.id)
	}

	actorOpts := make([]huh.Option[int64], len(actors))
	for i, a := range actors {
		actorOpts[i] = huh.NewOption(a.FullName, a.ID)
	}
	movieOpts := make([]huh.Option[int64], len(movies))
	for i, m := range movies {
		label := fmt.Sprintf("%s (budget %s)", m.Title, cli.FormatMoney(m.Budget))
		movieOpts[i] = huh.NewOption(label, m.ID)
	}

	feeCheck := func(s string) error {
		fee, err := studio.ParseOptionalAmount("fee", s)
		if err != nil {
			return err
		}
		if v.movieID == 0 {
			return nil
		}
		check, err := svc.ValidateFee(context.Background(), v.movieID, fee, v.id)
		if err != nil {
			return err
		}
		return check.Err()
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewSelect[int64]().Title("Actor").Options(actorOpts...).Value(&v.actorID),
			huh.NewSelect[int64]().Title("Movie").Options(movieOpts...).Value(&v.movieID),
		),
		huh.NewGroup(
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&v.date).
				Validate(func(s string) error { _, err := studio.ParseDate(s); return err }),
			huh.NewInput().Title("Scene").Description("optional").Value(&v.scene),
			huh.NewInput().Title("Fee").Placeholder("0.00").Value(&v.amount).Validate(feeCheck),
		),
	)
}

func newDeleteForm(v *formValues, what string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %s?", what)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&v.confirm),
	))
}

// submit turns completed form values into a mutation command.
func (a App) submit(v *formValues) tea.Cmd {
	svc := a.svc
	switch v.kind {
	case formActor:
		rate, err := studio.ParseAmount("daily rate", v.amount)
		if err != nil {
			return errCmd(err)
		}
		actor := model.Actor{ID: v.id, FullName: v.name, DailyRate: rate}
		if v.id == 0 {
			return mutateCmd("Actor #%d added", func(ctx context.Context) (studio.Change, error) {
				return svc.CreateActor(ctx, actor)
			})
		}
		return mutateCmd("Actor #%d updated", func(ctx context.Context) (studio.Change, error) {
			return svc.UpdateActor(ctx, actor)
		})

	case formMovie:
		budget, err := studio.ParseAmount("budget", v.amount)
		if err != nil {
			return errCmd(err)
		}
		movie := model.Movie{ID: v.id, Title: v.name, Director: v.director, Budget: budget}
		if v.id == 0 {
			return mutateCmd("Movie #%d added", func(ctx context.Context) (studio.Change, error) {
				return svc.CreateMovie(ctx, movie)
			})
		}
		return mutateCmd("Movie #%d updated", func(ctx context.Context) (studio.Change, error) {
			return svc.UpdateMovie(ctx, movie)
		})

	case formShooting:
		fee, err := studio.ParseOptionalAmount("fee", v.amount)
		if err != nil {
			return errCmd(err)
		}
		date, err := studio.ParseDate(v.date)
		if err != nil {
			return errCmd(err)
		}
		sh := model.Shooting{ID: v.id, ActorID: v.actorID, MovieID: v.movieID, Date: date, Scene: v.scene, Fee: fee}
		if v.id == 0 {
			return mutateCmd("Shooting #%d added", func(ctx context.Context) (studio.Change, error) {
				return svc.CreateShooting(ctx, sh)
			})
		}
		return mutateCmd("Shooting #%d updated", func(ctx context.Context) (studio.Change, error) {
			return svc.UpdateShooting(ctx, sh)
		})

	case formDelete:
		if !v.confirm {
			return nil
		}
		id := v.id
		switch v.tab {
		case tabActors:
			return mutateCmd("Actor #%d deleted", func(ctx context.Context) (studio.Change, error) {
				return svc.DeleteActor(ctx, id)
			})
		case tabMovies:
			return mutateCmd("Movie #%d deleted", func(ctx context.Context) (studio.Change, error) {
				return svc.DeleteMovie(ctx, id)
			})
		case tabShootings, tabSchedule:
			return mutateCmd("Shooting #%d deleted", func(ctx context.Context) (studio.Change, error) {
				return svc.DeleteShooting(ctx, id)
			})
		}

	case formSetup:
		return saveSetupCmd(v.setup)
	}
	return nil
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return changedMsg{err: err} }
}

// openForm prepares the add/edit/delete form for the current tab.
func (a App) openForm(action string) (App, tea.Cmd) {
	v := &formValues{tab: a.activeTab}
	ctx := context.Background()

	switch a.activeTab {
	case tabActors:
		if action != "add" {
			if len(a.data.actors) == 0 {
				return a, nil
			}
			sel := a.data.actors[a.cursors[tabActors]]
			v.id = sel.ID
			v.name, v.amount = sel.FullName, sel.DailyRate.StringFixed(2)
			if action == "delete" {
				v.kind = formDelete
				a.form = newDeleteForm(v, fmt.Sprintf("actor %q", sel.FullName))
				break
			}
		}
		v.kind = formActor
		a.form = newActorForm(v)

	case tabMovies:
		if action != "add" {
			if len(a.data.movies) == 0 {
				return a, nil
			}
			sel := a.data.movies[a.cursors[tabMovies]]
			v.id = sel.ID
			v.name, v.director, v.amount = sel.Title, sel.Director, sel.Budget.StringFixed(2)
			if action == "delete" {
				v.kind = formDelete
				a.form = newDeleteForm(v, fmt.Sprintf("movie %q", sel.Title))
				break
			}
		}
		v.kind = formMovie
		a.form = newMovieForm(v)

	case tabShootings, tabSchedule:
		rows := a.data.shootings
		if a.activeTab == tabSchedule {
			rows = a.data.schedule
		}
		if action != "add" {
			if len(rows) == 0 {
				return a, nil
			}
			sel := rows[a.cursors[a.activeTab]]
			v.id = sel.ID
			v.actorID, v.movieID = sel.ActorID, sel.MovieID
			v.date, v.scene, v.amount = model.FormatDate(sel.Date), sel.Scene, sel.Fee.StringFixed(2)
			if action == "delete" {
				v.kind = formDelete
				a.form = newDeleteForm(v, fmt.Sprintf("shooting #%d (%s in %s)", sel.ID, sel.ActorName, sel.MovieTitle))
				break
			}
		} else {
			v.date = model.FormatDate(a.svc.Now())
		}
		actors, err := a.svc.ListActors(ctx)
		if err != nil {
			return a.setStatus(err.Error(), true), nil
		}
		movies, err := a.svc.ListMovies(ctx)
		if err != nil {
			return a.setStatus(err.Error(), true), nil
		}
		if len(actors) == 0 || len(movies) == 0 {
			return a.setStatus("Add at least one actor and one movie first", true), nil
		}
		v.kind = formShooting
		a.form = newShootingForm(v, a.svc, actors, movies)

	default:
		return a, nil
	}

	a.formVals = v
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width-4, 70)).WithHeight(a.height - 4)
	}
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		v := a.formVals
		a.form, a.formVals = nil, nil
		return a, a.submit(v)
	case huh.StateAborted:
		a.form, a.formVals = nil, nil
		return a.setStatus("Cancelled", false), nil
	}
	return a, cmd
}
