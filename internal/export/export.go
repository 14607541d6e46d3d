// Package export writes actors, movies and shootings to CSV files.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/filmdesk/internal/model"
)

// Kind selects which table to export.
type Kind string

const (
	Actors    Kind = "actors"
	Movies    Kind = "movies"
	Shootings Kind = "shootings"
)

// Kinds lists every exportable table in ExportAll order.
var Kinds = []Kind{Actors, Movies, Shootings}

// ParseKind resolves a table name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", &model.ValidationError{Field: "export kind", Reason: fmt.Sprintf("unknown table %q", s)}
}

// FileName is the CSV file written for the kind.
func (k Kind) FileName() string {
	return string(k) + ".csv"
}

// Source provides the rows to export. *store.Store satisfies it.
type Source interface {
	ListActors(ctx context.Context) ([]model.Actor, error)
	ListMovies(ctx context.Context) ([]model.Movie, error)
	ListShootings(ctx context.Context) ([]model.ShootingRow, error)
}

// Exporter writes CSV snapshots of a Source.
type Exporter struct {
	src Source
	log *slog.Logger
}

// New creates an Exporter reading from src.
func New(src Source, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{src: src, log: logger}
}

// Export writes one table to dir/<kind>.csv and returns the file path.
// The directory must already exist.
func (e *Exporter) Export(ctx context.Context, kind Kind, dir string) (string, error) {
	path := filepath.Join(dir, kind.FileName())

	var (
		n     int
		write func(io.Writer) error
	)
	switch kind {
	case Actors:
		actors, err := e.src.ListActors(ctx)
		if err != nil {
			return "", err
		}
		n = len(actors)
		write = func(w io.Writer) error { return WriteActors(w, actors) }
	case Movies:
		movies, err := e.src.ListMovies(ctx)
		if err != nil {
			return "", err
		}
		n = len(movies)
		write = func(w io.Writer) error { return WriteMovies(w, movies) }
	case Shootings:
		rows, err := e.src.ListShootings(ctx)
		if err != nil {
			return "", err
		}
		n = len(rows)
		write = func(w io.Writer) error { return WriteShootings(w, rows) }
	default:
		return "", &model.ValidationError{Field: "export kind", Reason: fmt.Sprintf("unknown table %q", kind)}
	}

	if err := writeFile(path, write); err != nil {
		return "", err
	}
	e.log.Info("exported", "kind", string(kind), "rows", n, "path", path)
	return path, nil
}

// ExportAll writes every table into dir, stopping at the first failure.
// It returns the paths written so far.
func (e *Exporter) ExportAll(ctx context.Context, dir string) ([]string, error) {
	paths := make([]string, 0, len(Kinds))
	for _, k := range Kinds {
		path, err := e.Export(ctx, k, dir)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &model.ExportError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &model.ExportError{Path: path, Err: cerr}
		}
	}()

	if err := write(f); err != nil {
		return &model.ExportError{Path: path, Err: err}
	}
	return nil
}

// WriteActors writes the actors table as CSV.
func WriteActors(w io.Writer, actors []model.Actor) error {
	records := [][]string{{"ID", "Full name", "Daily rate"}}
	for _, a := range actors {
		records = append(records, []string{id(a.ID), a.FullName, a.DailyRate.StringFixed(2)})
	}
	return writeAll(w, records)
}

// WriteMovies writes the movies table as CSV.
func WriteMovies(w io.Writer, movies []model.Movie) error {
	records := [][]string{{"ID", "Title", "Director", "Budget"}}
	for _, m := range movies {
		records = append(records, []string{id(m.ID), m.Title, m.Director, m.Budget.StringFixed(2)})
	}
	return writeAll(w, records)
}

// WriteShootings writes shootings with actor and movie names resolved.
func WriteShootings(w io.Writer, rows []model.ShootingRow) error {
	records := [][]string{{"ID", "Actor", "Movie", "Date", "Scene", "Fee"}}
	for _, r := range rows {
		records = append(records, []string{
			id(r.ID), r.ActorName, r.MovieTitle, model.FormatDate(r.Date), r.Scene, r.Fee.StringFixed(2),
		})
	}
	return writeAll(w, records)
}

func writeAll(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func id(v int64) string {
	return strconv.FormatInt(v, 10)
}
