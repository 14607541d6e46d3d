// Package model defines domain types for filmdesk: actors, movies, shootings
// and the report rows derived from them.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Actor is a performer the studio can book for shootings.
type Actor struct {
	ID        int64
	FullName  string
	DailyRate decimal.Decimal // stored for reference, not used in fee checks
}

// Movie is a production with an allocated budget for actor fees.
type Movie struct {
	ID       int64
	Title    string
	Director string
	Budget   decimal.Decimal
}

// Shooting links one actor to one movie on a calendar date.
type Shooting struct {
	ID      int64
	ActorID int64
	MovieID int64
	Date    time.Time // midnight local time
	Scene   string
	Fee     decimal.Decimal
}

// ShootingRow is a shooting joined with the actor name and movie title.
// Used by both the raw listing and the schedule.
type ShootingRow struct {
	Shooting
	ActorName  string
	MovieTitle string
}
