package walks

import "time"

// Mood
// @Enum CALM, NORMAL, STRESSED
type Mood string

const (
	MoodCalm     Mood = "CALM"
	MoodNormal   Mood = "NORMAL"
	MoodStressed Mood = "STRESSED"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodCalm, MoodNormal, MoodStressed:
		return true
	}
	return false
}

// Walk pertenece al usuario (no a un perro) y agrupa uno o más perros del mismo usuario.
type Walk struct {
	ID     int64 `db:"id"`
	UserID int64 `db:"user_id"`

	StartDatetime   time.Time `db:"start_datetime"`
	DurationMinutes int       `db:"duration_minutes"`
	Mood            Mood      `db:"mood"`
	DistanceKm      *float64  `db:"distance_km"`
	NotesMarkdown   string    `db:"notes_markdown"`
	VideoURLs       []string  `db:"-"`
	GPXFileURL      string    `db:"gpx_file_url"`
	HasRouteData    bool      `db:"has_route_data"`

	// DogIDs sale de walk_dogs.
	DogIDs []int64 `db:"-"`
}
