package training

import "time"

// GoalStatus
// @Enum PLANNED, IN_PROGRESS, COMPLETED, PAUSED
type GoalStatus string

const (
	GoalPlanned    GoalStatus = "PLANNED"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
	GoalPaused     GoalStatus = "PAUSED"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalPlanned, GoalInProgress, GoalCompleted, GoalPaused:
		return true
	}
	return false
}

type Goal struct {
	ID    int64 `db:"id"`
	DogID int64 `db:"dog_id"`

	Title       string     `db:"title"`
	Category    string     `db:"category"`
	Status      GoalStatus `db:"status"`
	Priority    int        `db:"priority"` // 1..3
	Description string     `db:"description"`
}

type Issue struct {
	ID    int64 `db:"id"`
	DogID int64 `db:"dog_id"`

	Title           string `db:"title"`
	Description     string `db:"description"`
	TypicalTriggers string `db:"typical_triggers"`
	Severity        int    `db:"severity"` // 1..3
}

// Log es una sesión de entrenamiento. Goal e Issue son opcionales e independientes,
// pero si vienen tienen que ser del mismo perro.
type Log struct {
	ID              int64  `db:"id"`
	DogID           int64  `db:"dog_id"`
	TrainingGoalID  *int64 `db:"training_goal_id"`
	BehaviorIssueID *int64 `db:"behavior_issue_id"`

	Datetime      time.Time `db:"datetime"`
	Rating        *int      `db:"rating"` // 1..5
	NotesMarkdown string    `db:"notes_markdown"`
	MediaURLs     []string  `db:"-"`
}
