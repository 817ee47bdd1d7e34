package postgres

import (
	"context"

	"dog-care-api/internal/domain/training"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	goalColumns  = []string{"id", "dog_id", "title", "category", "status", "priority", "description"}
	issueColumns = []string{"id", "dog_id", "title", "description", "typical_triggers", "severity"}
	logColumns   = []string{
		"id", "dog_id", "training_goal_id", "behavior_issue_id", "datetime", "rating",
		"notes_markdown", "media_urls",
	}
)

// logRow agrega la columna TEXT[] que el modelo no mapea directo.
type logRow struct {
	training.Log
	MediaURLs pq.StringArray `db:"media_urls"`
}

func (r logRow) toLog() training.Log {
	l := r.Log
	l.MediaURLs = []string(r.MediaURLs)
	if l.MediaURLs == nil {
		l.MediaURLs = []string{}
	}
	return l
}

type TrainingRepo struct {
	db *sqlx.DB
}

func NewTrainingRepo(db *sqlx.DB) *TrainingRepo {
	return &TrainingRepo{db: db}
}

func ownedBy(table, alias string, cols []string, userID int64, dogID *int64) sq.SelectBuilder {
	return psql.Select(prefixed(alias, cols)...).
		From(table + " " + alias).
		Join("dogs d ON d.id = " + alias + ".dog_id").
		Where(ownedDog("d", userID, dogID))
}

// -------------------------
// Goals
// -------------------------

func (r *TrainingRepo) CreateGoal(ctx context.Context, g *training.Goal) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("training_goals").
		Columns("dog_id", "title", "category", "status", "priority", "description").
		Values(g.DogID, g.Title, g.Category, g.Status, g.Priority, g.Description), "training goal")
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *TrainingRepo) GetGoal(ctx context.Context, id int64) (training.Goal, error) {
	var g training.Goal
	err := getOne(ctx, conn(ctx, r.db), &g,
		psql.Select(goalColumns...).From("training_goals").Where(sq.Eq{"id": id}), "training goal")
	return g, err
}

func (r *TrainingRepo) ListGoals(ctx context.Context, userID int64, f training.ListFilter) ([]training.Goal, error) {
	out := make([]training.Goal, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(
		ownedBy("training_goals", "g", goalColumns, userID, f.DogID).
			OrderBy("g.id ASC"), f.Page))
	return out, err
}

func (r *TrainingRepo) UpdateGoal(ctx context.Context, g training.Goal) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("training_goals").
		SetMap(map[string]any{
			"title":       g.Title,
			"category":    g.Category,
			"status":      g.Status,
			"priority":    g.Priority,
			"description": g.Description,
		}).
		Where(sq.Eq{"id": g.ID}), "training goal")
}

// DeleteGoal: los logs quedan con training_goal_id NULL (ON DELETE SET NULL).
func (r *TrainingRepo) DeleteGoal(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("training_goals").Where(sq.Eq{"id": id}), "training goal")
}

// -------------------------
// Behavior issues
// -------------------------

func (r *TrainingRepo) CreateIssue(ctx context.Context, i *training.Issue) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("behavior_issues").
		Columns("dog_id", "title", "description", "typical_triggers", "severity").
		Values(i.DogID, i.Title, i.Description, i.TypicalTriggers, i.Severity), "behavior issue")
	if err != nil {
		return err
	}
	i.ID = id
	return nil
}

func (r *TrainingRepo) GetIssue(ctx context.Context, id int64) (training.Issue, error) {
	var i training.Issue
	err := getOne(ctx, conn(ctx, r.db), &i,
		psql.Select(issueColumns...).From("behavior_issues").Where(sq.Eq{"id": id}), "behavior issue")
	return i, err
}

func (r *TrainingRepo) ListIssues(ctx context.Context, userID int64, f training.ListFilter) ([]training.Issue, error) {
	out := make([]training.Issue, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(
		ownedBy("behavior_issues", "b", issueColumns, userID, f.DogID).
			OrderBy("b.id ASC"), f.Page))
	return out, err
}

func (r *TrainingRepo) UpdateIssue(ctx context.Context, i training.Issue) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("behavior_issues").
		SetMap(map[string]any{
			"title":            i.Title,
			"description":      i.Description,
			"typical_triggers": i.TypicalTriggers,
			"severity":         i.Severity,
		}).
		Where(sq.Eq{"id": i.ID}), "behavior issue")
}

func (r *TrainingRepo) DeleteIssue(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("behavior_issues").Where(sq.Eq{"id": id}), "behavior issue")
}

// -------------------------
// Logs
// -------------------------

func (r *TrainingRepo) CreateLog(ctx context.Context, l *training.Log) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("training_logs").
		Columns("dog_id", "training_goal_id", "behavior_issue_id", "datetime", "rating", "notes_markdown", "media_urls").
		Values(l.DogID, l.TrainingGoalID, l.BehaviorIssueID, l.Datetime, l.Rating, l.NotesMarkdown,
			textArray(l.MediaURLs)), "training log")
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}

func (r *TrainingRepo) GetLog(ctx context.Context, id int64) (training.Log, error) {
	var row logRow
	err := getOne(ctx, conn(ctx, r.db), &row,
		psql.Select(logColumns...).From("training_logs").Where(sq.Eq{"id": id}), "training log")
	if err != nil {
		return training.Log{}, err
	}
	return row.toLog(), nil
}

func (r *TrainingRepo) ListLogs(ctx context.Context, userID int64, f training.ListFilter) ([]training.Log, error) {
	var rows []logRow
	err := selectAll(ctx, conn(ctx, r.db), &rows, withPage(
		ownedBy("training_logs", "l", logColumns, userID, f.DogID).
			OrderBy("l.datetime DESC", "l.id DESC"), f.Page))
	if err != nil {
		return nil, err
	}

	out := make([]training.Log, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toLog())
	}
	return out, nil
}

func (r *TrainingRepo) UpdateLog(ctx context.Context, l training.Log) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("training_logs").
		SetMap(map[string]any{
			"datetime":       l.Datetime,
			"rating":         l.Rating,
			"notes_markdown": l.NotesMarkdown,
			"media_urls":     textArray(l.MediaURLs),
		}).
		Where(sq.Eq{"id": l.ID}), "training log")
}

func (r *TrainingRepo) DeleteLog(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("training_logs").Where(sq.Eq{"id": id}), "training log")
}
