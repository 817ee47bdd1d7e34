package training

import (
	"context"

	"dog-care-api/internal/platform/paging"
)

type ListFilter struct {
	DogID *int64
	Page  paging.Page
}

type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, id int64) (Goal, error)
	ListGoals(ctx context.Context, userID int64, f ListFilter) ([]Goal, error)
	UpdateGoal(ctx context.Context, g Goal) error
	// DeleteGoal deja en NULL training_goal_id de los logs que lo referencian.
	DeleteGoal(ctx context.Context, id int64) error

	CreateIssue(ctx context.Context, i *Issue) error
	GetIssue(ctx context.Context, id int64) (Issue, error)
	ListIssues(ctx context.Context, userID int64, f ListFilter) ([]Issue, error)
	UpdateIssue(ctx context.Context, i Issue) error
	DeleteIssue(ctx context.Context, id int64) error

	CreateLog(ctx context.Context, l *Log) error
	GetLog(ctx context.Context, id int64) (Log, error)
	// ListLogs ordena por datetime desc.
	ListLogs(ctx context.Context, userID int64, f ListFilter) ([]Log, error)
	UpdateLog(ctx context.Context, l Log) error
	DeleteLog(ctx context.Context, id int64) error
}
