package training

import (
	"context"
	"errors"
	"strings"
	"time"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/tx"
)

type Service struct {
	repo  Repository
	tx    tx.Manager
	owner *ownership.Resolver
	tags  *tags.Service
	now   func() time.Time
}

func NewService(repo Repository, txm tx.Manager, owner *ownership.Resolver, tagSvc *tags.Service) *Service {
	return &Service{
		repo:  repo,
		tx:    txm,
		owner: owner,
		tags:  tagSvc,
		now:   time.Now,
	}
}

func (s *Service) requireDogFilter(ctx context.Context, userID int64, f ListFilter) error {
	if f.DogID == nil {
		return nil
	}
	return s.owner.Require(ctx, userID, ownership.DogRef(*f.DogID))
}

// -------------------------
// Goals
// -------------------------

type GoalInput struct {
	DogID       int64
	Title       string
	Category    string
	Status      GoalStatus
	Priority    int
	Description string
}

func (s *Service) CreateGoal(ctx context.Context, userID int64, in GoalInput) (Goal, error) {
	g := Goal{
		DogID:       in.DogID,
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Status:      in.Status,
		Priority:    in.Priority,
		Description: strings.TrimSpace(in.Description),
	}
	if g.Status == "" {
		g.Status = GoalPlanned
	}
	if g.Priority == 0 {
		g.Priority = 1
	}
	if err := validateGoal(g); err != nil {
		return Goal{}, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		return s.repo.CreateGoal(ctx, &g)
	})
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) ListGoals(ctx context.Context, userID int64, f ListFilter) ([]Goal, error) {
	var out []Goal
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogFilter(ctx, userID, f); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListGoals(ctx, userID, f)
		return err
	})
	return out, err
}

type GoalPatch struct {
	Title       *string
	Category    *string
	Status      *GoalStatus
	Priority    *int
	Description *string
}

func (s *Service) UpdateGoal(ctx context.Context, userID, id int64, p GoalPatch) (Goal, error) {
	var g Goal
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, goalRef(id)); err != nil {
			return err
		}
		var err error
		g, err = s.repo.GetGoal(ctx, id)
		if err != nil {
			return err
		}

		setString(&g.Title, p.Title)
		setString(&g.Category, p.Category)
		if p.Status != nil {
			g.Status = *p.Status
		}
		if p.Priority != nil {
			g.Priority = *p.Priority
		}
		setString(&g.Description, p.Description)

		if err := validateGoal(g); err != nil {
			return err
		}
		return s.repo.UpdateGoal(ctx, g)
	})
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) DeleteGoal(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, goalRef(id)); err != nil {
			return err
		}
		return s.repo.DeleteGoal(ctx, id)
	})
}

func validateGoal(g Goal) error {
	if g.Title == "" {
		return apperr.Validation("title is required")
	}
	if !g.Status.Valid() {
		return apperr.Validation("status must be PLANNED, IN_PROGRESS, COMPLETED or PAUSED")
	}
	if g.Priority < 1 || g.Priority > 3 {
		return apperr.Validation("priority must be between 1 and 3")
	}
	return nil
}

// -------------------------
// Behavior issues
// -------------------------

type IssueInput struct {
	DogID           int64
	Title           string
	Description     string
	TypicalTriggers string
	Severity        int
}

func (s *Service) CreateIssue(ctx context.Context, userID int64, in IssueInput) (Issue, error) {
	i := Issue{
		DogID:           in.DogID,
		Title:           strings.TrimSpace(in.Title),
		Description:     strings.TrimSpace(in.Description),
		TypicalTriggers: strings.TrimSpace(in.TypicalTriggers),
		Severity:        in.Severity,
	}
	if err := validateIssue(i); err != nil {
		return Issue{}, err
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		return s.repo.CreateIssue(ctx, &i)
	})
	if err != nil {
		return Issue{}, err
	}
	return i, nil
}

func (s *Service) ListIssues(ctx context.Context, userID int64, f ListFilter) ([]Issue, error) {
	var out []Issue
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogFilter(ctx, userID, f); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListIssues(ctx, userID, f)
		return err
	})
	return out, err
}

type IssuePatch struct {
	Title           *string
	Description     *string
	TypicalTriggers *string
	Severity        *int
}

func (s *Service) UpdateIssue(ctx context.Context, userID, id int64, p IssuePatch) (Issue, error) {
	var i Issue
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, issueRef(id)); err != nil {
			return err
		}
		var err error
		i, err = s.repo.GetIssue(ctx, id)
		if err != nil {
			return err
		}

		setString(&i.Title, p.Title)
		setString(&i.Description, p.Description)
		setString(&i.TypicalTriggers, p.TypicalTriggers)
		if p.Severity != nil {
			i.Severity = *p.Severity
		}

		if err := validateIssue(i); err != nil {
			return err
		}
		return s.repo.UpdateIssue(ctx, i)
	})
	if err != nil {
		return Issue{}, err
	}
	return i, nil
}

func (s *Service) DeleteIssue(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, issueRef(id)); err != nil {
			return err
		}
		return s.repo.DeleteIssue(ctx, id)
	})
}

func validateIssue(i Issue) error {
	if i.Title == "" {
		return apperr.Validation("title is required")
	}
	if i.Description == "" {
		return apperr.Validation("description is required")
	}
	if i.Severity < 1 || i.Severity > 3 {
		return apperr.Validation("severity must be between 1 and 3")
	}
	return nil
}

// -------------------------
// Logs
// -------------------------

type LogInput struct {
	DogID           int64
	TrainingGoalID  *int64
	BehaviorIssueID *int64
	Datetime        time.Time
	Rating          *int
	NotesMarkdown   string
	MediaURLs       []string
	TagIDs          []int64
}

// CreateLog crea el log y asigna sus tags en la misma transacción.
func (s *Service) CreateLog(ctx context.Context, userID int64, in LogInput) (Log, error) {
	if err := validateRating(in.Rating); err != nil {
		return Log{}, err
	}

	l := Log{
		DogID:           in.DogID,
		TrainingGoalID:  in.TrainingGoalID,
		BehaviorIssueID: in.BehaviorIssueID,
		Datetime:        in.Datetime,
		Rating:          in.Rating,
		NotesMarkdown:   in.NotesMarkdown,
		MediaURLs:       cleanURLs(in.MediaURLs),
	}
	if l.Datetime.IsZero() {
		l.Datetime = s.now()
	}
	l.Datetime = l.Datetime.UTC()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		if err := s.checkLinks(ctx, l); err != nil {
			return err
		}
		if err := s.repo.CreateLog(ctx, &l); err != nil {
			return err
		}
		_, err := s.tags.Assign(ctx, userID, logRef(l.ID), in.TagIDs)
		return err
	})
	if err != nil {
		return Log{}, err
	}
	return l, nil
}

func (s *Service) ListLogs(ctx context.Context, userID int64, f ListFilter) ([]Log, error) {
	var out []Log
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.requireDogFilter(ctx, userID, f); err != nil {
			return err
		}
		var err error
		out, err = s.repo.ListLogs(ctx, userID, f)
		return err
	})
	return out, err
}

type LogPatch struct {
	Datetime      *time.Time
	Rating        *int
	NotesMarkdown *string
	MediaURLs     *[]string
}

func (s *Service) UpdateLog(ctx context.Context, userID, id int64, p LogPatch) (Log, error) {
	if err := validateRating(p.Rating); err != nil {
		return Log{}, err
	}

	var l Log
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, logRef(id)); err != nil {
			return err
		}
		var err error
		l, err = s.repo.GetLog(ctx, id)
		if err != nil {
			return err
		}

		if p.Datetime != nil {
			l.Datetime = p.Datetime.UTC()
		}
		if p.Rating != nil {
			l.Rating = p.Rating
		}
		if p.NotesMarkdown != nil {
			l.NotesMarkdown = *p.NotesMarkdown
		}
		if p.MediaURLs != nil {
			l.MediaURLs = cleanURLs(*p.MediaURLs)
		}
		return s.repo.UpdateLog(ctx, l)
	})
	if err != nil {
		return Log{}, err
	}
	return l, nil
}

func (s *Service) DeleteLog(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, logRef(id)); err != nil {
			return err
		}
		return s.repo.DeleteLog(ctx, id)
	})
}

// checkLinks: goal/issue referenciados tienen que existir y ser del mismo perro.
// Una referencia inválida es ValidationError (el recurso principal es el perro).
func (s *Service) checkLinks(ctx context.Context, l Log) error {
	if l.TrainingGoalID != nil {
		g, err := s.repo.GetGoal(ctx, *l.TrainingGoalID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Validation("invalid training_goal_id")
			}
			return err
		}
		if g.DogID != l.DogID {
			return apperr.Validation("training goal belongs to another dog")
		}
	}
	if l.BehaviorIssueID != nil {
		i, err := s.repo.GetIssue(ctx, *l.BehaviorIssueID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Validation("invalid behavior_issue_id")
			}
			return err
		}
		if i.DogID != l.DogID {
			return apperr.Validation("behavior issue belongs to another dog")
		}
	}
	return nil
}

func validateRating(r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return apperr.Validation("rating must be between 1 and 5")
	}
	return nil
}

func cleanURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func goalRef(id int64) ownership.Ref {
	return ownership.Ref{Type: ownership.EntityTrainingGoal, ID: id}
}

func issueRef(id int64) ownership.Ref {
	return ownership.Ref{Type: ownership.EntityBehaviorIssue, ID: id}
}

func logRef(id int64) ownership.Ref {
	return ownership.Ref{Type: ownership.EntityTrainingLog, ID: id}
}
