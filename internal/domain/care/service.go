package care

import (
	"context"
	"strings"
	"time"

	"dog-care-api/internal/domain/ownership"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/ports/tx"
)

type Service struct {
	repo  Repository
	tx    tx.Manager
	owner *ownership.Resolver
	now   func() time.Time
}

func NewService(repo Repository, txm tx.Manager, owner *ownership.Resolver) *Service {
	return &Service{
		repo:  repo,
		tx:    txm,
		owner: owner,
		now:   time.Now,
	}
}

type CreateTaskInput struct {
	DogID        int64
	Title        string
	Description  string
	IntervalType IntervalType
	IntervalDays *int
	NextDueDate  time.Time
	IsActive     *bool
}

func (s *Service) CreateTask(ctx context.Context, userID int64, in CreateTaskInput) (Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Task{}, apperr.Validation("title is required")
	}
	if !in.IntervalType.Valid() {
		return Task{}, apperr.Validation("interval_type must be DAILY, WEEKLY, MONTHLY or CUSTOM_DAYS")
	}
	if in.IntervalDays != nil && *in.IntervalDays <= 0 {
		return Task{}, apperr.Validation("interval_days must be > 0")
	}
	if in.NextDueDate.IsZero() {
		return Task{}, apperr.Validation("next_due_date is required")
	}

	t := Task{
		DogID:        in.DogID,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		IntervalType: in.IntervalType,
		IntervalDays: in.IntervalDays,
		NextDueDate:  day(in.NextDueDate),
		IsActive:     true,
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, ownership.DogRef(in.DogID)); err != nil {
			return err
		}
		return s.repo.CreateTask(ctx, &t)
	})
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) ListTasks(ctx context.Context, userID int64, f TaskFilter) ([]Task, error) {
	var out []Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if f.DogID != nil {
			if err := s.owner.Require(ctx, userID, ownership.DogRef(*f.DogID)); err != nil {
				return err
			}
		}
		var err error
		out, err = s.repo.ListTasks(ctx, userID, f)
		return err
	})
	return out, err
}

type UpdateTaskInput struct {
	Title        *string
	Description  *string
	IntervalType *IntervalType
	IntervalDays *int
	NextDueDate  *time.Time
	IsActive     *bool
}

func (s *Service) UpdateTask(ctx context.Context, userID, id int64, in UpdateTaskInput) (Task, error) {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return Task{}, apperr.Validation("title cannot be empty")
	}
	if in.IntervalType != nil && !in.IntervalType.Valid() {
		return Task{}, apperr.Validation("interval_type must be DAILY, WEEKLY, MONTHLY or CUSTOM_DAYS")
	}
	if in.IntervalDays != nil && *in.IntervalDays <= 0 {
		return Task{}, apperr.Validation("interval_days must be > 0")
	}

	var t Task
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, taskRef(id)); err != nil {
			return err
		}
		var err error
		t, err = s.repo.GetTask(ctx, id)
		if err != nil {
			return err
		}

		if in.Title != nil {
			t.Title = strings.TrimSpace(*in.Title)
		}
		if in.Description != nil {
			t.Description = strings.TrimSpace(*in.Description)
		}
		if in.IntervalType != nil {
			t.IntervalType = *in.IntervalType
		}
		if in.IntervalDays != nil {
			t.IntervalDays = in.IntervalDays
		}
		if in.NextDueDate != nil {
			t.NextDueDate = day(*in.NextDueDate)
		}
		if in.IsActive != nil {
			t.IsActive = *in.IsActive
		}
		return s.repo.UpdateTask(ctx, t)
	})
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, userID, id int64) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, taskRef(id)); err != nil {
			return err
		}
		return s.repo.DeleteTask(ctx, id)
	})
}

// Complete agrega el log y mueve next_due_date en una sola transacción:
// o quedan los dos o ninguno.
func (s *Service) Complete(ctx context.Context, userID, id int64, notes string) (Task, TaskLog, error) {
	now := s.now().UTC()

	var (
		t   Task
		log TaskLog
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.owner.Require(ctx, userID, taskRef(id)); err != nil {
			return err
		}
		var err error
		t, err = s.repo.GetTask(ctx, id)
		if err != nil {
			return err
		}

		log = TaskLog{
			CareTaskID: t.ID,
			DoneAt:     now,
			Notes:      strings.TrimSpace(notes),
		}
		if err := s.repo.CreateLog(ctx, &log); err != nil {
			return err
		}

		t.NextDueDate = NextDueDate(t, now)
		return s.repo.UpdateTask(ctx, t)
	})
	if err != nil {
		return Task{}, TaskLog{}, err
	}
	return t, log, nil
}

func (s *Service) ListLogs(ctx context.Context, userID int64, f LogFilter) ([]TaskLog, error) {
	var out []TaskLog
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if f.DogID != nil {
			if err := s.owner.Require(ctx, userID, ownership.DogRef(*f.DogID)); err != nil {
				return err
			}
		}
		if f.TaskID != nil {
			if err := s.owner.Require(ctx, userID, taskRef(*f.TaskID)); err != nil {
				return err
			}
		}
		var err error
		out, err = s.repo.ListLogs(ctx, userID, f)
		return err
	})
	return out, err
}

func taskRef(id int64) ownership.Ref {
	return ownership.Ref{Type: ownership.EntityCareTask, ID: id}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
