package memory

import (
	"context"
	"slices"
	"sort"

	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/platform/apperr"
	"dog-care-api/internal/platform/paging"
)

type TrainingRepo struct {
	s *Store
}

func NewTrainingRepo(s *Store) *TrainingRepo {
	return &TrainingRepo{s: s}
}

func (r *TrainingRepo) CreateGoal(ctx context.Context, g *training.Goal) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[g.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	g.ID = r.s.nextID()
	r.s.t.goals[g.ID] = *g
	return nil
}

func (r *TrainingRepo) GetGoal(ctx context.Context, id int64) (training.Goal, error) {
	defer r.s.enter(ctx)()

	g, ok := r.s.t.goals[id]
	if !ok {
		return training.Goal{}, apperr.NotFound("training goal")
	}
	return g, nil
}

func (r *TrainingRepo) ListGoals(ctx context.Context, userID int64, f training.ListFilter) ([]training.Goal, error) {
	defer r.s.enter(ctx)()

	out := make([]training.Goal, 0)
	for _, g := range r.s.t.goals {
		if r.s.t.ownsDog(userID, g.DogID) && matchesDog(f.DogID, g.DogID) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paging.Slice(out, f.Page), nil
}

func (r *TrainingRepo) UpdateGoal(ctx context.Context, g training.Goal) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.goals[g.ID]; !ok {
		return apperr.NotFound("training goal")
	}
	r.s.t.goals[g.ID] = g
	return nil
}

func (r *TrainingRepo) DeleteGoal(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.goals[id]; !ok {
		return apperr.NotFound("training goal")
	}
	delete(r.s.t.goals, id)
	// ON DELETE SET NULL
	for k, l := range r.s.t.trainingLogs {
		if l.TrainingGoalID != nil && *l.TrainingGoalID == id {
			l.TrainingGoalID = nil
			r.s.t.trainingLogs[k] = l
		}
	}
	return nil
}

func (r *TrainingRepo) CreateIssue(ctx context.Context, i *training.Issue) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[i.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	i.ID = r.s.nextID()
	r.s.t.issues[i.ID] = *i
	return nil
}

func (r *TrainingRepo) GetIssue(ctx context.Context, id int64) (training.Issue, error) {
	defer r.s.enter(ctx)()

	i, ok := r.s.t.issues[id]
	if !ok {
		return training.Issue{}, apperr.NotFound("behavior issue")
	}
	return i, nil
}

func (r *TrainingRepo) ListIssues(ctx context.Context, userID int64, f training.ListFilter) ([]training.Issue, error) {
	defer r.s.enter(ctx)()

	out := make([]training.Issue, 0)
	for _, i := range r.s.t.issues {
		if r.s.t.ownsDog(userID, i.DogID) && matchesDog(f.DogID, i.DogID) {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return paging.Slice(out, f.Page), nil
}

func (r *TrainingRepo) UpdateIssue(ctx context.Context, i training.Issue) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.issues[i.ID]; !ok {
		return apperr.NotFound("behavior issue")
	}
	r.s.t.issues[i.ID] = i
	return nil
}

func (r *TrainingRepo) DeleteIssue(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.issues[id]; !ok {
		return apperr.NotFound("behavior issue")
	}
	delete(r.s.t.issues, id)
	for k, l := range r.s.t.trainingLogs {
		if l.BehaviorIssueID != nil && *l.BehaviorIssueID == id {
			l.BehaviorIssueID = nil
			r.s.t.trainingLogs[k] = l
		}
	}
	return nil
}

func (r *TrainingRepo) CreateLog(ctx context.Context, l *training.Log) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.dogs[l.DogID]; !ok {
		return apperr.Validation("dog does not exist")
	}
	l.ID = r.s.nextID()
	stored := *l
	stored.MediaURLs = slices.Clone(l.MediaURLs)
	r.s.t.trainingLogs[l.ID] = stored
	return nil
}

func (r *TrainingRepo) GetLog(ctx context.Context, id int64) (training.Log, error) {
	defer r.s.enter(ctx)()

	l, ok := r.s.t.trainingLogs[id]
	if !ok {
		return training.Log{}, apperr.NotFound("training log")
	}
	l.MediaURLs = slices.Clone(l.MediaURLs)
	return l, nil
}

func (r *TrainingRepo) ListLogs(ctx context.Context, userID int64, f training.ListFilter) ([]training.Log, error) {
	defer r.s.enter(ctx)()

	out := make([]training.Log, 0)
	for _, l := range r.s.t.trainingLogs {
		if r.s.t.ownsDog(userID, l.DogID) && matchesDog(f.DogID, l.DogID) {
			l.MediaURLs = slices.Clone(l.MediaURLs)
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Datetime.Equal(out[j].Datetime) {
			return out[i].Datetime.After(out[j].Datetime)
		}
		return out[i].ID > out[j].ID
	})
	return paging.Slice(out, f.Page), nil
}

func (r *TrainingRepo) UpdateLog(ctx context.Context, l training.Log) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.trainingLogs[l.ID]; !ok {
		return apperr.NotFound("training log")
	}
	l.MediaURLs = slices.Clone(l.MediaURLs)
	r.s.t.trainingLogs[l.ID] = l
	return nil
}

func (r *TrainingRepo) DeleteLog(ctx context.Context, id int64) error {
	defer r.s.enter(ctx)()

	if _, ok := r.s.t.trainingLogs[id]; !ok {
		return apperr.NotFound("training log")
	}
	delete(r.s.t.trainingLogs, id)
	return nil
}
