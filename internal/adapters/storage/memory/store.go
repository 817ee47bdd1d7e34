// Package memory es el store in-memory para modo dev y tests: todas las tablas
// detrás de un único mutex, con transacciones por snapshot/restore.
package memory

import (
	"context"
	"maps"
	"sync"

	"dog-care-api/internal/domain/care"
	"dog-care-api/internal/domain/dogs"
	"dog-care-api/internal/domain/equipment"
	"dog-care-api/internal/domain/health"
	"dog-care-api/internal/domain/tags"
	"dog-care-api/internal/domain/training"
	"dog-care-api/internal/domain/walks"
)

type tables struct {
	seq int64

	dogs         map[int64]dogs.Dog
	details      map[int64]dogs.ProfileDetails // por dog_id
	vetVisits    map[int64]health.VetVisit
	vaccinations map[int64]health.Vaccination
	invoices     map[int64]health.Invoice
	tasks        map[int64]care.Task
	taskLogs     map[int64]care.TaskLog
	goals        map[int64]training.Goal
	issues       map[int64]training.Issue
	trainingLogs map[int64]training.Log
	walks        map[int64]walks.Walk
	walkDogs     map[int64][]int64 // walk_id -> dog_ids
	equipment    map[int64]equipment.Item
	tags         map[int64]tags.Tag
	assignments  map[int64]tags.Assignment
}

func newTables() tables {
	return tables{
		dogs:         map[int64]dogs.Dog{},
		details:      map[int64]dogs.ProfileDetails{},
		vetVisits:    map[int64]health.VetVisit{},
		vaccinations: map[int64]health.Vaccination{},
		invoices:     map[int64]health.Invoice{},
		tasks:        map[int64]care.Task{},
		taskLogs:     map[int64]care.TaskLog{},
		goals:        map[int64]training.Goal{},
		issues:       map[int64]training.Issue{},
		trainingLogs: map[int64]training.Log{},
		walks:        map[int64]walks.Walk{},
		walkDogs:     map[int64][]int64{},
		equipment:    map[int64]equipment.Item{},
		tags:         map[int64]tags.Tag{},
		assignments:  map[int64]tags.Assignment{},
	}
}

// clone copia los mapas. Los valores se reemplazan enteros al escribir
// (nunca se mutan in place), así que alcanza con copia superficial.
func (t tables) clone() tables {
	return tables{
		seq:          t.seq,
		dogs:         maps.Clone(t.dogs),
		details:      maps.Clone(t.details),
		vetVisits:    maps.Clone(t.vetVisits),
		vaccinations: maps.Clone(t.vaccinations),
		invoices:     maps.Clone(t.invoices),
		tasks:        maps.Clone(t.tasks),
		taskLogs:     maps.Clone(t.taskLogs),
		goals:        maps.Clone(t.goals),
		issues:       maps.Clone(t.issues),
		trainingLogs: maps.Clone(t.trainingLogs),
		walks:        maps.Clone(t.walks),
		walkDogs:     maps.Clone(t.walkDogs),
		equipment:    maps.Clone(t.equipment),
		tags:         maps.Clone(t.tags),
		assignments:  maps.Clone(t.assignments),
	}
}

type Store struct {
	mu sync.Mutex
	t  tables
}

func NewStore() *Store {
	return &Store{t: newTables()}
}

type txKey struct{}

// WithinTx toma el lock por toda la función y restaura el snapshot si falla.
// Si ctx ya está dentro de una transacción de este store, se une a ella.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.t.clone()
	defer func() {
		if p := recover(); p != nil {
			s.t = snapshot
			panic(p)
		}
		if err != nil {
			s.t = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(*Store)
	return v == s
}

// enter toma el lock para operaciones sueltas (fuera de WithinTx).
func (s *Store) enter(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) nextID() int64 {
	s.t.seq++
	return s.t.seq
}
