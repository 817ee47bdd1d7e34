package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"dog-care-api/internal/domain/ownership"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// tablas cuyo único padre es el perro (columna dog_id)
var dogChildTables = map[ownership.EntityType]string{
	ownership.EntityVetVisit:      "vet_visits",
	ownership.EntityVaccination:   "vaccinations",
	ownership.EntityCareTask:      "care_tasks",
	ownership.EntityTrainingGoal:  "training_goals",
	ownership.EntityBehaviorIssue: "behavior_issues",
	ownership.EntityTrainingLog:   "training_logs",
	ownership.EntityEquipment:     "equipment_items",
}

// Chain implementa ownership.Chain con una query por salto.
// Las lecturas de raíces usan FOR SHARE: mientras dure la transacción el dueño
// no puede cambiar ni la fila desaparecer.
type Chain struct {
	db *sqlx.DB
}

func NewChain(db *sqlx.DB) *Chain {
	return &Chain{db: db}
}

func (c *Chain) Links(ctx context.Context, ref ownership.Ref) (ownership.Links, error) {
	q := conn(ctx, c.db)
	entity := string(ref.Type)

	root := func(table, col string) (ownership.Links, error) {
		var owner int64
		err := getOne(ctx, q, &owner, psql.Select(col).From(table).
			Where(sq.Eq{"id": ref.ID}).Suffix("FOR SHARE"), entity)
		if err != nil {
			return ownership.Links{}, err
		}
		return ownership.Links{OwnerUserID: &owner}, nil
	}

	switch ref.Type {
	case ownership.EntityDog:
		return root("dogs", "owner_user_id")
	case ownership.EntityWalk:
		return root("walks", "user_id")
	case ownership.EntityTag:
		return root("tags", "user_id")

	case ownership.EntityInvoice:
		var row struct {
			DogID      sql.NullInt64 `db:"dog_id"`
			VetVisitID sql.NullInt64 `db:"vet_visit_id"`
		}
		err := getOne(ctx, q, &row, psql.Select("dog_id", "vet_visit_id").From("invoices").
			Where(sq.Eq{"id": ref.ID}), entity)
		if err != nil {
			return ownership.Links{}, err
		}
		var l ownership.Links
		if row.DogID.Valid {
			l.Parents = append(l.Parents, ownership.DogRef(row.DogID.Int64))
		}
		if row.VetVisitID.Valid {
			l.Parents = append(l.Parents, ownership.Ref{Type: ownership.EntityVetVisit, ID: row.VetVisitID.Int64})
		}
		return l, nil

	case ownership.EntityCareTaskLog:
		var taskID int64
		err := getOne(ctx, q, &taskID, psql.Select("care_task_id").From("care_task_logs").
			Where(sq.Eq{"id": ref.ID}), entity)
		if err != nil {
			return ownership.Links{}, err
		}
		return ownership.Links{Parents: []ownership.Ref{{Type: ownership.EntityCareTask, ID: taskID}}}, nil
	}

	table, ok := dogChildTables[ref.Type]
	if !ok {
		return ownership.Links{}, fmt.Errorf("unknown entity type %q", ref.Type)
	}
	var dogID int64
	if err := getOne(ctx, q, &dogID, psql.Select("dog_id").From(table).Where(sq.Eq{"id": ref.ID}), entity); err != nil {
		return ownership.Links{}, err
	}
	return ownership.Links{Parents: []ownership.Ref{ownership.DogRef(dogID)}}, nil
}
