package postgres

import (
	"context"

	"dog-care-api/internal/domain/equipment"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var equipmentColumns = []string{
	"id", "dog_id", "type", "name", "description", "purchase_date", "brand", "size", "notes", "is_active",
}

type EquipmentRepo struct {
	db *sqlx.DB
}

func NewEquipmentRepo(db *sqlx.DB) *EquipmentRepo {
	return &EquipmentRepo{db: db}
}

func (r *EquipmentRepo) Create(ctx context.Context, it *equipment.Item) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("equipment_items").
		Columns("dog_id", "type", "name", "description", "purchase_date", "brand", "size", "notes", "is_active").
		Values(it.DogID, it.Type, it.Name, it.Description, it.PurchaseDate, it.Brand, it.Size, it.Notes, it.IsActive),
		"equipment item")
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

func (r *EquipmentRepo) Get(ctx context.Context, id int64) (equipment.Item, error) {
	var it equipment.Item
	err := getOne(ctx, conn(ctx, r.db), &it,
		psql.Select(equipmentColumns...).From("equipment_items").Where(sq.Eq{"id": id}), "equipment item")
	return it, err
}

func (r *EquipmentRepo) List(ctx context.Context, userID int64, f equipment.ListFilter) ([]equipment.Item, error) {
	out := make([]equipment.Item, 0)
	err := selectAll(ctx, conn(ctx, r.db), &out, withPage(
		ownedBy("equipment_items", "e", equipmentColumns, userID, f.DogID).OrderBy("e.id ASC"), f.Page))
	return out, err
}

func (r *EquipmentRepo) Update(ctx context.Context, it equipment.Item) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("equipment_items").
		SetMap(map[string]any{
			"type":          it.Type,
			"name":          it.Name,
			"description":   it.Description,
			"purchase_date": it.PurchaseDate,
			"brand":         it.Brand,
			"size":          it.Size,
			"notes":         it.Notes,
			"is_active":     it.IsActive,
		}).
		Where(sq.Eq{"id": it.ID}), "equipment item")
}

func (r *EquipmentRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("equipment_items").Where(sq.Eq{"id": id}), "equipment item")
}
