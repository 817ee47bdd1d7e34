package tags

import "dog-care-api/internal/domain/ownership"

// Tag pertenece a un usuario; el nombre es único por usuario.
type Tag struct {
	ID     int64  `db:"id"`
	UserID int64  `db:"user_id"`
	Name   string `db:"name"`
}

// Assignment apunta a (entity_type, entity_id) sin FK: si se borra la entidad
// etiquetada la asignación queda huérfana. Borrar el Tag sí la borra.
type Assignment struct {
	ID         int64                `db:"id"`
	TagID      int64                `db:"tag_id"`
	EntityType ownership.EntityType `db:"entity_type"`
	EntityID   int64                `db:"entity_id"`
}

func (a Assignment) Target() ownership.Ref {
	return ownership.Ref{Type: a.EntityType, ID: a.EntityID}
}
