package ownership

import "strings"

// EntityType identifica un tipo de entidad. Es también el valor que se guarda
// en tag_assignments.entity_type.
type EntityType string

const (
	EntityDog           EntityType = "DOG"
	EntityVetVisit      EntityType = "VET_VISIT"
	EntityVaccination   EntityType = "VACCINATION"
	EntityInvoice       EntityType = "INVOICE"
	EntityCareTask      EntityType = "CARE_TASK"
	EntityCareTaskLog   EntityType = "CARE_TASK_LOG"
	EntityTrainingGoal  EntityType = "TRAINING_GOAL"
	EntityBehaviorIssue EntityType = "BEHAVIOR_ISSUE"
	EntityTrainingLog   EntityType = "TRAINING_LOG"
	EntityWalk          EntityType = "WALK"
	EntityEquipment     EntityType = "EQUIPMENT"
	EntityTag           EntityType = "TAG"
)

var known = map[EntityType]struct{}{
	EntityDog: {}, EntityVetVisit: {}, EntityVaccination: {}, EntityInvoice: {},
	EntityCareTask: {}, EntityCareTaskLog: {}, EntityTrainingGoal: {}, EntityBehaviorIssue: {},
	EntityTrainingLog: {}, EntityWalk: {}, EntityEquipment: {}, EntityTag: {},
}

// ParseEntityType normaliza (trim + upper) y valida contra los tipos conocidos.
func ParseEntityType(s string) (EntityType, bool) {
	t := EntityType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := known[t]
	return t, ok
}

// Ref apunta a una entidad concreta.
type Ref struct {
	Type EntityType
	ID   int64
}

func DogRef(id int64) Ref { return Ref{Type: EntityDog, ID: id} }

// Links es un salto en la cadena de ownership.
// Las raíces (dog, walk, tag) traen OwnerUserID; el resto trae Parents
// en orden de preferencia (p.ej. invoice: dog directo antes que vet visit).
type Links struct {
	OwnerUserID *int64
	Parents     []Ref
}
