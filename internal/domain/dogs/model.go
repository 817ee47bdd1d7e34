package dogs

import "time"

// Sex define el sexo del perro.
// @Enum MALE, FEMALE, UNKNOWN
type Sex string

const (
	SexMale    Sex = "MALE"
	SexFemale  Sex = "FEMALE"
	SexUnknown Sex = "UNKNOWN"
)

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Dog es la raíz de ownership de casi todo el resto de entidades.
type Dog struct {
	ID          int64 `db:"id"`
	OwnerUserID int64 `db:"owner_user_id"`

	Name        string     `db:"name"`
	Breed       string     `db:"breed"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	Sex         Sex        `db:"sex"`
	WeightKg    *float64   `db:"weight_kg"`

	AvatarImageURL string `db:"avatar_image_url"`
	Notes          string `db:"notes"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Details se completa en Create/Get; no es columna.
	Details *ProfileDetails `db:"-"`
}

// ProfileDetails es 1:1 con Dog y nunca falta una vez creado el perro.
type ProfileDetails struct {
	ID    int64 `db:"id"`
	DogID int64 `db:"dog_id"`

	Allergies           string `db:"allergies"`
	ForbiddenFoods      string `db:"forbidden_foods"`
	PreferredFoods      string `db:"preferred_foods"`
	DiagnosedConditions string `db:"diagnosed_conditions"`
	CareNotes           string `db:"care_notes"`
}
