package equipment

import "time"

// Type
// @Enum LEASH, HARNESS, COLLAR, TOY, BED, BOWL, OTHER
type Type string

const (
	TypeLeash   Type = "LEASH"
	TypeHarness Type = "HARNESS"
	TypeCollar  Type = "COLLAR"
	TypeToy     Type = "TOY"
	TypeBed     Type = "BED"
	TypeBowl    Type = "BOWL"
	TypeOther   Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLeash, TypeHarness, TypeCollar, TypeToy, TypeBed, TypeBowl, TypeOther:
		return true
	}
	return false
}

type Item struct {
	ID    int64 `db:"id"`
	DogID int64 `db:"dog_id"`

	Type         Type       `db:"type"`
	Name         string     `db:"name"`
	Description  string     `db:"description"`
	PurchaseDate *time.Time `db:"purchase_date"`
	Brand        string     `db:"brand"`
	Size         string     `db:"size"`
	Notes        string     `db:"notes"`
	IsActive     bool       `db:"is_active"`
}
