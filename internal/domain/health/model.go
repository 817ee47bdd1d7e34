package health

import "time"

// VetVisit: fecha con granularidad de día (medianoche UTC).
type VetVisit struct {
	ID    int64     `db:"id"`
	DogID int64     `db:"dog_id"`
	Date  time.Time `db:"date"`

	VetName                string `db:"vet_name"`
	Reason                 string `db:"reason"`
	Diagnosis              string `db:"diagnosis"`
	TreatmentAndMedication string `db:"treatment_and_medication"`
	NotesMarkdown          string `db:"notes_markdown"`
}

type Vaccination struct {
	ID          int64      `db:"id"`
	DogID       int64      `db:"dog_id"`
	Date        time.Time  `db:"date"`
	VaccineType string     `db:"vaccine_type"`
	ValidUntil  *time.Time `db:"valid_until"`
	Notes       string     `db:"notes"`
}

const DefaultCurrency = "CHF"

// Invoice cuelga de un Dog, de una VetVisit, o de ambos (al menos uno).
type Invoice struct {
	ID         int64  `db:"id"`
	DogID      *int64 `db:"dog_id"`
	VetVisitID *int64 `db:"vet_visit_id"`

	Date        time.Time `db:"date"`
	Amount      float64   `db:"amount"`
	Currency    string    `db:"currency"`
	Description string    `db:"description"`
	FileURL     string    `db:"file_url"`
}
