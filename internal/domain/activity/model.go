package activity

import "time"

// Kind del item del feed.
// @Enum WALK, TRAINING, VET, CARE
type Kind string

const (
	KindWalk     Kind = "WALK"
	KindTraining Kind = "TRAINING"
	KindVet      Kind = "VET"
	KindCare     Kind = "CARE"
)

// Item es una entrada del feed. Datetime de visitas vet es la medianoche UTC del día.
type Item struct {
	Type        Kind
	ID          int64
	Datetime    time.Time
	Title       string
	Description *string
	DogNames    []string
}
