package postgres

import (
	"context"

	"dog-care-api/internal/domain/walks"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var walkColumns = []string{
	"id", "user_id", "start_datetime", "duration_minutes", "mood", "distance_km",
	"notes_markdown", "video_urls", "gpx_file_url", "has_route_data",
}

type walkRow struct {
	walks.Walk
	VideoURLs pq.StringArray `db:"video_urls"`
}

type walkDogRow struct {
	WalkID int64 `db:"walk_id"`
	DogID  int64 `db:"dog_id"`
}

type WalkRepo struct {
	db *sqlx.DB
}

func NewWalkRepo(db *sqlx.DB) *WalkRepo {
	return &WalkRepo{db: db}
}

func (r *WalkRepo) Create(ctx context.Context, w *walks.Walk) error {
	id, err := insertID(ctx, conn(ctx, r.db), psql.Insert("walks").
		Columns("user_id", "start_datetime", "duration_minutes", "mood", "distance_km",
			"notes_markdown", "video_urls", "gpx_file_url", "has_route_data").
		Values(w.UserID, w.StartDatetime, w.DurationMinutes, w.Mood, w.DistanceKm,
			w.NotesMarkdown, textArray(w.VideoURLs), w.GPXFileURL, w.HasRouteData), "walk")
	if err != nil {
		return err
	}
	w.ID = id
	return nil
}

func (r *WalkRepo) Get(ctx context.Context, id int64) (walks.Walk, error) {
	q := conn(ctx, r.db)

	var row walkRow
	err := getOne(ctx, q, &row, psql.Select(walkColumns...).From("walks").Where(sq.Eq{"id": id}), "walk")
	if err != nil {
		return walks.Walk{}, err
	}
	out, err := r.withDogs(ctx, q, []walkRow{row})
	if err != nil {
		return walks.Walk{}, err
	}
	return out[0], nil
}

func (r *WalkRepo) List(ctx context.Context, userID int64, f walks.ListFilter) ([]walks.Walk, error) {
	q := conn(ctx, r.db)

	b := psql.Select(prefixed("w", walkColumns)...).
		From("walks w").
		Where(sq.Eq{"w.user_id": userID})
	if f.DogID != nil {
		b = b.Where(sq.Expr("EXISTS (SELECT 1 FROM walk_dogs wd WHERE wd.walk_id = w.id AND wd.dog_id = ?)", *f.DogID))
	}

	var rows []walkRow
	if err := selectAll(ctx, q, &rows, withPage(b.OrderBy("w.start_datetime DESC", "w.id DESC"), f.Page)); err != nil {
		return nil, err
	}
	return r.withDogs(ctx, q, rows)
}

// withDogs carga walk_dogs de todas las filas en una sola query.
func (r *WalkRepo) withDogs(ctx context.Context, q querier, rows []walkRow) ([]walks.Walk, error) {
	out := make([]walks.Walk, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	var links []walkDogRow
	err := selectAll(ctx, q, &links, psql.Select("walk_id", "dog_id").
		From("walk_dogs").
		Where(sq.Eq{"walk_id": ids}).
		OrderBy("walk_id", "dog_id"))
	if err != nil {
		return nil, err
	}
	dogsByWalk := make(map[int64][]int64, len(rows))
	for _, l := range links {
		dogsByWalk[l.WalkID] = append(dogsByWalk[l.WalkID], l.DogID)
	}

	for _, row := range rows {
		w := row.Walk
		w.VideoURLs = []string(row.VideoURLs)
		if w.VideoURLs == nil {
			w.VideoURLs = []string{}
		}
		w.DogIDs = dogsByWalk[w.ID]
		if w.DogIDs == nil {
			w.DogIDs = []int64{}
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *WalkRepo) Update(ctx context.Context, w walks.Walk) error {
	return execOne(ctx, conn(ctx, r.db), psql.Update("walks").
		SetMap(map[string]any{
			"start_datetime":   w.StartDatetime,
			"duration_minutes": w.DurationMinutes,
			"mood":             w.Mood,
			"distance_km":      w.DistanceKm,
			"notes_markdown":   w.NotesMarkdown,
			"video_urls":       textArray(w.VideoURLs),
			"gpx_file_url":     w.GPXFileURL,
			"has_route_data":   w.HasRouteData,
		}).
		Where(sq.Eq{"id": w.ID}), "walk")
}

func (r *WalkRepo) Delete(ctx context.Context, id int64) error {
	return execOne(ctx, conn(ctx, r.db), psql.Delete("walks").Where(sq.Eq{"id": id}), "walk")
}

func (r *WalkRepo) SetDogs(ctx context.Context, walkID int64, dogIDs []int64) error {
	q := conn(ctx, r.db)
	if err := exec(ctx, q, psql.Delete("walk_dogs").Where(sq.Eq{"walk_id": walkID})); err != nil {
		return err
	}
	if len(dogIDs) == 0 {
		return nil
	}

	ins := psql.Insert("walk_dogs").Columns("walk_id", "dog_id")
	for _, id := range dogIDs {
		ins = ins.Values(walkID, id)
	}
	return exec(ctx, q, ins)
}
