package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-registration/internal/model"
)

// ContentRepo reads the published site content: keynote speakers and the
// conference schedule.  Both tables are effectively static between deploys,
// which is why their public endpoints sit behind the response cache.
type ContentRepo struct{ DB *sql.DB }

func NewContentRepo(db *sql.DB) *ContentRepo { return &ContentRepo{DB: db} }

// Speakers returns all keynote speakers in display order.
func (r *ContentRepo) Speakers(ctx context.Context) ([]model.Speaker, error) {
	const q = `SELECT id, name, title, affiliation, photo_url, display_order
			   FROM speakers ORDER BY display_order`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Speaker
	for rows.Next() {
		var s model.Speaker
		if err := rows.Scan(&s.ID, &s.Name, &s.Title, &s.Affiliation, &s.PhotoURL, &s.Order); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Schedule returns the programme ordered by day and slot.
func (r *ContentRepo) Schedule(ctx context.Context) ([]model.ScheduleItem, error) {
	const q = `SELECT id, day, starts_at, ends_at, title, location, display_order
			   FROM schedule_items ORDER BY day, display_order`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ScheduleItem
	for rows.Next() {
		var it model.ScheduleItem
		if err := rows.Scan(&it.ID, &it.Day, &it.StartsAt, &it.EndsAt, &it.Title, &it.Location, &it.Order); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
