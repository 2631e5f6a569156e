package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Event mirrors the 'events' table. Date and Time stay strings end to end;
// the API passes them through verbatim and never parses them.
type Event struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventColumns = "id,title,description,date,time,location,image,created_at,updated_at"

// Create inserts an event row and returns it with store-managed timestamps.
func (r *EventRepo) Create(ctx context.Context, title, description, date, tm, location, image string) (Event, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (title, description, date, time, location, image) VALUES (?,?,?,?,?,?)",
		title, description, date, tm, location, image)
	if err != nil {
		return Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Event{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// ListAll returns every event. Order is database-default; callers must not
// rely on it.
func (r *EventRepo) ListAll(ctx context.Context) ([]Event, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+eventColumns+" FROM events")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time,
			&e.Location, &e.Image, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID fetches one event. ErrNotFound when no match.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (Event, error) {
	var e Event
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+eventColumns+" FROM events WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Time,
		&e.Location, &e.Image, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	return e, err
}
