package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Ticket mirrors the 'tickets' table: a purchase record tying a user to an
// event, with denormalized event fields and an opaque QR payload. No route
// reaches this table yet; the store exists as a capability the API layer can
// adopt later.
type Ticket struct {
	ID          uint64  `json:"id"`
	UserID      uint64  `json:"userid"`
	EventID     uint64  `json:"eventid"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	EventName   string  `json:"eventname"`
	EventDate   string  `json:"eventdate"`
	EventTime   string  `json:"eventtime"`
	TicketPrice float64 `json:"ticketprice"`
	QR          string  `json:"qr"`
	Count       int     `json:"count"`
}

type TicketRepo struct{ DB *sql.DB }

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{DB: db} }

const ticketColumns = "id,userid,eventid,name,email,eventname,eventdate,eventtime,ticketprice,qr,count"

// Create inserts a ticket row and returns it with the generated id.
func (r *TicketRepo) Create(ctx context.Context, t Ticket) (Ticket, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tickets (userid, eventid, name, email, eventname, eventdate, eventtime, ticketprice, qr, count) VALUES (?,?,?,?,?,?,?,?,?,?)",
		t.UserID, t.EventID, t.Name, t.Email, t.EventName, t.EventDate, t.EventTime, t.TicketPrice, t.QR, t.Count)
	if err != nil {
		return Ticket{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Ticket{}, err
	}
	t.ID = uint64(id)
	return t, nil
}

// ListAll returns every ticket in database-default order.
func (r *TicketRepo) ListAll(ctx context.Context) ([]Ticket, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+ticketColumns+" FROM tickets")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]Ticket, 0)
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(&t.ID, &t.UserID, &t.EventID, &t.Name, &t.Email,
			&t.EventName, &t.EventDate, &t.EventTime, &t.TicketPrice, &t.QR, &t.Count); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// GetByID fetches one ticket. ErrNotFound when no match.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (Ticket, error) {
	var t Ticket
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+ticketColumns+" FROM tickets WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.UserID, &t.EventID, &t.Name, &t.Email,
		&t.EventName, &t.EventDate, &t.EventTime, &t.TicketPrice, &t.QR, &t.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return Ticket{}, ErrNotFound
	}
	return t, err
}

// Update rewrites the mutable ticket fields and returns the updated row.
func (r *TicketRepo) Update(ctx context.Context, id uint64, t Ticket) (Ticket, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE tickets SET name=?, email=?, eventname=?, eventdate=?, eventtime=?, ticketprice=?, qr=?, count=? WHERE id=?",
		t.Name, t.Email, t.EventName, t.EventDate, t.EventTime, t.TicketPrice, t.QR, t.Count, id)
	if err != nil {
		return Ticket{}, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes a ticket and returns the row as it was before deletion.
func (r *TicketRepo) Delete(ctx context.Context, id uint64) (Ticket, error) {
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return Ticket{}, err
	}
	if _, err := r.DB.ExecContext(ctx, "DELETE FROM tickets WHERE id=?", id); err != nil {
		return Ticket{}, err
	}
	return t, nil
}
