package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// EventStore is the slice of the event store the event endpoints need.
type EventStore interface {
	Create(ctx context.Context, title, description, date, tm, location, image string) (repository.Event, error)
	ListAll(ctx context.Context) ([]repository.Event, error)
	GetByID(ctx context.Context, id uint64) (repository.Event, error)
}

// EventHandler bundles dependencies for event creation and browsing.
type EventHandler struct {
	Cfg    config.Config
	Events EventStore
	Users  UserStore

	// Publish is swappable in tests; defaults to the rabbitmq publisher.
	Publish func(ctx context.Context, ev queue.EventCreatedEvent) error
}

func NewEventHandler(cfg config.Config, events EventStore, users UserStore) *EventHandler {
	return &EventHandler{Cfg: cfg, Events: events, Users: users, Publish: queue.PublishEventCreated}
}

// CreateEvent inserts an event on behalf of an admin. The route is already
// behind JWTAuth and RequireRole("admin"), but the role is re-checked against
// the live user row so authorization reflects the current role, not the
// claim frozen into the token at login.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "No token provided"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Failed to authenticate token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create event"})
	}
	if u.Role != "admin" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Only admins can create events"})
	}

	title := strings.TrimSpace(c.FormValue("title"))
	description := strings.TrimSpace(c.FormValue("description"))
	eventDate := strings.TrimSpace(c.FormValue("eventDate"))
	eventTime := strings.TrimSpace(c.FormValue("eventTime"))
	location := strings.TrimSpace(c.FormValue("location"))
	if title == "" || description == "" || eventDate == "" || eventTime == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}

	image, err := h.saveImage(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to store image"})
	}

	ev, err := h.Events.Create(ctx, title, description, eventDate, eventTime, location, image)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create event"})
	}

	// Best effort: broker trouble never fails the request.
	if err := h.Publish(ctx, queue.EventCreatedEvent{
		EventID:   ev.ID,
		Title:     ev.Title,
		Date:      ev.Date,
		Time:      ev.Time,
		Location:  ev.Location,
		CreatedBy: u.Email,
		CreatedAt: ev.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Printf("event-created publish failed: %v", err)
	}

	return c.JSON(http.StatusCreated, ev)
}

// saveImage writes the optional uploaded image to the upload directory under
// a timestamp-derived name and returns its public path. Returns "" when no
// file was uploaded.
func (h *EventHandler) saveImage(c echo.Context) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		// No file attached; the image column stays empty.
		return "", nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(h.Cfg.UploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// ListEvents returns all events. Order is database-default and callers must
// not rely on it.
func (h *EventHandler) ListEvents(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	events, err := h.Events.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch events"})
	}
	return c.JSON(http.StatusOK, events)
}

// GetEvent returns one event by id. An absent or malformed id is a 404,
// never a 500.
func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Event not found"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ev, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to fetch event"})
	}
	return c.JSON(http.StatusOK, ev)
}
