package handler_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
)

const testSecret = "test-secret"

// fakeUserStore is an in-memory UserStore with an injectable failure.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]repository.User
	err    error // when set, every call fails with it
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint64]repository.User)}
}

func (f *fakeUserStore) Create(_ context.Context, name, email, passwordHash, role string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.User{}, f.err
	}
	email = strings.ToLower(email)
	for _, u := range f.users {
		if u.Email == email {
			return repository.User{}, repository.ErrEmailExists
		}
	}
	f.nextID++
	u := repository.User{ID: f.nextID, Name: name, Email: email, Password: passwordHash, Role: role}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.User{}, f.err
	}
	for _, u := range f.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return repository.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (repository.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.User{}, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return repository.User{}, repository.ErrNotFound
	}
	return u, nil
}

// setRole rewrites a stored user's role, simulating an admin change between
// token issuance and the next request.
func (f *fakeUserStore) setRole(id uint64, role string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	u.Role = role
	f.users[id] = u
}

func (f *fakeUserStore) delete(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

// fakeEventStore is an in-memory EventStore with an injectable failure.
type fakeEventStore struct {
	mu     sync.Mutex
	nextID uint64
	events []repository.Event
	err    error
}

func newFakeEventStore() *fakeEventStore { return &fakeEventStore{} }

func (f *fakeEventStore) Create(_ context.Context, title, description, date, tm, location, image string) (repository.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.Event{}, f.err
	}
	f.nextID++
	e := repository.Event{
		ID: f.nextID, Title: title, Description: description,
		Date: date, Time: tm, Location: location, Image: image,
	}
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventStore) ListAll(_ context.Context) ([]repository.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.Event, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id uint64) (repository.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return repository.Event{}, f.err
	}
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return repository.Event{}, repository.ErrNotFound
}

func (f *fakeEventStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// newTestServer wires the real routes and middleware chains around the fakes.
// The rate limiter and cache slots get pass-throughs; published queue
// messages are collected instead of hitting a broker.
func newTestServer(t *testing.T, users *fakeUserStore, events *fakeEventStore) (*echo.Echo, *[]queue.EventCreatedEvent) {
	t.Helper()
	cfg := config.Config{
		JWTSecret:  testSecret,
		BcryptCost: 4,
		UploadDir:  t.TempDir(),
	}

	var published []queue.EventCreatedEvent
	eh := handler.NewEventHandler(cfg, events, users)
	eh.Publish = func(_ context.Context, ev queue.EventCreatedEvent) error {
		published = append(published, ev)
		return nil
	}

	pass := func(next echo.HandlerFunc) echo.HandlerFunc { return next }

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), testSecret)
	router.RegisterEvents(e, eh, testSecret, pass, pass, pass)
	return e, &published
}
