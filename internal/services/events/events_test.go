package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListRecentEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) ListEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestList_CacheMiss(t *testing.T) {
	events := []*models.Event{{ID: 1, Title: "Go Meetup"}}

	repo := new(RepoMock)
	repo.On("ListEvents", mock.Anything).Return(events, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "events_list", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "events_list", events, 300*time.Second).Return(nil).Once()

	svc := NewEventService(repo, cache, newNoopLogger())
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, events, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestList_CacheHit(t *testing.T) {
	cached := []*models.Event{{ID: 2, Title: "Conference"}}

	repo := new(RepoMock)

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "events_list", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*[]*models.Event)
			*out = cached
		}).Return(true, nil).Once()

	svc := NewEventService(repo, cache, newNoopLogger())
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "ListEvents", mock.Anything)
}

func TestList_CacheErrorFallsThrough(t *testing.T) {
	events := []*models.Event{{ID: 3}}

	repo := new(RepoMock)
	repo.On("ListEvents", mock.Anything).Return(events, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "events_list", mock.Anything).
		Return(false, errors.New("redis is down")).Once()
	cache.On("Set", mock.Anything, "events_list", events, 300*time.Second).
		Return(errors.New("redis is down")).Once()

	svc := NewEventService(repo, cache, newNoopLogger())
	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, events, got)
}

func TestRecent_UsesHomepageKeyAndLimit(t *testing.T) {
	events := []*models.Event{{ID: 1}, {ID: 2}}

	repo := new(RepoMock)
	repo.On("ListRecentEvents", mock.Anything, 5).Return(events, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "homepage_events", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "homepage_events", events, 300*time.Second).Return(nil).Once()

	svc := NewEventService(repo, cache, newNoopLogger())
	got, err := svc.Recent(context.Background())

	require.NoError(t, err)
	assert.Equal(t, events, got)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRead(t *testing.T) {
	event := &models.Event{ID: 7, Title: "Workshop"}

	repo := new(RepoMock)
	repo.On("GetEvent", mock.Anything, 7).Return(event, nil).Once()

	svc := NewEventService(repo, new(CacheMock), newNoopLogger())
	got, err := svc.Read(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, event, got)
}

func TestExportICS(t *testing.T) {
	event := &models.Event{
		ID:            7,
		Title:         "Workshop",
		Location:      "Moscow",
		Description:   "Hands-on",
		EventDateTime: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	repo := new(RepoMock)
	repo.On("GetEvent", mock.Anything, 7).Return(event, nil).Once()

	svc := NewEventService(repo, new(CacheMock), newNoopLogger())
	body, filename, err := svc.ExportICS(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "event_7.ics", filename)
	assert.Contains(t, string(body), "DTSTART:20250301T100000Z")
	assert.Contains(t, string(body), "DTEND:20250301T110000Z")
	assert.Contains(t, string(body), "SUMMARY:Workshop")
}

func TestExportICS_NotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetEvent", mock.Anything, 99).Return(nil, models.ErrNotFound).Once()

	svc := NewEventService(repo, new(CacheMock), newNoopLogger())
	_, _, err := svc.ExportICS(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSplitUpcoming(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := &models.Event{ID: 1, EventDateTime: now.Add(24 * time.Hour)}
	past := &models.Event{ID: 2, EventDateTime: now.Add(-24 * time.Hour)}
	exact := &models.Event{ID: 3, EventDateTime: now}

	upcoming, gone := SplitUpcoming([]*models.Event{future, past, exact}, now)

	assert.Equal(t, []*models.Event{future}, upcoming)
	// событие ровно в now считается прошедшим
	assert.Equal(t, []*models.Event{past, exact}, gone)
}

func TestSplitUpcoming_Empty(t *testing.T) {
	upcoming, past := SplitUpcoming(nil, time.Now())
	assert.Empty(t, upcoming)
	assert.Empty(t, past)
}
