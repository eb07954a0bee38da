// Package services содержит бизнес-логику каталога мероприятий
// с кешированием списков и экспортом в календарь.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-portal/internal/lib/ics"
	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// Фиксированные ключи и TTL кеша списков. Кеш не инвалидируется при
// записях: мероприятия создаются только при заполнении данных, поэтому
// устаревание ограничено TTL.
const (
	homepageCacheKey = "homepage_events"
	listCacheKey     = "events_list"
	listCacheTTL     = 300 * time.Second
	recentLimit      = 5
)

// EventRepository определяет методы для чтения мероприятий из хранилища.
type EventRepository interface {
	// ListRecentEvents возвращает последние мероприятия, новые первыми.
	ListRecentEvents(ctx context.Context, limit int) ([]*models.Event, error)
	// ListEvents возвращает все мероприятия.
	ListEvents(ctx context.Context) ([]*models.Event, error)
	// GetEvent возвращает мероприятие по ID.
	GetEvent(ctx context.Context, id int) (*models.Event, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// EventService обслуживает чтение каталога мероприятий через кеш.
type EventService struct {
	repo  EventRepository
	cache Cache
	log   *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, cache Cache, log *slog.Logger) *EventService {
	return &EventService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Recent возвращает последние мероприятия для главной страницы,
// используя кеш или хранилище. Ошибка кеша не валит запрос.
func (s *EventService) Recent(ctx context.Context) ([]*models.Event, error) {
	return s.cachedList(ctx, homepageCacheKey, func(ctx context.Context) ([]*models.Event, error) {
		return s.repo.ListRecentEvents(ctx, recentLimit)
	})
}

// List возвращает все мероприятия, используя кеш или хранилище.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	return s.cachedList(ctx, listCacheKey, s.repo.ListEvents)
}

// Read возвращает мероприятие по ID. Карточка мероприятия не кешируется.
func (s *EventService) Read(ctx context.Context, id int) (*models.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// ExportICS возвращает календарный объект мероприятия и имя вложения.
func (s *EventService) ExportICS(ctx context.Context, id int) ([]byte, string, error) {
	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, "", err
	}
	body := ics.Build(event.ID, event.Title, event.Location, event.Description,
		event.EventDateTime, time.Now())
	return body, ics.Filename(event.ID), nil
}

func (s *EventService) cachedList(ctx context.Context, key string, load func(context.Context) ([]*models.Event, error)) ([]*models.Event, error) {
	var result []*models.Event
	found, err := s.cache.Get(ctx, key, &result)
	if err != nil {
		s.log.Warn("failed to read events from cache", slog.String("key", key), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, result, listCacheTTL); err != nil {
		s.log.Warn("failed to cache events", slog.String("key", key), sl.Err(err))
	}
	return result, nil
}

// SplitUpcoming делит мероприятия на будущие и прошедшие относительно now.
func SplitUpcoming(events []*models.Event, now time.Time) (upcoming, past []*models.Event) {
	for _, e := range events {
		if e.EventDateTime.After(now) {
			upcoming = append(upcoming, e)
		} else {
			past = append(past, e)
		}
	}
	return upcoming, past
}
