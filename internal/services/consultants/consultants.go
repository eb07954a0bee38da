// Package services содержит бизнес-логику каталога консультантов.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// Каталог консультантов меняется реже мероприятий, TTL длиннее.
const (
	cacheKey = "consultants_list"
	cacheTTL = 600 * time.Second
)

// ConsultantRepository определяет чтение каталога консультантов.
type ConsultantRepository interface {
	ListConsultants(ctx context.Context) ([]*models.Consultant, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ConsultantService обслуживает каталог консультантов через кеш.
type ConsultantService struct {
	repo  ConsultantRepository
	cache Cache
	log   *slog.Logger
}

// NewConsultantService создает новый экземпляр ConsultantService.
func NewConsultantService(repo ConsultantRepository, cache Cache, log *slog.Logger) *ConsultantService {
	return &ConsultantService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// List возвращает каталог консультантов, используя кеш или хранилище.
func (s *ConsultantService) List(ctx context.Context) ([]*models.Consultant, error) {
	var result []*models.Consultant
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read consultants from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListConsultants(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, cacheTTL); err != nil {
		s.log.Warn("failed to cache consultants", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}
