package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// ListRecentEvents возвращает последние мероприятия, новые первыми.
func (s *Storage) ListRecentEvents(ctx context.Context, limit int) ([]*models.Event, error) {
	const op = "storage.ListRecentEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, event_datetime, location, is_public, created_date, description
			  FROM events
			  ORDER BY event_datetime DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		var item models.Event
		if err := rows.Scan(&item.ID, &item.Title, &item.EventDateTime, &item.Location,
			&item.IsPublic, &item.CreatedDate, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEvents возвращает все мероприятия, новые первыми.
func (s *Storage) ListEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, event_datetime, location, is_public, created_date, description
			  FROM events
			  ORDER BY event_datetime DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		var item models.Event
		if err := rows.Scan(&item.ID, &item.Title, &item.EventDateTime, &item.Location,
			&item.IsPublic, &item.CreatedDate, &item.Description); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetEvent возвращает мероприятие по его ID или models.ErrNotFound.
func (s *Storage) GetEvent(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.GetEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, event_datetime, location, is_public, created_date, description
			  FROM events
			  WHERE id = $1`
	var item models.Event
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title,
		&item.EventDateTime, &item.Location, &item.IsPublic, &item.CreatedDate, &item.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &item, nil
}
