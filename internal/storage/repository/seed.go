package repository

import (
	"context"
	"fmt"
	"time"
)

// Seed наполняет базу стартовыми данными: администратор, бесплатные
// подписки для пользователей без подписки, несколько мероприятий и
// консультантов. Повторный запуск ничего не дублирует.
func (s *Storage) Seed(ctx context.Context) error {
	const op = "storage.Seed"

	if err := s.seedAdmin(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.seedFreeSubscriptions(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.seedEvents(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.seedConsultants(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Storage) seedAdmin(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = 'admin')`).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO users (first_name, last_name, email, role_type, address,
			city, state_province, zip_code, country)
		VALUES ('Admin', 'User', 'admin', 'Admin', '123 Admin St',
			'AdminCity', 'AdminState', '00000', 'AdminLand')`)
	return err
}

// Подписки администратора не создаются: почта admin исключается,
// как и все пользователи, у которых подписка уже есть.
func (s *Storage) seedFreeSubscriptions(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, level, start_date, amount, is_active)
		SELECT u.id, 'Free', NOW(), 0.00, TRUE
		FROM users u
		WHERE u.email <> 'admin'
		  AND NOT EXISTS (SELECT 1 FROM subscriptions s WHERE s.user_id = u.id)`)
	return err
}

func (s *Storage) seedEvents(ctx context.Context) error {
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC().Truncate(time.Hour)
	samples := []struct {
		title    string
		start    time.Time
		location string
		desc     string
	}{
		{"Quarterly Members Meetup", now.AddDate(0, 0, 14), "Portland", "Open networking evening for all members."},
		{"Consulting Practice Workshop", now.AddDate(0, 0, 30), "Seattle", "Hands-on workshop on running an independent practice."},
		{"Annual Conference", now.AddDate(0, 2, 0), "Denver", "Two-day annual conference with invited speakers."},
		{"Introductory Webinar", now.AddDate(0, 0, -7), "Online", "Recorded introduction to the member area."},
	}
	for _, e := range samples {
		_, err := s.DB.ExecContext(ctx, `
			INSERT INTO events (title, event_datetime, location, description)
			VALUES ($1, $2, $3, $4)`,
			e.title, e.start, e.location, e.desc)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) seedConsultants(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO consultants (user_id, organization, summary)
		SELECT u.id, 'Independent', 'Member consultant.'
		FROM users u
		WHERE u.email <> 'admin'
		  AND NOT EXISTS (SELECT 1 FROM consultants c WHERE c.user_id = u.id)
		ORDER BY u.id
		LIMIT 5`)
	return err
}
