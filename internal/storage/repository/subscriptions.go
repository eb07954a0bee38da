package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// CreateUserWithFreeSubscription создаёт пользователя и его бесплатную
// активную подписку в одной транзакции и возвращает ID пользователя.
// Частичных строк не остаётся: при любой ошибке транзакция откатывается.
func (s *Storage) CreateUserWithFreeSubscription(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUserWithFreeSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, role_type, address,
			city, state_province, zip_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		user.FirstName, user.LastName, user.Email, user.Role, user.Address,
		user.City, user.StateProvince, user.ZipCode, user.Country).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, level, start_date, amount, is_active)
		VALUES ($1, $2, NOW(), 0.00, TRUE)`,
		newID, models.LevelFree)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscriptionByUserID возвращает подписку пользователя.
// Схема допускает несколько строк, поэтому берётся первая по id.
func (s *Storage) GetSubscriptionByUserID(ctx context.Context, userID int) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, level, start_date, amount, transaction_id, is_active
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY id
			  LIMIT 1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// GetSubscription возвращает подписку по её ID.
func (s *Storage) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, level, start_date, amount, transaction_id, is_active
			  FROM subscriptions
			  WHERE id = $1`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// UpgradeSubscription переводит подписку на уровень Paid с указанной
// суммой и внешним идентификатором транзакции, активируя её.
func (s *Storage) UpgradeSubscription(ctx context.Context, id int, amount float64, transactionID string) error {
	const op = "storage.UpgradeSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET level = $1, amount = $2, transaction_id = $3, is_active = TRUE
			  WHERE id = $4`
	_, err := s.DB.ExecContext(ctx, query, models.LevelPaid, amount, transactionID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetSubscriptionActive выставляет флаг активности подписки.
func (s *Storage) SetSubscriptionActive(ctx context.Context, id int, active bool) error {
	const op = "storage.SetSubscriptionActive"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET is_active = $1 WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, query, active, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RefundSubscription обнуляет сумму и деактивирует подписку.
// Уровень при этом не меняется: Paid не откатывается к Free.
func (s *Storage) RefundSubscription(ctx context.Context, id int) error {
	const op = "storage.RefundSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions SET amount = 0.00, is_active = FALSE WHERE id = $1`
	_, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscriptionsWithEmail возвращает все подписки с почтой владельца
// для административного списка, новые первыми.
func (s *Storage) ListSubscriptionsWithEmail(ctx context.Context) ([]*models.SubscriptionWithEmail, error) {
	const op = "storage.ListSubscriptionsWithEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.user_id, s.level, s.start_date, s.amount,
			      s.transaction_id, s.is_active, u.email
			  FROM subscriptions s
			  JOIN users u ON s.user_id = u.id
			  ORDER BY s.id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionWithEmail
	for rows.Next() {
		var item models.SubscriptionWithEmail
		var transactionID sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.Level, &item.StartDate,
			&item.Amount, &transactionID, &item.IsActive, &item.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if transactionID.Valid {
			item.TransactionID = &transactionID.String
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanSubscription(row interface{ Scan(...any) error }) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var transactionID sql.NullString
	if err := row.Scan(&sub.ID, &sub.UserID, &sub.Level, &sub.StartDate,
		&sub.Amount, &transactionID, &sub.IsActive); err != nil {
		return nil, err
	}
	if transactionID.Valid {
		sub.TransactionID = &transactionID.String
	}
	return sub, nil
}
