package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// CreatePayment добавляет строку в журнал платежей и возвращает её ID.
// Журнал только пополняется, существующие строки не изменяются.
func (s *Storage) CreatePayment(ctx context.Context, userID int, amount float64, status, method string) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_id, payment_date, amount, status, method)
			  VALUES ($1, NOW(), $2, $3, $4)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, userID, amount, status, method).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPaymentsByUserID возвращает платежи пользователя, новые первыми.
func (s *Storage) ListPaymentsByUserID(ctx context.Context, userID int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUserID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, payment_date, amount, status, method
			  FROM payments
			  WHERE user_id = $1
			  ORDER BY payment_date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.UserID, &item.PaymentDate,
			&item.Amount, &item.Status, &item.Method); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
