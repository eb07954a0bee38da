package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// ListConsultants возвращает каталог консультантов с данными пользователя.
func (s *Storage) ListConsultants(ctx context.Context) ([]*models.Consultant, error) {
	const op = "storage.ListConsultants"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT c.id, c.user_id, u.first_name, u.last_name, u.email,
			      u.city, c.organization, c.summary
			  FROM consultants c
			  JOIN users u ON c.user_id = u.id
			  ORDER BY u.last_name, u.first_name`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Consultant
	for rows.Next() {
		var item models.Consultant
		var organization, summary sql.NullString
		if err := rows.Scan(&item.ID, &item.UserID, &item.FirstName, &item.LastName,
			&item.Email, &item.City, &organization, &summary); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Organization = organization.String
		item.Summary = summary.String
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
