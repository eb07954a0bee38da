package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// providerColumns сопоставляет имя провайдера с колонкой внешнего
// идентификатора. Имена колонок не подставляются из пользовательского
// ввода напрямую: неизвестный провайдер отклоняется до сборки запроса.
var providerColumns = map[string]string{
	"google":    "google_id",
	"microsoft": "microsoft_id",
	"facebook":  "facebook_id",
	"x":         "x_id",
}

const userColumns = `id, first_name, last_name, email, role_type, address, city,
	state_province, zip_code, country, created_date, is_active,
	google_id, microsoft_id, facebook_id, x_id`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var googleID, microsoftID, facebookID, xID sql.NullString
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role,
		&u.Address, &u.City, &u.StateProvince, &u.ZipCode, &u.Country,
		&u.CreatedDate, &u.IsActive,
		&googleID, &microsoftID, &facebookID, &xID); err != nil {
		return nil, err
	}
	if googleID.Valid {
		u.GoogleID = &googleID.String
	}
	if microsoftID.Valid {
		u.MicrosoftID = &microsoftID.String
	}
	if facebookID.Valid {
		u.FacebookID = &facebookID.String
	}
	if xID.Valid {
		u.XID = &xID.String
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Внешний идентификатор провайдера записывается, если он задан.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (first_name, last_name, email, role_type, address,
			      city, state_province, zip_code, country, google_id, microsoft_id,
			      facebook_id, x_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Role, user.Address,
		user.City, user.StateProvince, user.ZipCode, user.Country,
		user.GoogleID, user.MicrosoftID, user.FacebookID, user.XID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по почте или models.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID или models.ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// LinkProviderID записывает внешний идентификатор провайдера,
// только если колонка ещё пуста. Повторная привязка идемпотентна.
func (s *Storage) LinkProviderID(ctx context.Context, userID int, provider, externalID string) error {
	const op = "storage.LinkProviderID"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	column, ok := providerColumns[provider]
	if !ok {
		return fmt.Errorf("%s: %w: %s", op, models.ErrUnsupportedProvider, provider)
	}

	query := fmt.Sprintf(`UPDATE users SET %s = $1 WHERE id = $2 AND %s IS NULL`, column, column)
	_, err := s.DB.ExecContext(ctx, query, externalID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListUsers возвращает всех пользователей, новые первыми.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_date DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
