// Package services содержит логику разрешения идентичности: слияние
// OAuth-профилей с учётными записями по почте и регистрацию через форму.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/membership-portal/internal/models"
	"github.com/magabrotheeeer/membership-portal/internal/oauth"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByEmail возвращает пользователя по почте или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int, error)

	// LinkProviderID записывает внешний идентификатор, если колонка пуста.
	LinkProviderID(ctx context.Context, userID int, provider, externalID string) error

	// CreateUserWithFreeSubscription создаёт пользователя и бесплатную
	// подписку одной транзакцией.
	CreateUserWithFreeSubscription(ctx context.Context, user models.User) (int, error)
}

// AuthService отвечает за слияние OAuth-идентичностей и регистрацию.
type AuthService struct {
	users UserRepository
	log   *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{
		users: users,
		log:   log,
	}
}

// ResolveOAuthUser находит или создаёт пользователя по профилю провайдера.
//
// Поиск идёт только по почте: два аккаунта разных провайдеров с одной
// почтой сливаются в одного пользователя. Найденному пользователю
// идемпотентно привязывается внешний идентификатор, роль сохраняется.
// Новый пользователь создаётся с ролью Reader и заглушками адресных
// полей ("Unknown").
func (s *AuthService) ResolveOAuthUser(ctx context.Context, provider string, profile oauth.Profile) (*models.User, error) {
	const op = "services.auth.ResolveOAuthUser"

	user, err := s.users.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		if err := s.users.LinkProviderID(ctx, user.ID, provider, profile.ExternalID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return user, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newUser := models.User{
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Email:         profile.Email,
		Role:          models.RoleReader,
		Address:       "Unknown",
		City:          "Unknown",
		StateProvince: "Unknown",
		ZipCode:       "00000",
		Country:       "Unknown",
	}
	switch provider {
	case "google":
		newUser.GoogleID = &profile.ExternalID
	case "microsoft":
		newUser.MicrosoftID = &profile.ExternalID
	case "facebook":
		newUser.FacebookID = &profile.ExternalID
	case "x":
		newUser.XID = &profile.ExternalID
	default:
		return nil, fmt.Errorf("%s: %w: %s", op, models.ErrUnsupportedProvider, provider)
	}

	newID, err := s.users.CreateUser(ctx, newUser)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created user from oauth profile",
		slog.Int("user_id", newID), slog.String("provider", provider))

	newUser.ID = newID
	return &newUser, nil
}

// Register создаёт пользователя с ролью Reader и бесплатную активную
// подписку одной транзакцией. Занятая почта отклоняется до записи.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "services.auth.Register"

	_, err := s.users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Role:          models.RoleReader,
		Address:       req.Address,
		City:          req.City,
		StateProvince: req.StateProvince,
		ZipCode:       req.ZipCode,
		Country:       req.Country,
	}
	newID, err := s.users.CreateUserWithFreeSubscription(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("registered new user", slog.Int("user_id", newID))

	user.ID = newID
	return &user, nil
}
