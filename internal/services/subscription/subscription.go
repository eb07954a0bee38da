// Package services содержит бизнес-логику подписок: шлюз доступа
// и переходы жизненного цикла, включая административные действия.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/membership-portal/internal/lib/sl"
	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// PaidAmount фиксированная сумма платной подписки.
const PaidAmount = 99.99

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// GetSubscriptionByUserID возвращает первую подписку пользователя.
	GetSubscriptionByUserID(ctx context.Context, userID int) (*models.Subscription, error)
	// GetSubscription возвращает подписку по ID.
	GetSubscription(ctx context.Context, id int) (*models.Subscription, error)
	// UpgradeSubscription переводит подписку на Paid с суммой и транзакцией.
	UpgradeSubscription(ctx context.Context, id int, amount float64, transactionID string) error
	// SetSubscriptionActive выставляет флаг активности.
	SetSubscriptionActive(ctx context.Context, id int, active bool) error
	// RefundSubscription обнуляет сумму и деактивирует подписку.
	RefundSubscription(ctx context.Context, id int) error
	// ListSubscriptionsWithEmail возвращает все подписки с почтой владельца.
	ListSubscriptionsWithEmail(ctx context.Context) ([]*models.SubscriptionWithEmail, error)
}

// PaymentRepository определяет журнал платежей.
type PaymentRepository interface {
	// CreatePayment добавляет строку журнала и возвращает её ID.
	CreatePayment(ctx context.Context, userID int, amount float64, status, method string) (int, error)
}

// EventPublisher публикует события платежей во внешнюю очередь.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// PaymentEvent описывает сообщение о платеже для внешних потребителей.
type PaymentEvent struct {
	UserID        int       `json:"user_id"`
	Amount        float64   `json:"amount"`
	TransactionID string    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// SubscriptionService реализует шлюз подписки и переходы жизненного цикла.
type SubscriptionService struct {
	repo      SubscriptionRepository
	payments  PaymentRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
// publisher может быть nil: события тогда не публикуются.
func NewSubscriptionService(repo SubscriptionRepository, payments PaymentRepository, publisher EventPublisher, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:      repo,
		payments:  payments,
		publisher: publisher,
		log:       log,
	}
}

// Validate пропускает пользователя, только если строка подписки есть
// и флаг активности установлен. Отсутствие строки и неактивная строка
// различаются: models.ErrNoSubscription и models.ErrInactiveSubscription.
func (s *SubscriptionService) Validate(ctx context.Context, userID int) error {
	sub, err := s.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNoSubscription
		}
		return err
	}
	if !sub.IsActive {
		return models.ErrInactiveSubscription
	}
	return nil
}

// Get возвращает подписку пользователя или models.ErrNoSubscription.
func (s *SubscriptionService) Get(ctx context.Context, userID int) (*models.Subscription, error) {
	sub, err := s.repo.GetSubscriptionByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNoSubscription
		}
		return nil, err
	}
	return sub, nil
}

// Upgrade переводит подписку пользователя на Paid/active и записывает
// платёж фиксированной суммы в журнал. Идентификатор транзакции
// генерируется на месте: внешнего платёжного провайдера нет.
func (s *SubscriptionService) Upgrade(ctx context.Context, userID int) error {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := s.payments.CreatePayment(ctx, userID, PaidAmount, "Completed", "PayPal"); err != nil {
		return err
	}

	transactionID := uuid.New().String()
	if err := s.repo.UpgradeSubscription(ctx, sub.ID, PaidAmount, transactionID); err != nil {
		return err
	}
	s.log.Info("subscription upgraded", slog.Int("user_id", userID), slog.Int("subscription_id", sub.ID))

	s.publish("payment.completed", PaymentEvent{
		UserID:        userID,
		Amount:        PaidAmount,
		TransactionID: transactionID,
		OccurredAt:    time.Now().UTC(),
	})
	return nil
}

// Cancel деактивирует подписку пользователя. Уровень не меняется.
func (s *SubscriptionService) Cancel(ctx context.Context, userID int) error {
	sub, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.repo.SetSubscriptionActive(ctx, sub.ID, false); err != nil {
		return err
	}
	s.log.Info("subscription cancelled", slog.Int("user_id", userID), slog.Int("subscription_id", sub.ID))
	return nil
}

// Activate включает подписку по её ID (административное действие).
func (s *SubscriptionService) Activate(ctx context.Context, subscriptionID int) error {
	return s.setActive(ctx, subscriptionID, true)
}

// Deactivate выключает подписку по её ID (административное действие).
func (s *SubscriptionService) Deactivate(ctx context.Context, subscriptionID int) error {
	return s.setActive(ctx, subscriptionID, false)
}

// Refund обнуляет сумму и деактивирует подписку (административное
// действие). Применимо из любого состояния.
func (s *SubscriptionService) Refund(ctx context.Context, subscriptionID int) error {
	sub, err := s.repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if err := s.repo.RefundSubscription(ctx, sub.ID); err != nil {
		return err
	}
	s.log.Info("subscription refunded", slog.Int("subscription_id", sub.ID))

	s.publish("payment.refunded", PaymentEvent{
		UserID:     sub.UserID,
		Amount:     0,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ListAll возвращает все подписки с почтой владельца для админки.
func (s *SubscriptionService) ListAll(ctx context.Context) ([]*models.SubscriptionWithEmail, error) {
	return s.repo.ListSubscriptionsWithEmail(ctx)
}

func (s *SubscriptionService) setActive(ctx context.Context, subscriptionID int, active bool) error {
	const op = "services.subscription.setActive"
	sub, err := s.repo.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.SetSubscriptionActive(ctx, sub.ID, active)
}

func (s *SubscriptionService) publish(routingKey string, event PaymentEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		s.log.Warn("failed to publish payment event", sl.Err(err))
	}
}
