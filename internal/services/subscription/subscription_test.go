package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetSubscriptionByUserID(ctx context.Context, userID int) (*models.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) GetSubscription(ctx context.Context, id int) (*models.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}
func (m *RepoMock) UpgradeSubscription(ctx context.Context, id int, amount float64, transactionID string) error {
	return m.Called(ctx, id, amount, transactionID).Error(0)
}
func (m *RepoMock) SetSubscriptionActive(ctx context.Context, id int, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}
func (m *RepoMock) RefundSubscription(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) ListSubscriptionsWithEmail(ctx context.Context) ([]*models.SubscriptionWithEmail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubscriptionWithEmail), args.Error(1)
}

type PaymentsMock struct{ mock.Mock }

func (m *PaymentsMock) CreatePayment(ctx context.Context, userID int, amount float64, status, method string) (int, error) {
	args := m.Called(ctx, userID, amount, status, method)
	return args.Int(0), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(r *RepoMock)
		wantErr   error
	}{
		{
			name: "активная подписка проходит",
			setupMock: func(r *RepoMock) {
				r.On("GetSubscriptionByUserID", mock.Anything, 1).
					Return(&models.Subscription{ID: 10, UserID: 1, IsActive: true}, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "подписки нет",
			setupMock: func(r *RepoMock) {
				r.On("GetSubscriptionByUserID", mock.Anything, 1).
					Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNoSubscription,
		},
		{
			name: "подписка неактивна",
			setupMock: func(r *RepoMock) {
				r.On("GetSubscriptionByUserID", mock.Anything, 1).
					Return(&models.Subscription{ID: 10, UserID: 1, IsActive: false}, nil).Once()
			},
			wantErr: models.ErrInactiveSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMock(repo)

			svc := NewSubscriptionService(repo, new(PaymentsMock), nil, newNoopLogger())
			err := svc.Validate(context.Background(), 1)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUpgrade(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriptionByUserID", mock.Anything, 1).
		Return(&models.Subscription{ID: 10, UserID: 1, Level: models.LevelFree, IsActive: true}, nil).Once()
	repo.On("UpgradeSubscription", mock.Anything, 10, PaidAmount, mock.AnythingOfType("string")).
		Return(nil).Once()

	payments := new(PaymentsMock)
	payments.On("CreatePayment", mock.Anything, 1, 99.99, "Completed", "PayPal").
		Return(1, nil).Once()

	publisher := new(PublisherMock)
	publisher.On("Publish", "payment.completed", mock.MatchedBy(func(e PaymentEvent) bool {
		return e.UserID == 1 && e.Amount == PaidAmount && e.TransactionID != ""
	})).Return(nil).Once()

	svc := NewSubscriptionService(repo, payments, publisher, newNoopLogger())
	err := svc.Upgrade(context.Background(), 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	payments.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpgrade_NoSubscription(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriptionByUserID", mock.Anything, 1).
		Return(nil, models.ErrNotFound).Once()

	payments := new(PaymentsMock)

	svc := NewSubscriptionService(repo, payments, nil, newNoopLogger())
	err := svc.Upgrade(context.Background(), 1)

	assert.ErrorIs(t, err, models.ErrNoSubscription)
	payments.AssertNotCalled(t, "CreatePayment",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpgrade_NilPublisher(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriptionByUserID", mock.Anything, 1).
		Return(&models.Subscription{ID: 10, UserID: 1, IsActive: true}, nil).Once()
	repo.On("UpgradeSubscription", mock.Anything, 10, PaidAmount, mock.AnythingOfType("string")).
		Return(nil).Once()

	payments := new(PaymentsMock)
	payments.On("CreatePayment", mock.Anything, 1, PaidAmount, "Completed", "PayPal").
		Return(1, nil).Once()

	svc := NewSubscriptionService(repo, payments, nil, newNoopLogger())
	assert.NoError(t, svc.Upgrade(context.Background(), 1))
}

func TestUpgrade_PublishErrorNotFatal(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriptionByUserID", mock.Anything, 1).
		Return(&models.Subscription{ID: 10, UserID: 1, IsActive: true}, nil).Once()
	repo.On("UpgradeSubscription", mock.Anything, 10, PaidAmount, mock.AnythingOfType("string")).
		Return(nil).Once()

	payments := new(PaymentsMock)
	payments.On("CreatePayment", mock.Anything, 1, PaidAmount, "Completed", "PayPal").
		Return(1, nil).Once()

	publisher := new(PublisherMock)
	publisher.On("Publish", "payment.completed", mock.Anything).
		Return(errors.New("broker is down")).Once()

	svc := NewSubscriptionService(repo, payments, publisher, newNoopLogger())
	assert.NoError(t, svc.Upgrade(context.Background(), 1))
}

func TestCancel(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscriptionByUserID", mock.Anything, 1).
		Return(&models.Subscription{ID: 10, UserID: 1, Level: models.LevelPaid, IsActive: true}, nil).Once()
	repo.On("SetSubscriptionActive", mock.Anything, 10, false).Return(nil).Once()

	svc := NewSubscriptionService(repo, new(PaymentsMock), nil, newNoopLogger())
	err := svc.Cancel(context.Background(), 1)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestActivateAndDeactivate(t *testing.T) {
	tests := []struct {
		name       string
		action     func(svc *SubscriptionService) error
		wantActive bool
	}{
		{
			name:       "активация",
			action:     func(svc *SubscriptionService) error { return svc.Activate(context.Background(), 10) },
			wantActive: true,
		},
		{
			name:       "деактивация",
			action:     func(svc *SubscriptionService) error { return svc.Deactivate(context.Background(), 10) },
			wantActive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("GetSubscription", mock.Anything, 10).
				Return(&models.Subscription{ID: 10, UserID: 1}, nil).Once()
			repo.On("SetSubscriptionActive", mock.Anything, 10, tt.wantActive).Return(nil).Once()

			svc := NewSubscriptionService(repo, new(PaymentsMock), nil, newNoopLogger())
			require.NoError(t, tt.action(svc))
			repo.AssertExpectations(t)
		})
	}
}

func TestActivate_NotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscription", mock.Anything, 99).
		Return(nil, models.ErrNotFound).Once()

	svc := NewSubscriptionService(repo, new(PaymentsMock), nil, newNoopLogger())
	err := svc.Activate(context.Background(), 99)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRefund(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetSubscription", mock.Anything, 10).
		Return(&models.Subscription{ID: 10, UserID: 4, Level: models.LevelPaid, IsActive: true}, nil).Once()
	repo.On("RefundSubscription", mock.Anything, 10).Return(nil).Once()

	publisher := new(PublisherMock)
	publisher.On("Publish", "payment.refunded", mock.MatchedBy(func(e PaymentEvent) bool {
		return e.UserID == 4 && e.Amount == 0
	})).Return(nil).Once()

	svc := NewSubscriptionService(repo, new(PaymentsMock), publisher, newNoopLogger())
	err := svc.Refund(context.Background(), 10)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestListAll(t *testing.T) {
	subs := []*models.SubscriptionWithEmail{
		{Subscription: models.Subscription{ID: 2, UserID: 1}, Email: "a@example.com"},
		{Subscription: models.Subscription{ID: 1, UserID: 2}, Email: "b@example.com"},
	}

	repo := new(RepoMock)
	repo.On("ListSubscriptionsWithEmail", mock.Anything).Return(subs, nil).Once()

	svc := NewSubscriptionService(repo, new(PaymentsMock), nil, newNoopLogger())
	got, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, subs, got)
}
