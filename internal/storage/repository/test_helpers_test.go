package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/membership-portal/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, firstName, lastName, email, role string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO users
		(first_name, last_name, email, role_type, address, city, state_province, zip_code, country)
		VALUES ($1, $2, $3, $4, '1 Main St', 'Moscow', 'Moscow', '101000', 'Russia')
		RETURNING id`,
		firstName, lastName, email, role).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её ID
func (f *TestDataFactory) CreateSubscription(t *testing.T, userID int, level string, amount float64, isActive bool) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(user_id, level, start_date, amount, is_active)
		VALUES ($1, $2, NOW(), $3, $4) RETURNING id`,
		userID, level, amount, isActive).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateEvent создает тестовое мероприятие и возвращает его ID
func (f *TestDataFactory) CreateEvent(t *testing.T, title string, at time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO events
		(title, event_datetime, location, description)
		VALUES ($1, $2, 'Moscow', 'test event') RETURNING id`,
		title, at).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateConsultant создает запись консультанта для пользователя
func (f *TestDataFactory) CreateConsultant(t *testing.T, userID int, organization, summary string) {
	_, err := f.storage.DB.Exec(`INSERT INTO consultants (user_id, organization, summary)
		VALUES ($1, $2, $3)`,
		userID, organization, summary)
	require.NoError(t, err)
}

// CountRows возвращает число строк таблицы с условием
func (f *TestDataFactory) CountRows(t *testing.T, query string, args ...any) int {
	var count int
	require.NoError(t, f.storage.DB.QueryRow(query, args...).Scan(&count))
	return count
}

// GetUserModel возвращает минимальные данные пользователя для вставки
func GetUserModel(email string) models.User {
	return models.User{
		FirstName:     "Ivan",
		LastName:      "Petrov",
		Email:         email,
		Role:          models.RoleReader,
		Address:       "1 Main St",
		City:          "Moscow",
		StateProvince: "Moscow",
		ZipCode:       "101000",
		Country:       "Russia",
	}
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	// Создаем таблицы по схеме миграций
	_, err = storage.DB.Exec(`
        CREATE TABLE users (
            id SERIAL PRIMARY KEY,
            first_name TEXT NOT NULL,
            last_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            role_type TEXT NOT NULL DEFAULT 'Reader',
            address TEXT NOT NULL,
            city TEXT NOT NULL,
            state_province TEXT NOT NULL,
            zip_code TEXT NOT NULL,
            country TEXT NOT NULL,
            created_date TIMESTAMP NOT NULL DEFAULT NOW(),
            is_active BOOLEAN NOT NULL DEFAULT TRUE,
            google_id TEXT,
            microsoft_id TEXT,
            facebook_id TEXT,
            x_id TEXT
        );

        CREATE TABLE consultants (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL UNIQUE REFERENCES users (id),
            organization TEXT,
            summary TEXT
        );

        CREATE TABLE subscriptions (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users (id),
            level TEXT NOT NULL DEFAULT 'Free',
            start_date TIMESTAMP NOT NULL,
            amount NUMERIC(10, 2) NOT NULL DEFAULT 0.00,
            transaction_id TEXT,
            is_active BOOLEAN NOT NULL DEFAULT TRUE
        );

        CREATE INDEX idx_subscriptions_user_id ON subscriptions (user_id);

        CREATE TABLE events (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            event_datetime TIMESTAMP NOT NULL,
            location TEXT NOT NULL,
            is_public BOOLEAN NOT NULL DEFAULT TRUE,
            created_date TIMESTAMP NOT NULL DEFAULT NOW(),
            description TEXT NOT NULL DEFAULT ''
        );

        CREATE TABLE payments (
            id SERIAL PRIMARY KEY,
            user_id INT NOT NULL REFERENCES users (id),
            payment_date TIMESTAMP NOT NULL DEFAULT NOW(),
            amount NUMERIC(10, 2) NOT NULL DEFAULT 0.00,
            status TEXT NOT NULL DEFAULT 'Completed',
            method TEXT NOT NULL DEFAULT 'PayPal'
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
