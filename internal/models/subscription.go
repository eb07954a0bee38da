// Package models содержит доменные структуры подписки и платежей.
// Подписка принадлежит ровно одному пользователю; бизнес-логика
// исходит из одной строки подписки на пользователя, хотя схема
// допускает дубликаты — при чтении берётся первая по id.
package models

import "time"

// Уровни подписки. Переход Paid -> Free автоматически не выполняется:
// действия меняют только сумму и флаг активности.
const (
	LevelFree = "Free"
	LevelPaid = "Paid"
)

// Subscription представляет запись подписки пользователя.
type Subscription struct {
	ID            int       // Уникальный идентификатор подписки
	UserID        int       // Идентификатор владельца
	Level         string    // Уровень подписки, Free или Paid
	StartDate     time.Time // Дата начала подписки
	Amount        float64   // Сумма подписки
	TransactionID *string   // Внешний идентификатор транзакции (опционально)
	IsActive      bool      // Признак активности
}

// SubscriptionWithEmail расширяет Subscription адресом почты владельца.
// Используется в административном списке подписок.
type SubscriptionWithEmail struct {
	Subscription
	Email string // Почта владельца подписки
}

// Payment представляет строку журнала платежей. Журнал только
// пополняется, записи никогда не изменяются.
type Payment struct {
	ID          int       // Уникальный идентификатор платежа
	UserID      int       // Идентификатор плательщика
	PaymentDate time.Time // Дата платежа
	Amount      float64   // Сумма платежа
	Status      string    // Статус платежа
	Method      string    // Способ оплаты
}
