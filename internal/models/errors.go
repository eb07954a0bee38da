// Package models определяет сентинельные ошибки доменного уровня.
// Обработчики сопоставляют их с HTTP-статусами: валидация — 400/422,
// отсутствие сессии — 401, запрет доступа и отказ шлюза подписки — 403,
// отсутствие ресурса — 404; всё остальное отдаётся как 500.
package models

import "errors"

var (
	// ErrNotFound возвращается, когда запрошенная запись отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken возвращается при регистрации с занятой почтой.
	ErrEmailTaken = errors.New("user already exists with that email")
	// ErrUnsupportedProvider возвращается для неизвестного OAuth-провайдера.
	ErrUnsupportedProvider = errors.New("unsupported provider")
	// ErrMissingCode возвращается, когда в callback отсутствует код авторизации.
	ErrMissingCode = errors.New("missing oauth code")
	// ErrNoSubscription возвращается шлюзом, когда у пользователя нет подписки.
	ErrNoSubscription = errors.New("no subscription found for this user")
	// ErrInactiveSubscription возвращается шлюзом для неактивной подписки.
	ErrInactiveSubscription = errors.New("subscription is not active")
)
