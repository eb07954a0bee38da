// Package models содержит доменную модель пользователя членского портала,
// включающую контактные данные, роль и привязки к внешним OAuth-провайдерам.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Роль меняется только административным действием.
const (
	RoleReader = "Reader"
	RoleAdmin  = "Admin"
)

// User представляет зарегистрированного пользователя портала.
// Колонки внешних идентификаторов заполняются при первом входе
// через соответствующего провайдера и больше не перезаписываются.
type User struct {
	ID            int       // Уникальный идентификатор пользователя
	FirstName     string    // Имя
	LastName      string    // Фамилия
	Email         string    // Электронная почта (уникальная)
	Role          string    // Роль пользователя, Reader или Admin
	Address       string    // Адрес
	City          string    // Город
	StateProvince string    // Штат или область
	ZipCode       string    // Почтовый индекс
	Country       string    // Страна
	CreatedDate   time.Time // Дата создания записи
	IsActive      bool      // Признак активности учётной записи
	GoogleID      *string   // Внешний идентификатор Google
	MicrosoftID   *string   // Внешний идентификатор Microsoft
	FacebookID    *string   // Внешний идентификатор Facebook
	XID           *string   // Внешний идентификатор X
}

// RegisterRequest используется для приёма данных формы регистрации
// до их валидации и преобразования в User.
type RegisterRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	StateProvince string `json:"state_province" validate:"required"`
	ZipCode       string `json:"zip_code" validate:"required"`
	Country       string `json:"country" validate:"required"`
}
