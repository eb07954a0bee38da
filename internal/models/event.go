package models

import "time"

// Event представляет мероприятие из каталога. Записи создаются
// только при заполнении данных, пользовательского создания нет.
type Event struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	EventDateTime time.Time `json:"event_datetime"`
	Location      string    `json:"location"`
	IsPublic      bool      `json:"is_public"`
	CreatedDate   time.Time `json:"created_date"`
	Description   string    `json:"description"`
}

// Consultant представляет консультанта — расширение пользователя
// организацией и кратким описанием (один к одному).
type Consultant struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	City         string `json:"city"`
	Organization string `json:"organization"`
	Summary      string `json:"summary"`
}
