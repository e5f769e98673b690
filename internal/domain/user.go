package domain

import "time"

// User зарегистрированный пользователь. ExternalID идентификатор в чат-платформе.
type User struct {
	ID         int64
	CreatedAt  time.Time
	ExternalID string
	Username   string
	FirstName  string
	LastName   string
}
