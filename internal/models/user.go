package models

import "time"

// Role роль пользователя в системе
type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
)

// Valid проверяет что роль известна
func (r Role) Valid() bool {
	return r == RoleClient || r == RoleTrainer
}

// User представляет пользователя в системе
type User struct {
	CreatedAt    time.Time  `json:"created_at"`           // время создания
	LastLogin    *time.Time `json:"last_login,omitempty"` // время последнего входа
	ID           string     `json:"id"`                   // UUID пользователя
	Username     string     `json:"username"`             // уникальный username
	PasswordHash string     `json:"-"`                    // bcrypt хеш пароля
	Role         Role       `json:"role"`
}

// RefreshToken представляет refresh token пользователя
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"` // время истечения
	CreatedAt time.Time `json:"created_at"` // время создания
	Token     string    `json:"-"`          // значение токена
	UserID    string    `json:"user_id"`    // ID пользователя
}

// IsExpired проверяет истек ли токен
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
