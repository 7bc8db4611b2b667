package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде, передается только по TLS
	Role     string `json:"role"`     // роль: "client" или "trainer"
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	UserID  string `json:"user_id"` // UUID пользователя
	Message string `json:"message"` // сообщение об успешной регистрации
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest запрос на отзыв refresh token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	AccessToken  string `json:"access_token"`  // JWT access token
	RefreshToken string `json:"refresh_token"` // refresh token
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}

// FieldError ошибка валидации отдельного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string       `json:"error"`             // описание ошибки
	Message string       `json:"message,omitempty"` // дополнительное сообщение
	Fields  []FieldError `json:"fields,omitempty"`  // ошибки валидации по полям
}

// HealthResponse ответ проверки состояния сервера
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
