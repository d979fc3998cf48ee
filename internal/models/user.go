package models

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleAnalyst UserRole = "analyst"
	RoleViewer  UserRole = "viewer"
)

// Пользователь бэкенда. Пароли сюда никогда не приходят.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FullName  string   `json:"full_name"`
	Role      UserRole `json:"role"`
	IsActive  bool     `json:"is_active"`
	CreatedAt string   `json:"created_at"`
}

func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Ответ POST /api/users/login.
type LoginResult struct {
	User    User `json:"user"`
	Session struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expires_at"`
	} `json:"session"`
	// Старые сборки бэкенда кладут токен прямо в data.
	Token string `json:"token"`
}

// SessionToken — токен из любого места ответа, где он мог оказаться.
func (r LoginResult) SessionToken() string {
	if r.Session.Token != "" {
		return r.Session.Token
	}
	return r.Token
}
