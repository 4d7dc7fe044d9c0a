package model

// User represents a row in the `users` table. Users are created
// lazily the first time the Telegram mini-app authenticates; the
// Telegram id is the natural key, ID is internal. The password
// column is legacy and never read or written by this service.
//
// Fields:
//
//	ID         – opaque string identifier (UUID).
//	TelegramID – unique external Telegram user id.
//	Username   – Telegram @username, may be empty.
//	FirstName  – Telegram first name, may be empty.
//	LastName   – Telegram last name, may be empty.
type User struct {
	ID         string `json:"id"`          // users.id
	TelegramID int64  `json:"telegram_id"` // users.telegram_id
	Username   string `json:"username"`    // users.username
	FirstName  string `json:"first_name"`  // users.first_name
	LastName   string `json:"last_name"`   // users.last_name
}

// DisplayName returns the most human-readable identity available:
// first/last name when present, otherwise the username.
func (u User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Username
	}
	return name
}
