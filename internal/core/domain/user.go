package domain

// User models an account. The password column only ever holds a bcrypt
// digest once the row exists.
type User struct {
	Username  string  `json:"username" db:"username"`
	Password  string  `json:"-" db:"password"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Email     string  `json:"email" db:"email"`
	PhotoURL  *string `json:"photo_url" db:"photo_url"`
	IsAdmin   bool    `json:"is_admin" db:"is_admin"`
}

// UserKey is the immutable primary key column of a user.
const UserKey = "username"

// Identity returns the token claim set for u.
func (u *User) Identity() Identity {
	return Identity{Username: u.Username, IsAdmin: u.IsAdmin}
}
