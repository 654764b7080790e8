package models

import "fmt"

// User is the profile returned by the identity service.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

// DisplayName prefers the full name, then the username, then the email.
func (u *User) DisplayName() string {
	switch {
	case u == nil:
		return ""
	case u.FullName != "":
		return u.FullName
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

func (u *User) String() string {
	if u == nil {
		return "<anonymous>"
	}
	return fmt.Sprintf("#%d %s <%s>", u.ID, u.Username, u.Email)
}
