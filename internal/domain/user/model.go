package user

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// User is a registered account.
type User struct {
	ID       string
	Name     string
	Email    string
	Username string
}

// Account is a user together with its password hash.
type Account struct {
	User         User
	PasswordHash []byte
}

func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("user name is required")
	}
	if u.Email == "" {
		return errors.New("user email is required")
	}
	return nil
}

// UsernameFromEmail returns the local part of an email address.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	if local == "" {
		return "user"
	}
	return local
}

// Principal is the identity an operation acts on behalf of. The zero value is
// anonymous.
type Principal struct {
	UserID   string
	Username string
	Name     string
}

func PrincipalOf(u User) Principal {
	return Principal{UserID: u.ID, Username: u.Username, Name: u.Name}
}

func (p Principal) Anonymous() bool {
	return p.UserID == ""
}
