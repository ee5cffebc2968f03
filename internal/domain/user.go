package domain

import (
	"context"
	"fmt"
	"io"
)

// User is a registered account identity. Email is the unique key within a
// repository; Username is a display label only.
type User struct {
	Email    string
	Username string
}

// NewUser builds a User. No validation is performed.
func NewUser(email, username string) *User {
	return &User{Email: email, Username: username}
}

// Clone returns an independent copy of u.
func (u *User) Clone() *User {
	c := *u
	return &c
}

func (u User) String() string {
	return fmt.Sprintf("email: %s, username: %s", u.Email, u.Username)
}

// Print writes the user's display line to w.
func (u User) Print(w io.Writer) error {
	_, err := fmt.Fprintln(w, u.String())
	return err
}

// UserRepository defines persistence operations for users.
//
// Save requires that no stored user shares the given email. Breaking that
// precondition is a programming error: implementations panic with a
// *ContractViolation wrapping ErrUserAlreadyExists. The returned error only
// reports storage failures.
//
// FindByEmail and GetAll hand out copies; callers may mutate them freely.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	GetAll(ctx context.Context) ([]User, error)
}
