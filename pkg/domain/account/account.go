// Package account holds the account aggregate and its invariants.
package account

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNoUser is returned when no account exists for a username.
	ErrNoUser = errors.New("no such user")
	// ErrWrongPassword is returned when a password check fails.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidInfo is returned when registration info fails validation.
	ErrInvalidInfo = errors.New("invalid account info")
)

// MaxUsernameLen is the database column width for usernames.
const MaxUsernameLen = 16

// Account is a marketplace user. WalletID is nil until the user activates
// their wallet; jobs cannot be posted and purchases cannot be made before
// activation.
type Account struct {
	Username  string
	Fullname  string
	Password  string // bcrypt hash
	Email     string
	Phone     string
	WalletID  *int64
	IsAdmin   bool
	CreatedAt time.Time
}

// New validates registration info and returns an Account with a hashed
// password. All failures wrap ErrInvalidInfo so the boundary can map them
// to a single error class.
func New(username, fullname, password, email, phone string) (*Account, error) {
	if err := validate(username, password, email, phone); err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Account{
		Username:  username,
		Fullname:  fullname,
		Password:  string(hashed),
		Email:     email,
		Phone:     phone,
		CreatedAt: time.Now(),
	}, nil
}

// CheckPassword compares a candidate password against the stored hash.
func (a *Account) CheckPassword(password string) error {
	if bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)) != nil {
		return ErrWrongPassword
	}
	return nil
}

// HasWallet reports whether the account has activated its wallet.
func (a *Account) HasWallet() bool {
	return a.WalletID != nil
}

func validate(username, password, email, phone string) error {
	if username == "" || strings.TrimSpace(username) != username {
		return invalid("username is required")
	}
	if len(username) > MaxUsernameLen {
		return invalid("username cannot contain more than 16 characters")
	}
	if len(password) < 6 {
		return invalid("password must contain at least 6 characters")
	}
	if len(password) > 72 {
		return invalid("password too long")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email is not valid")
	}
	if !validPhone(phone) {
		return invalid("phone is not valid")
	}
	return nil
}

// Phone numbers are exactly 10 digits.
func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInfo, msg)
}
