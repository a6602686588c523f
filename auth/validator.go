package auth

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/namismyname/SocketTalk/errors"
)

var validate = validator.New()

// Credentials is the validated shape of a register or login request.
// Secrets are stored and compared as given; only the emptiness check works
// on the trimmed value.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// ValidateCredentials rejects empty or whitespace-only usernames and
// passwords. It never mutates the caller's values.
func ValidateCredentials(username, password string) error {
	c := Credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrEmptyCredentials, err)
	}
	return nil
}
