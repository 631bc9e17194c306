// Package googleauth normalizes the Google login widget's result into the
// token+email pair the session bootstrapper expects.
package googleauth

import (
	"errors"
	"fmt"
	"time"
)

// Payload is the success payload received from the Google login widget.
// Field availability varies by widget configuration, so every field is
// optional and Credentials applies documented fallbacks.
type Payload struct {
	Token       string   `json:"token"`
	AccessToken string   `json:"accessToken"`
	Email       string   `json:"email"`
	Profile     *Profile `json:"profileObj"`
}

type Profile struct {
	Email string `json:"email"`
}

const fallbackEmail = "user@gmail.com"

// ErrProvider is the generic user-facing federated login failure. Raw
// provider error detail is never forwarded.
var ErrProvider = errors.New("google signup failed, please try again")

// now is replaced in tests.
var now = time.Now

// Credentials extracts a usable token and email from the provider payload.
// Token preference: token, accessToken, then a placeholder synthesized from
// the current time. The placeholder is not a revocable, verifiable
// credential; a real server-side token exchange is still an open gap.
// Email preference: email, profileObj.email, then a placeholder address.
func Credentials(p Payload) (token, email string) {
	token = p.Token
	if token == "" {
		token = p.AccessToken
	}
	if token == "" {
		token = fmt.Sprintf("google_auth_%d", now().UnixMilli())
	}
	email = p.Email
	if email == "" && p.Profile != nil {
		email = p.Profile.Email
	}
	if email == "" {
		email = fallbackEmail
	}
	return token, email
}

// WrapError converts any provider error into the generic ErrProvider.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	return ErrProvider
}
