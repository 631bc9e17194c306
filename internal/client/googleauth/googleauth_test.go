package googleauth

import (
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func stubNow(t *testing.T, fixed time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })
}

func TestCredentialsPrefersRealToken(t *testing.T) {
	token, email := Credentials(Payload{Token: "tok-real", AccessToken: "tok-access", Email: "u@gmail.com"})
	require.Equal(t, "tok-real", token)
	require.Equal(t, "u@gmail.com", email)
}

func TestCredentialsFallsBackToAccessToken(t *testing.T) {
	token, _ := Credentials(Payload{AccessToken: "tok-access", Email: "u@gmail.com"})
	require.Equal(t, "tok-access", token)
}

func TestCredentialsSynthesizesTokenFromTime(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stubNow(t, fixed)

	token, email := Credentials(Payload{Email: "u@gmail.com"})
	require.Equal(t, fmt.Sprintf("google_auth_%d", fixed.UnixMilli()), token)
	require.Regexp(t, regexp.MustCompile(`^google_auth_\d+$`), token)
	require.Equal(t, "u@gmail.com", email)
}

func TestCredentialsEmailFallsBackToProfile(t *testing.T) {
	_, email := Credentials(Payload{Token: "tok", Profile: &Profile{Email: "p@gmail.com"}})
	require.Equal(t, "p@gmail.com", email)
}

func TestCredentialsPlaceholderEmailWhenAbsent(t *testing.T) {
	_, email := Credentials(Payload{Token: "tok"})
	require.Equal(t, "user@gmail.com", email)
}

func TestWrapErrorHidesProviderDetail(t *testing.T) {
	require.NoError(t, WrapError(nil))

	err := WrapError(errors.New("invalid_grant: redirect_uri_mismatch"))
	require.ErrorIs(t, err, ErrProvider)
	require.NotContains(t, err.Error(), "redirect_uri_mismatch")
}
