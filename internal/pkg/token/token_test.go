package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	signed, err := Generate("64f1a2b3c4d5e6f708192a3b", "alice@example.com", "citizen", "test-secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Validate(signed, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "64f1a2b3c4d5e6f708192a3b", claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "citizen", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	signed, err := Generate("id", "a@b.c", "admin", "secret-one", time.Hour)
	require.NoError(t, err)

	_, err = Validate(signed, "secret-two")
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	signed, err := Generate("id", "a@b.c", "citizen", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Validate(signed, "secret")
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not-a-token", "secret")
	require.Error(t, err)
}
