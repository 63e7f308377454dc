package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	require.True(t, IsValidEmail("citizen@city.gov.in"))
	require.False(t, IsValidEmail(""))
	require.False(t, IsValidEmail("not-an-email"))
	require.False(t, IsValidEmail("missing@tld"))
}

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("9876543210"))
	require.False(t, IsValidPhone("12345"))
	require.False(t, IsValidPhone("+919876543210"))
	require.False(t, IsValidPhone(""))
}

func TestIsValidPassword(t *testing.T) {
	require.True(t, IsValidPassword("longenough"))
	require.False(t, IsValidPassword("short"))
}
