package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	require.True(t, IsValidPhone("+8801712345678"))
	require.True(t, IsValidPhone("8801712345678"))
	require.False(t, IsValidPhone(""))
	require.False(t, IsValidPhone("01712-345678"))
	require.False(t, IsValidPhone("0123"))
}

func TestIsValidURL(t *testing.T) {
	require.True(t, IsValidURL("https://res.cloudinary.com/demo/image/upload/proof.jpg"))
	require.True(t, IsValidURL("http://example.com"))
	require.False(t, IsValidURL(""))
	require.False(t, IsValidURL("ftp://example.com/file"))
	require.False(t, IsValidURL("not a url"))
}

func TestIsStrongPassword(t *testing.T) {
	require.True(t, IsStrongPassword("Str0ngpass"))
	require.False(t, IsStrongPassword("short1A"))
	require.False(t, IsStrongPassword("alllowercase1"))
	require.False(t, IsStrongPassword("ALLUPPERCASE1"))
	require.False(t, IsStrongPassword("NoNumbersHere"))
}
