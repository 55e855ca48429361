package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPIN_Plain(t *testing.T) {
	p := NewPIN("2468")
	require.True(t, p.Configured())
	require.True(t, p.Match("2468"))
	require.True(t, p.Match(" 2468 "))
	require.False(t, p.Match("1357"))
	require.False(t, p.Match(""))
}

func TestPIN_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("2468"), bcrypt.MinCost)
	require.NoError(t, err)

	p := NewPIN(string(hash))
	require.True(t, p.Match("2468"))
	require.False(t, p.Match(string(hash)))
}

func TestPIN_Unconfigured(t *testing.T) {
	p := NewPIN("")
	require.False(t, p.Configured())
	require.False(t, p.Match(""))
	require.False(t, p.Match("0000"))
}
