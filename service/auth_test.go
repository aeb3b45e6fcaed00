package service

import (
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-qlearn/identity"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	const password = "corral-Vintage-41-Lantern!"
	op, err := identity.NewOperator(identity.OperatorConfig{Name: "trainer", PlainPassword: password, HashCost: bcrypt.MinCost})
	require.NoError(t, err)

	tokenizer := token.NewJwtService("test-secret", "qlearn")
	auth, err := NewAuthService(op, tokenizer, time.Minute)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		tok, err := auth.SignIn("trainer", password)
		require.NoError(t, err)

		claims, err := tokenizer.Decode(tok)
		require.NoError(t, err)
		assert.Equal(t, "trainer", claims["sub"])
		assert.Equal(t, OperatorRole, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.SignIn("trainer", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown operator", func(t *testing.T) {
		_, err := auth.SignIn("someone", password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("missing dependencies", func(t *testing.T) {
		_, err := NewAuthService(nil, tokenizer, 0)
		assert.Error(t, err)
	})
}
