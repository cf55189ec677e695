package execution

import (
	"context"
	"errors"
	"testing"

	"github.com/quadrantai/woqa/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := DefaultConfig()
		assert.Equal(t, 5432, c.Port)
		assert.Equal(t, "require", c.SSLMode)
	})

	t.Run("options", func(t *testing.T) {
		c := NewConfig(
			WithHost("db.example.com"),
			WithPort(5433),
			WithUser("woqa"),
			WithPassword("secret"),
			WithSSLMode("disable"),
		)
		assert.Equal(t, "db.example.com", c.Host)
		assert.Equal(t, 5433, c.Port)
		assert.Equal(t, "woqa", c.User)
		assert.Equal(t, "disable", c.SSLMode)
	})

	t.Run("normalize trims and defaults", func(t *testing.T) {
		c := &Config{Host: "  db  ", User: " u ", SSLMode: ""}
		c.Normalize()
		assert.Equal(t, "db", c.Host)
		assert.Equal(t, "u", c.User)
		assert.Equal(t, 5432, c.Port)
		assert.Equal(t, "require", c.SSLMode)
	})

	t.Run("validate", func(t *testing.T) {
		c := NewConfig(WithHost("db"), WithUser("u"))
		assert.NoError(t, c.Validate())

		assert.Error(t, NewConfig(WithUser("u")).Validate())
		assert.Error(t, NewConfig(WithHost("db")).Validate())
		assert.Error(t, NewConfig(WithHost("db"), WithUser("u"), WithPort(-1)).Validate())
	})

	t.Run("conn string carries tenant database", func(t *testing.T) {
		c := NewConfig(WithHost("db"), WithUser("u"), WithPassword("p"))
		s := c.connString("CEDEMONEW0314")
		assert.Contains(t, s, "dbname=CEDEMONEW0314")
		assert.Contains(t, s, "host=db")
		assert.Contains(t, s, "sslmode=require")
	})
}

func TestNewExecutor(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		e, err := NewExecutor(NewConfig(WithHost("db"), WithUser("u")))
		require.NoError(t, err)
		assert.NotNil(t, e)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		_, err := NewExecutor(NewConfig())
		assert.Error(t, err)
	})
}

func TestRunValidation(t *testing.T) {
	e, err := NewExecutor(NewConfig(WithHost("db"), WithUser("u")))
	require.NoError(t, err)

	ctx := context.Background()
	tenant := core.TenantContext{DatabaseName: "CEDEMONEW0314"}

	t.Run("empty statement", func(t *testing.T) {
		_, err := e.Run(ctx, tenant, "   ")
		require.Error(t, err)

		var execErr *Error
		require.ErrorAs(t, err, &execErr)
		assert.True(t, errors.Is(err, ErrEmptyStatement))
	})

	t.Run("missing tenant database", func(t *testing.T) {
		_, err := e.Run(ctx, core.TenantContext{}, "SELECT 1;")
		require.Error(t, err)

		var execErr *Error
		require.ErrorAs(t, err, &execErr)
		assert.True(t, errors.Is(err, ErrNoDatabase))
		assert.Equal(t, "SELECT 1;", execErr.Statement)
	})
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Statement: "SELECT 1;", Stage: "query", Err: errors.New("syntax error")}
	assert.Contains(t, err.Error(), "query")
	assert.Contains(t, err.Error(), "syntax error")
	assert.Equal(t, "syntax error", errors.Unwrap(err).Error())
}
