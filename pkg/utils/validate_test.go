package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settings struct {
	Token string `validate:"required"`
	Port  int    `validate:"min=1"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct passes through", func(t *testing.T) {
		value, err := Validate(settings{Token: "secret", Port: 3000})

		require.NoError(t, err)
		assert.Equal(t, "secret", value.Token)
	})

	t.Run("failed rules name the field", func(t *testing.T) {
		_, err := Validate(settings{Port: 0})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Token")
		assert.Contains(t, err.Error(), "required")
		assert.Contains(t, err.Error(), "Port")
	})
}
