package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type achievementForm struct {
	Period string `json:"period" validate:"required,period"`
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	t.Run("accepts a well-formed period", func(t *testing.T) {
		assert.NoError(t, v.Struct(achievementForm{Period: "03-2026"}))
	})

	t.Run("rejects a malformed period", func(t *testing.T) {
		err := v.Struct(achievementForm{Period: "2026/03"})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "period", validationErrors[0].Field())
	})
}
