package kernel_test

import (
	"testing"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPersonName(t *testing.T) {
	t.Run("should trim and join", func(t *testing.T) {
		name, err := kernel.NewPersonName(" John ", "Doe")

		require.NoError(t, err)
		assert.Equal(t, "John", name.First())
		assert.Equal(t, "Doe", name.Last())
		assert.Equal(t, "John Doe", name.Full())
		require.NoError(t, name.Validate())
	})

	t.Run("should report both missing parts", func(t *testing.T) {
		_, err := kernel.NewPersonName("", " ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "first name")
		assert.Contains(t, err.Error(), "last name")
	})
}

func TestRequireText(t *testing.T) {
	value, err := kernel.RequireText("city", "  Springfield ")
	require.NoError(t, err)
	assert.Equal(t, "Springfield", value)

	_, err = kernel.RequireText("city", "\t")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "city")
}
