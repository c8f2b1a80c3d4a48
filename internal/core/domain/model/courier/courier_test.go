package courier_test

import (
	"testing"
	"time"

	"shiptrack/internal/core/domain/model/courier"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() courier.Profile {
	return courier.Profile{
		FirstName: "Carl",
		LastName:  "Courier",
		Email:     "Carl@Example.com",
		Phone:     "555-0199",
		Region:    "North",
	}
}

func TestNewCourier(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 45, 0, 0, time.UTC)

	t.Run("should default hire date to today", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), validProfile(), "hash", now)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), c.HireDate())
		assert.Equal(t, "carl@example.com", c.Email().String())
		assert.Equal(t, "hash", c.PasswordHash())
	})

	t.Run("should keep explicit hire date", func(t *testing.T) {
		p := validProfile()
		p.HireDate = time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)

		c, err := courier.NewCourier(kernel.NewUUID(), p, "hash", now)

		require.NoError(t, err)
		assert.Equal(t, "2020-02-29", c.HireDate().Format(courier.HireDateLayout))
	})

	t.Run("should fail without region and password hash", func(t *testing.T) {
		p := validProfile()
		p.Region = " "

		c, err := courier.NewCourier(kernel.NewUUID(), p, "", now)

		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "region")
		assert.Contains(t, err.Error(), "password_hash")
	})

	t.Run("should fail with zero id", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.UUID{}, validProfile(), "hash", now)

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestCourier_Update(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	p := validProfile()
	p.HireDate = time.Date(2021, 5, 5, 0, 0, 0, 0, time.UTC)
	c, err := courier.NewCourier(kernel.NewUUID(), p, "hash", now)
	require.NoError(t, err)

	t.Run("should keep hire date when not supplied", func(t *testing.T) {
		upd := c.Profile()
		upd.HireDate = time.Time{}
		upd.Region = "South"

		require.NoError(t, c.Update(upd, now.Add(time.Hour)))

		assert.Equal(t, "South", c.Region())
		assert.Equal(t, p.HireDate, c.HireDate())
		assert.Equal(t, now.Add(time.Hour), c.UpdatedAt())
	})

	t.Run("should leave courier unchanged on validation error", func(t *testing.T) {
		upd := c.Profile()
		upd.FirstName = ""
		upd.Region = "West"

		require.Error(t, c.Update(upd, now.Add(2*time.Hour)))
		assert.Equal(t, "South", c.Region())
		assert.Equal(t, "Carl", c.Name().First())
	})
}
